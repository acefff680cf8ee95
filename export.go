package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/gosuri/uilive"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// compressionMethods are the names accepted by export, in flag order.
var compressionMethods = []string{"gzip", "zlib", "bzip2", "snappy", "s2", "zstd", "zip", "none"}

type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

// getCompressionExtension returns the file extension for a given compression algorithm
func getCompressionExtension(compressionAlgorithm string) (string, error) {
	switch compressionAlgorithm {
	case "gzip":
		return ".gz", nil
	case "zlib":
		return ".zlib", nil
	case "bzip2":
		return ".bz2", nil
	case "snappy":
		return ".snappy", nil
	case "s2":
		return ".s2", nil
	case "zstd":
		return ".zst", nil
	case "zip":
		return ".zip", nil
	case "none":
		return "", nil
	default:
		return "", fmt.Errorf("unsupported compression algorithm: %s", compressionAlgorithm)
	}
}

// nopWriteCloser adds a no-op Close to the uncompressed output.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// zipEntryWriter closes the archive when the single report entry is done.
type zipEntryWriter struct {
	io.Writer
	zw *zip.Writer
}

func (z zipEntryWriter) Close() error { return z.zw.Close() }

// createCompressionWriter wraps output with the named compressor. Closing the
// returned writer flushes the compressed stream but leaves output open.
func createCompressionWriter(algorithm string, output io.Writer) (io.WriteCloser, error) {
	switch algorithm {
	case "gzip":
		return gzip.NewWriter(output), nil
	case "zlib":
		return zlib.NewWriter(output), nil
	case "bzip2":
		return bzip2.NewWriter(output, &bzip2.WriterConfig{})
	case "snappy":
		return snappy.NewBufferedWriter(output), nil
	case "s2":
		return s2.NewWriter(output), nil
	case "zstd":
		return zstd.NewWriter(output)
	case "zip":
		zipWriter := zip.NewWriter(output)
		entry, err := zipWriter.Create(appName + ".json")
		if err != nil {
			_ = zipWriter.Close()
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		return zipEntryWriter{Writer: entry, zw: zipWriter}, nil
	case "none":
		return nopWriteCloser{output}, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}
}

// reportFile is the part of *os.File the exporter writes through.
type reportFile interface {
	io.WriteCloser
	Sync() error
}

var createReportFile = func(name string) (reportFile, error) {
	return os.Create(name)
}

// exportReport writes drives as JSON through the chosen compressor into
// outputfile plus the method's extension, and returns the final file name.
// Progress goes to status. A failed export leaves no file behind.
func exportReport(drives []Device, outputfile, compressionAlgorithm string, status io.Writer) (string, error) {
	extension, err := getCompressionExtension(compressionAlgorithm)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(outputfile, extension) {
		outputfile += extension
	}

	var report bytes.Buffer
	if err := writeDriveJSON(&report, drives); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	reportSize := int64(report.Len())

	output, err := createReportFile(outputfile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	complete := false
	defer func() {
		_ = output.Close()
		if !complete {
			_ = os.Remove(outputfile)
		}
	}()

	cw := &countingWriter{w: output}
	compressedWriter, err := createCompressionWriter(compressionAlgorithm, cw)
	if err != nil {
		return "", fmt.Errorf("failed to create compression writer: %w", err)
	}

	writer := uilive.New()
	writer.Out = status
	writer.Start()
	defer writer.Stop()

	start := time.Now()
	_, _ = fmt.Fprintf(writer, "Writing %d devices to %s (%s)\n", len(drives), outputfile, compressionAlgorithm)
	_ = writer.Flush()

	if _, err := io.Copy(compressedWriter, &report); err != nil {
		_, _ = fmt.Fprintln(writer.Bypass(), "Failed to write compressed stream:", err.Error())
		return "", err
	}
	if err := compressedWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compressed stream: %w", err)
	}
	if err := output.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync output file: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Wrote %s (%s compressed) in %s\n",
		formatBytes(reportSize), formatBytes(cw.count), time.Since(start).Truncate(time.Millisecond))
	_ = writer.Flush()

	complete = true
	return outputfile, nil
}
