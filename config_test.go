package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolateConfig points the user config directory at an empty temp dir and
// returns the drivelist directory inside it.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)
	for _, env := range os.Environ() {
		if name, _, _ := strings.Cut(env, "="); strings.HasPrefix(name, envPrefix+"_") {
			t.Setenv(name, "")
		}
	}
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() unexpected error: %v", err)
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("format", "", "")
	fs.String("alias-dir", "", "")
	fs.String("lsblk", "", "")
	fs.Bool("statfs", false, "")
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := loadConfig("", testFlags())
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("loadConfig() = %+v, want %+v", *cfg, DefaultConfig())
	}
}

func TestLoadConfigLayers(t *testing.T) {
	dir := isolateConfig(t)
	writeConfig(t, filepath.Join(dir, "config.yaml"), `
log_level: info
format: json
alias_dir: /srv/by-path
compression: zstd
`)
	t.Setenv("DRIVELIST_FORMAT", "table")
	t.Setenv("DRIVELIST_FILL_CAPACITY", "true")

	flags := testFlags()
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := loadConfig("", flags)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}

	want := Config{
		LogLevel:     "debug",
		Format:       "table",
		AliasDir:     "/srv/by-path",
		LsblkPath:    "lsblk",
		FillCapacity: true,
		Compression:  "zstd",
	}
	if *cfg != want {
		t.Errorf("loadConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	isolateConfig(t)
	file := filepath.Join(t.TempDir(), "drivelist.yaml")
	writeConfig(t, file, "lsblk_path: /opt/util-linux/bin/lsblk\nfill_capacity: true\n")

	cfg, err := loadConfig(file, nil)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	if cfg.LsblkPath != "/opt/util-linux/bin/lsblk" || !cfg.FillCapacity {
		t.Errorf("loadConfig() = %+v", *cfg)
	}

	opts := cfg.listOptions()
	if opts.LsblkPath != cfg.LsblkPath || opts.AliasDir != defaultAliasDir || !opts.FillCapacity {
		t.Errorf("listOptions() = %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolateConfig(t)

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for a missing explicit config file")
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	writeConfig(t, broken, "format: [json\n")
	if _, err := loadConfig(broken, nil); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestNewLogger(t *testing.T) {
	var buf strings.Builder

	logger, err := newLogger(&buf, "info")
	if err != nil {
		t.Fatalf("newLogger() unexpected error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("report written", "devices", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "drivelist") || !strings.Contains(out, "report written") || !strings.Contains(out, "devices=2") {
		t.Errorf("unexpected log output: %q", out)
	}

	if _, err := newLogger(&buf, "loud"); err == nil {
		t.Error("expected error for an unknown level")
	}
}
