package main

import (
	"bytes"
	"fmt"
	"strings"

	tcell "github.com/gdamore/tcell/v2"
)

// tuiState holds the browser state
type tuiState struct {
	drives        []Device
	selectedIndex int
	showDetails   bool
}

// runTUI opens the interactive device browser on screen until the user quits.
func runTUI(screen tcell.Screen, drives []Device) error {
	if len(drives) == 0 {
		return ErrDeviceNotFound
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorBlack))
	screen.Clear()

	s := &tuiState{drives: drives}
	for {
		if s.showDetails {
			s.renderDetails(screen)
		} else {
			s.renderList(screen)
		}
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if s.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
	}
}

// handleKey applies one key press and reports whether the browser should exit.
func (s *tuiState) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if s.showDetails {
			s.showDetails = false
			return false
		}
		return true
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		if !s.showDetails && s.selectedIndex > 0 {
			s.selectedIndex--
		}
	case tcell.KeyDown:
		if !s.showDetails && s.selectedIndex < len(s.drives)-1 {
			s.selectedIndex++
		}
	case tcell.KeyEnter, tcell.KeyRight:
		s.showDetails = true
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		s.showDetails = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'k':
			if !s.showDetails && s.selectedIndex > 0 {
				s.selectedIndex--
			}
		case 'j':
			if !s.showDetails && s.selectedIndex < len(s.drives)-1 {
				s.selectedIndex++
			}
		}
	}
	return false
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= width {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func drawCentered(screen tcell.Screen, y int, text string, style tcell.Style) {
	width, _ := screen.Size()
	x := (width - len(text)) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, width, text, style)
}

func (s *tuiState) renderList(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	drawCentered(screen, 0, "=== Drives ===", tcell.StyleDefault.Bold(true))

	y := 2
	for i, d := range s.drives {
		if y >= height-3 {
			break
		}

		style := tcell.StyleDefault
		prefix := "  "
		if i == s.selectedIndex {
			style = tcell.StyleDefault.
				Foreground(tcell.ColorBlack).
				Background(tcell.ColorWhite)
			prefix = "> "
		}

		line := fmt.Sprintf("%s%-16s %-8s %12s  %s", prefix, d.Device, d.BusType, formatBytes(d.Size), d.Description)
		drawText(screen, 0, y, width, line, style)
		y++
	}

	// Status line with the selected drive's classification and mountpoints
	statusY := height - 2
	status := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		screen.SetContent(x, statusY, ' ', nil, status)
	}
	selected := s.drives[s.selectedIndex]
	left := "[" + driveFlags(selected) + "]"
	if mps := mountpointPaths(selected); mps != "" {
		left += " Mounted on: " + mps
	} else {
		left += " Not mounted"
	}
	drawText(screen, 0, statusY, width, left, status)
	if selected.DevicePath != "" && len(left)+len(selected.DevicePath)+1 < width {
		drawText(screen, width-len(selected.DevicePath), statusY, width, selected.DevicePath, status)
	}

	drawCentered(screen, height-1, "↑↓: Navigate | →/Enter: Details | Q/Ctrl+C: Quit", tcell.StyleDefault.Dim(true))
}

func (s *tuiState) renderDetails(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	selected := s.drives[s.selectedIndex]

	drawCentered(screen, 0, fmt.Sprintf("=== %s ===", selected.Device), tcell.StyleDefault.Bold(true))

	var buf bytes.Buffer
	if err := writeDrive(&buf, selected); err != nil {
		buf.Reset()
		fmt.Fprintf(&buf, "Error rendering device: %v\n", err)
	}
	for i, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if 2+i >= height-1 {
			break
		}
		drawText(screen, 0, 2+i, width, line, tcell.StyleDefault)
	}

	drawCentered(screen, height-1, "←/Esc: Back | Q/Ctrl+C: Quit", tcell.StyleDefault.Dim(true))
}
