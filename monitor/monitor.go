package monitor

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackName is used when a display's description cannot be resolved.
const FallbackName = "Unknown Display"

var (
	// ErrNoMonitors implies enumeration returned nothing to select from.
	ErrNoMonitors = errors.New("no monitors enumerated")

	// ErrNotFound implies no enumerated monitor matched a NAME selector.
	ErrNotFound = errors.New("no monitor matches the configured name")
)

// Descriptor describes one enumerated display. The handle is owned by the
// OS; it is only ever passed back into display API calls, never freed.
type Descriptor struct {
	Handle uintptr
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %dx%d at (%d,%d)", d.Name, d.Width, d.Height, d.X, d.Y)
}

type modeKind int

const (
	modePrimary modeKind = iota
	modeFirst
	modeName
)

// Mode is a monitor targeting mode: PRIMARY, FIRST or NAME:<substring>.
type Mode struct {
	kind modeKind
	name string
}

func (m Mode) String() string {
	switch m.kind {
	case modeFirst:
		return "FIRST"
	case modeName:
		return "NAME:" + m.name
	default:
		return "PRIMARY"
	}
}

// ParseMode parses a targeting mode string, case-insensitively.
func ParseMode(s string) (Mode, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.EqualFold(trimmed, "PRIMARY") || trimmed == "":
		return Mode{kind: modePrimary}, nil
	case strings.EqualFold(trimmed, "FIRST"):
		return Mode{kind: modeFirst}, nil
	case len(trimmed) > 5 && strings.EqualFold(trimmed[:5], "NAME:"):
		return Mode{kind: modeName, name: strings.TrimSpace(trimmed[5:])}, nil
	}
	return Mode{}, fmt.Errorf("unknown monitor mode %q (want PRIMARY, FIRST or NAME:<substring>)", s)
}

// Select picks one monitor from the enumerated list. PRIMARY prefers the
// display at (0,0) and falls back to the first one; FIRST takes the first
// unconditionally; NAME takes the first whose name contains the substring,
// case-insensitively, and is the only mode that can fail on a non-empty
// list. Enumeration order breaks all ties.
func Select(mode Mode, monitors []Descriptor) (Descriptor, error) {
	if len(monitors) == 0 {
		return Descriptor{}, ErrNoMonitors
	}
	switch mode.kind {
	case modeFirst:
		return monitors[0], nil
	case modeName:
		want := strings.ToLower(mode.name)
		for _, m := range monitors {
			if strings.Contains(strings.ToLower(m.Name), want) {
				return m, nil
			}
		}
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, mode.name)
	default:
		for _, m := range monitors {
			if m.X == 0 && m.Y == 0 {
				return m, nil
			}
		}
		return monitors[0], nil
	}
}
