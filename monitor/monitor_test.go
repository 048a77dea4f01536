package monitor

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "PRIMARY", false},
		{"PRIMARY", "PRIMARY", false},
		{"primary", "PRIMARY", false},
		{"FIRST", "FIRST", false},
		{" first ", "FIRST", false},
		{"NAME:Dell", "NAME:Dell", false},
		{"name: Dell U2720 ", "NAME:Dell U2720", false},
		{"NAME:", "", true},
		{"SECOND", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && mode.String() != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.input, mode, tt.want)
			}
		})
	}
}

func mustMode(t *testing.T, s string) Mode {
	t.Helper()
	mode, err := ParseMode(s)
	if err != nil {
		t.Fatalf("ParseMode(%q): %v", s, err)
	}
	return mode
}

func TestSelect(t *testing.T) {
	acer := Descriptor{Handle: 1, Name: "Acer X", X: -1920, Y: 0}
	dell1 := Descriptor{Handle: 2, Name: "Dell U2720", X: 0, Y: 0}
	dell2 := Descriptor{Handle: 3, Name: "Dell S2421", X: 1920, Y: 0}

	tests := []struct {
		name       string
		mode       string
		monitors   []Descriptor
		wantHandle uintptr
	}{
		{"primary picks origin", "PRIMARY", []Descriptor{acer, dell1, dell2}, 2},
		{"primary picks origin regardless of order", "PRIMARY", []Descriptor{dell2, dell1, acer}, 2},
		{"primary falls back to first", "PRIMARY", []Descriptor{acer, dell2}, 1},
		{"first is unconditional", "FIRST", []Descriptor{dell2, dell1}, 3},
		{"name matches case-insensitively", "NAME:dell", []Descriptor{acer, dell1, dell2}, 2},
		{"name takes earliest match", "NAME:dell", []Descriptor{dell2, dell1}, 3},
		{"name matches substring", "NAME:S2421", []Descriptor{acer, dell1, dell2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(mustMode(t, tt.mode), tt.monitors)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.Handle != tt.wantHandle {
				t.Errorf("Select() = %s (handle %d), want handle %d", got, got.Handle, tt.wantHandle)
			}
		})
	}
}

func TestSelectFailures(t *testing.T) {
	dell := Descriptor{Handle: 1, Name: "Dell U2720"}

	if _, err := Select(mustMode(t, "PRIMARY"), nil); !errors.Is(err, ErrNoMonitors) {
		t.Errorf("Select(PRIMARY, nil) error = %v, want ErrNoMonitors", err)
	}
	if _, err := Select(mustMode(t, "NAME:acer"), []Descriptor{dell}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(NAME:acer) error = %v, want ErrNotFound", err)
	}
}

func TestDescriptorString(t *testing.T) {
	d := Descriptor{Name: "Dell U2720", X: 1920, Y: 0, Width: 2560, Height: 1440}
	want := "Dell U2720 2560x1440 at (1920,0)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
