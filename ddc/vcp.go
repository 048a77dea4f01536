package ddc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// VCP control codes from the MCCS table the bot exposes.
const (
	CodeBrightness         byte = 0x10
	CodeContrast           byte = 0x12
	CodeColorPreset        byte = 0x14
	CodeRedGain            byte = 0x16
	CodeGreenGain          byte = 0x18
	CodeBlueGain           byte = 0x1A
	CodeActiveControl      byte = 0x52
	CodeInputSource        byte = 0x60
	CodeHorizontalPosition byte = 0xAC
	CodeVerticalPosition   byte = 0xAE
	CodeHorizontalSize     byte = 0xB6
	CodeDisplayMode        byte = 0xC0
	CodePowerControl       byte = 0xC6
	CodeDPMSControl        byte = 0xD6
	CodeOSDControl         byte = 0xF0
)

// PowerControl values
const (
	PowerOn      = 1
	PowerStandby = 4
	PowerSleep   = 5
)

var (
	// ErrUnsupported implies the monitor did not answer a VCP read on any
	// of its physical handles.
	ErrUnsupported = errors.New("vcp code not supported by monitor")

	// ErrNoPhysicalMonitors implies a display handle with no physical
	// monitors behind it.
	ErrNoPhysicalMonitors = errors.New("no physical monitors behind display handle")

	// ErrRejected implies a VCP write went out but no physical monitor
	// accepted it. The hardware reported no fault, it just said no.
	ErrRejected = errors.New("vcp write rejected by all physical monitors")
)

// Setting is a named VCP control. Clamped settings have a 0-100 percentage
// domain; the rest take values from small enumerations (input sources,
// power states).
type Setting struct {
	Name    string
	Code    byte
	Clamped bool
}

// Clamp forces v into the setting's value domain. Enumerated settings are
// passed through untouched.
func (s Setting) Clamp(v int) int {
	if !s.Clamped {
		return v
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var settings = map[string]Setting{
	"BRIGHTNESS":          {"BRIGHTNESS", CodeBrightness, true},
	"CONTRAST":            {"CONTRAST", CodeContrast, true},
	"COLOR_PRESET":        {"COLOR_PRESET", CodeColorPreset, true},
	"RED_GAIN":            {"RED_GAIN", CodeRedGain, true},
	"GREEN_GAIN":          {"GREEN_GAIN", CodeGreenGain, true},
	"BLUE_GAIN":           {"BLUE_GAIN", CodeBlueGain, true},
	"ACTIVE_CONTROL":      {"ACTIVE_CONTROL", CodeActiveControl, true},
	"INPUT_SOURCE":        {"INPUT_SOURCE", CodeInputSource, false},
	"HORIZONTAL_POSITION": {"HORIZONTAL_POSITION", CodeHorizontalPosition, true},
	"VERTICAL_POSITION":   {"VERTICAL_POSITION", CodeVerticalPosition, true},
	"HORIZONTAL_SIZE":     {"HORIZONTAL_SIZE", CodeHorizontalSize, true},
	"DISPLAY_MODE":        {"DISPLAY_MODE", CodeDisplayMode, true},
	"POWER_CONTROL":       {"POWER_CONTROL", CodePowerControl, false},
	"DPMS_CONTROL":        {"DPMS_CONTROL", CodeDPMSControl, false},
	"OSD_CONTROL":         {"OSD_CONTROL", CodeOSDControl, true},
}

// Input source codes by name, including the aliases the chat commands use.
var inputs = map[string]byte{
	"VGA":          0x01,
	"VGA1":         0x01,
	"DVI":          0x03,
	"DVI1":         0x03,
	"DVI2":         0x04,
	"HDMI":         0x11,
	"HDMI1":        0x11,
	"HDMI 1":       0x11,
	"HDMI2":        0x12,
	"HDMI 2":       0x12,
	"DISPLAYPORT":  0x0F,
	"DISPLAY PORT": 0x0F,
	"DP":           0x0F,
	"USB-C":        0x1B,
}

// canonical name per input code, for logging the pre-switch source
var inputNames = map[byte]string{
	0x01: "VGA",
	0x03: "DVI",
	0x04: "DVI2",
	0x11: "HDMI1",
	0x12: "HDMI2",
	0x0F: "DISPLAYPORT",
	0x1B: "USB-C",
}

// LookupSetting resolves a setting by name, case-insensitively.
func LookupSetting(name string) (Setting, bool) {
	s, ok := settings[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// LookupInput resolves an input source name to its VCP value,
// case-insensitively.
func LookupInput(name string) (byte, bool) {
	code, ok := inputs[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}

// InputName returns the canonical name for an input source value.
func InputName(code byte) string {
	if name, ok := inputNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", code)
}

// SettingNames lists all known setting names, sorted.
func SettingNames() []string {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputNames lists all accepted input source names, sorted.
func InputNames() []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
