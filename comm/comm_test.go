package comm

import "testing"

func TestParseMessage(t *testing.T) {
	tests := []struct {
		input string
		want  Message
	}{
		{"READY", Message{Message: Ready}},
		{"KEY.0=1", Message{Message: KeyPressed, Source: 0}},
		{"KEY.2=0", Message{Message: KeyReleased, Source: 2}},
		{"KEY.11=1", Message{Message: KeyPressed, Source: 11}},
		{"LED.1=G", Message{Message: invalid}},
		{"KEY.x=1", Message{Message: invalid}},
		{"ready", Message{Message: invalid}},
		{"", Message{Message: invalid}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseMessage(tt.input); got != tt.want {
				t.Errorf("parseMessage(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSerializeCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"reset", NewResetCommand(), "RST"},
		{"clear led", NewClearLEDCommand(4), "LED.4=0"},
		{"set led", NewSetLEDCommand(2, 'G'), "LED.2=G"},
		{"toggle on", NewToggleLEDCommand(1, true), "LED.1=1"},
		{"toggle off", NewToggleLEDCommand(1, false), "LED.1=0"},
		{"zero value", Command{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serializeCommand(tt.cmd); got != tt.want {
				t.Errorf("serializeCommand(%+v) = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}
