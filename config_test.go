package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dizzlebot.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigDefaults(t *testing.T) {
	config := &appConfig{}
	if err := config.load(writeConfig(t, "port_1: HDMI1\nport_2: DISPLAYPORT\n")); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if config.mode.String() != "PRIMARY" {
		t.Errorf("mode = %s, want PRIMARY", config.mode)
	}
	if config.LogLevel != "info" {
		t.Errorf("log level = %q, want info", config.LogLevel)
	}
	if config.StateFile == "" {
		t.Error("state file default not applied")
	}
	if config.Fade.Steps != 10 || config.Fade.StepDelayMs != 50 || config.Fade.HoldMs != 2000 {
		t.Errorf("fade defaults = %+v, want 10 steps, 50ms delay, 2000ms hold", config.Fade)
	}
	if config.Blackout.SettleMs != 250 || config.Blackout.DwellMs != 8000 || config.Blackout.WakeMs != 5000 {
		t.Errorf("blackout defaults = %+v, want 250/8000/5000 ms", config.Blackout)
	}
	if config.Deck.ToggleKey != 0 || config.Deck.BlackoutKey != 1 || config.Deck.FadeKey != 2 {
		t.Errorf("deck key defaults = %+v, want keys 0, 1, 2", config.Deck)
	}
	if config.Announce || config.Blackout.MuteAudio {
		t.Error("announce and mute_audio should default to off")
	}
}

const fullConfig = `monitor: "NAME:dell"
port_1: HDMI1
port_2: DISPLAYPORT
announce: true
state_file: /var/lib/dizzlebot/input-state.txt
log_level: debug
mattermost:
  url: https://chat.example.com
  token: abc123
  team: dizzle
  channel: bot-spam
feed:
  url: https://feed.example.com
  username: bot
  password: hunter2
remote:
  port: 8137
deck:
  port: COM6
  toggle_key: 3
  fade_key: 4
  blackout_key: 5
fade:
  steps: 20
  step_delay_ms: 25
  hold_ms: 1000
blackout:
  settle_ms: 100
  dwell_ms: 4000
  wake_ms: 2000
  mute_audio: true
`

func TestConfigFull(t *testing.T) {
	config := &appConfig{}
	if err := config.load(writeConfig(t, fullConfig)); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if config.mode.String() != "NAME:dell" {
		t.Errorf("mode = %s, want NAME:dell", config.mode)
	}
	if !config.Announce {
		t.Error("announce = false, want true")
	}
	if config.Mattermost.TeamName != "dizzle" || config.Mattermost.ChannelName != "bot-spam" {
		t.Errorf("mattermost settings = %+v", config.Mattermost)
	}
	if config.Feed.BaseURL != "https://feed.example.com" || config.Feed.Username != "bot" {
		t.Errorf("feed settings = %+v", config.Feed)
	}
	if config.Remote.Port != 8137 {
		t.Errorf("remote port = %d, want 8137", config.Remote.Port)
	}
	if config.Deck.Port != "COM6" || config.Deck.ToggleKey != 3 || config.Deck.FadeKey != 4 || config.Deck.BlackoutKey != 5 {
		t.Errorf("deck settings = %+v", config.Deck)
	}
	if config.Fade.Steps != 20 || config.Fade.StepDelayMs != 25 || config.Fade.HoldMs != 1000 {
		t.Errorf("fade settings = %+v", config.Fade)
	}
	if config.Blackout.DwellMs != 4000 || !config.Blackout.MuteAudio {
		t.Errorf("blackout settings = %+v", config.Blackout)
	}
	if config.StateFile != "/var/lib/dizzlebot/input-state.txt" {
		t.Errorf("state file = %q", config.StateFile)
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing ports", "monitor: FIRST\n", "port_1 and port_2"},
		{"unknown input", "port_1: SCART\nport_2: HDMI1\n", "SCART"},
		{"bad mode", "port_1: HDMI1\nport_2: DISPLAYPORT\nmonitor: SECOND\n", "monitor"},
		{"bad log level", "port_1: HDMI1\nport_2: DISPLAYPORT\nlog_level: chatty\n", "log_level"},
		{"unknown key", "port_1: HDMI1\nport_2: DISPLAYPORT\nserial: COM6\n", "field serial not found"},
		{"negative fade steps", "port_1: HDMI1\nport_2: DISPLAYPORT\nfade:\n  steps: -3\n", "fade.steps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &appConfig{}
			err := config.load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMissingFile(t *testing.T) {
	config := &appConfig{}
	if err := config.load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("load() = nil for a missing file")
	}
}
