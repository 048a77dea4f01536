package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/apis"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/state"
)

type deckConfig struct {
	Port        string
	ToggleKey   int `yaml:"toggle_key"`
	FadeKey     int `yaml:"fade_key"`
	BlackoutKey int `yaml:"blackout_key"`
}

type fadeConfig struct {
	Steps       int
	StepDelayMs int `yaml:"step_delay_ms"`
	HoldMs      int `yaml:"hold_ms"`
}

type blackoutConfig struct {
	SettleMs  int  `yaml:"settle_ms"`
	DwellMs   int  `yaml:"dwell_ms"`
	WakeMs    int  `yaml:"wake_ms"`
	MuteAudio bool `yaml:"mute_audio"`
}

type appConfig struct {
	Monitor   string
	Port1     string `yaml:"port_1"`
	Port2     string `yaml:"port_2"`
	Announce  bool
	StateFile string `yaml:"state_file"`
	LogLevel  string `yaml:"log_level"`

	Mattermost apis.MattermostSettings
	Feed       apis.HTTPCredentials
	Remote     struct{ Port int }
	Deck       deckConfig
	Fade       fadeConfig
	Blackout   blackoutConfig

	mode monitor.Mode
}

func (c *appConfig) load(path string) error {
	logrus.Infof("loading config file: %s", path)
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open config file: %v", err)
	}
	if err = yaml.UnmarshalStrict(yamlFile, c); err != nil {
		return fmt.Errorf("could not parse config file: %v", err)
	}
	return c.validate()
}

func (c *appConfig) validate() error {
	if c.Port1 == "" || c.Port2 == "" {
		return fmt.Errorf("port_1 and port_2 must both be set")
	}
	for key, port := range map[string]string{"port_1": c.Port1, "port_2": c.Port2} {
		if _, ok := ddc.LookupInput(port); !ok {
			return fmt.Errorf("%s: unknown input %q, valid names are %s",
				key, port, strings.Join(ddc.InputNames(), ", "))
		}
	}
	mode, err := monitor.ParseMode(c.Monitor)
	if err != nil {
		return fmt.Errorf("monitor: %v", err)
	}
	c.mode = mode

	if c.StateFile == "" {
		c.StateFile = state.DefaultPath()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %v", err)
	}
	if c.Fade.Steps == 0 {
		c.Fade.Steps = 10
	}
	if c.Fade.Steps < 1 {
		return fmt.Errorf("fade.steps must be at least 1")
	}
	if c.Fade.StepDelayMs == 0 {
		c.Fade.StepDelayMs = 50
	}
	if c.Fade.HoldMs == 0 {
		c.Fade.HoldMs = 2000
	}
	if c.Blackout.SettleMs == 0 {
		c.Blackout.SettleMs = 250
	}
	if c.Blackout.DwellMs == 0 {
		c.Blackout.DwellMs = 8000
	}
	if c.Blackout.WakeMs == 0 {
		c.Blackout.WakeMs = 5000
	}
	// key 0 is the deck's leftmost key, so only fill the other defaults
	if c.Deck.FadeKey == 0 && c.Deck.BlackoutKey == 0 {
		c.Deck.BlackoutKey = 1
		c.Deck.FadeKey = 2
	}
	return nil
}
