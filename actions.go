package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/apis"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/comm"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/control"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
)

// listen wires up the configured triggers and dispatches their events
// until the process dies. Slow actions run in goroutines; two triggers
// firing into the same display at once is a known hardware race.
func listen(config *appConfig, ctl *control.Controller) {
	var deckMsgs <-chan comm.Message
	var deckCmds chan<- comm.Command
	if config.Deck.Port != "" {
		var err error
		deckMsgs, deckCmds, err = comm.OpenDeck(config.Deck.Port)
		if err != nil {
			logrus.WithError(err).Errorln("could not open the key deck, continuing without it")
		}
	}

	var feedEvents <-chan apis.CommandEvent
	if config.Feed.BaseURL != "" {
		feedEvents = apis.SubscribeCommands(config.Feed)
	}

	var panelEvents <-chan apis.CommandEvent
	if config.Remote.Port != 0 {
		panelEvents = apis.RunRemote(config.Remote.Port)
	}

	if deckMsgs == nil && feedEvents == nil && panelEvents == nil {
		logrus.Fatalln("nothing to listen on, configure a deck, feed or remote")
	}

	logrus.Infoln("waiting for triggers")
	for {
		select {
		case msg, ok := <-deckMsgs:
			if !ok {
				logrus.Warnln("key deck went away")
				deckMsgs = nil
				continue
			}
			handleDeckMessage(config, ctl, deckCmds, msg)
		case event := <-feedEvents:
			logrus.Infof("feed command: %s", event.Command)
			go runCommand(config, ctl, event)
		case event := <-panelEvents:
			logrus.Infof("panel command: %s", event.Command)
			go func(event apis.CommandEvent) {
				apis.RemoteReport(runCommand(config, ctl, event), event.Command)
			}(event)
		}
	}
}

func handleDeckMessage(config *appConfig, ctl *control.Controller, cmdChan chan<- comm.Command, msg comm.Message) {
	switch {
	case msg.Message == comm.Ready:
		go showIntro(config, cmdChan, 150*time.Millisecond)
	case msg.Message == comm.KeyReleased && msg.Source == config.Deck.ToggleKey:
		go runKeyAction(cmdChan, msg.Source, ctl.Toggle)
	case msg.Message == comm.KeyReleased && msg.Source == config.Deck.FadeKey:
		go runKeyAction(cmdChan, msg.Source, func() bool {
			return ctl.FadeToBlackAndRestore(config.Fade.StepDelayMs, config.Fade.Steps)
		})
	case msg.Message == comm.KeyReleased && msg.Source == config.Deck.BlackoutKey:
		go runKeyAction(cmdChan, msg.Source, func() bool {
			return runBlackout(config, ctl)
		})
	}
}

// runKeyAction gives LED feedback around a key's action: yellow while it
// runs, then green or red for a moment depending on the outcome.
func runKeyAction(cmdChan chan<- comm.Command, key int, action func() bool) {
	cmdChan <- comm.NewSetLEDCommand(key, 'Y')
	if action() {
		cmdChan <- comm.NewSetLEDCommand(key, 'G')
	} else {
		cmdChan <- comm.NewSetLEDCommand(key, 'R')
	}
	time.AfterFunc(1500*time.Millisecond, func() {
		cmdChan <- comm.NewClearLEDCommand(key)
	})
}

func showIntro(config *appConfig, cmdChan chan<- comm.Command, delay time.Duration) {
	for _, key := range []int{config.Deck.ToggleKey, config.Deck.FadeKey, config.Deck.BlackoutKey} {
		cmdChan <- comm.NewSetLEDCommand(key, 'G')
		time.Sleep(delay)
		cmdChan <- comm.NewClearLEDCommand(key)
	}
}

func runCommand(config *appConfig, ctl *control.Controller, event apis.CommandEvent) bool {
	switch event.Command {
	case "toggle":
		return ctl.Toggle()
	case "input":
		return ctl.SwitchInput(event.Argument)
	case "fade":
		return ctl.FadeToBlackAndRestore(config.Fade.StepDelayMs, config.Fade.Steps)
	case "blackout":
		return runBlackout(config, ctl)
	case "brightness":
		value, err := strconv.Atoi(event.Argument)
		if err != nil {
			logrus.Warnf("bad brightness argument: %q", event.Argument)
			return false
		}
		return ctl.SetBrightness(value)
	case "power":
		return setPower(ctl, event.Argument)
	default:
		logrus.Warnf("ignoring unknown command %q", event.Command)
		return false
	}
}

// runBlackout optionally mutes the default audio output for the duration
// of the blackout, so the room goes dark and quiet together.
func runBlackout(config *appConfig, ctl *control.Controller) bool {
	if config.Blackout.MuteAudio {
		if err := apis.SetSystemMute(true); err != nil {
			logrus.WithError(err).Warnln("could not mute audio")
		} else {
			defer func() {
				if err := apis.SetSystemMute(false); err != nil {
					logrus.WithError(err).Warnln("could not unmute audio")
				}
			}()
		}
	}
	return ctl.Blackout()
}

func setPower(ctl *control.Controller, name string) bool {
	var value int
	switch strings.ToLower(name) {
	case "on":
		value = ddc.PowerOn
	case "standby":
		value = ddc.PowerStandby
	case "sleep":
		value = ddc.PowerSleep
	default:
		logrus.Errorf("unknown power state %q, want on, standby or sleep", name)
		return false
	}
	return ctl.SetPowerState(value)
}

func listMonitors() bool {
	monitors := monitor.Enumerate(nil)
	if len(monitors) == 0 {
		logrus.Errorln("no monitors found")
		return false
	}
	for i, m := range monitors {
		fmt.Printf("%d: %s\n", i, m)
	}
	return true
}

func probeSettings(ctl *control.Controller) {
	for _, name := range ddc.SettingNames() {
		if value := ctl.GetSetting(name); value >= 0 {
			fmt.Printf("%-20s %d\n", name, value)
		} else {
			fmt.Printf("%-20s unsupported\n", name)
		}
	}
}
