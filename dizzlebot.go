package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/apis"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/control"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/effect"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/state"
)

func usage() {
	fmt.Printf(`Usage: %s [-config FILE] <command> [args]

Commands:
  toggle                  flip between port_1 and port_2
  input <name>            switch to a named input
  get <setting>           read a named setting
  set <setting> <value>   write a named setting
  brightness [value]      read or set brightness
  fade [delay-ms [steps]] fade to black and back
  blackout                cut the display to standby and restore it
  power on|standby|sleep  set the power control state
  monitors                list attached displays
  probe                   report which settings the display answers
  listen                  wait for deck, feed and panel triggers
`, os.Args[0])
}

func newController(config *appConfig) *control.Controller {
	channel := &ddc.Channel{}
	enumerate := func() []monitor.Descriptor { return monitor.Enumerate(nil) }
	store := &state.Store{Path: config.StateFile}

	var notify func(string)
	if config.Announce {
		announcer := apis.NewAnnouncer(config.Mattermost)
		notify = func(message string) {
			if err := announcer.Announce(message); err != nil {
				logrus.WithError(err).Warnln("could not announce the switch")
			}
		}
	}

	effects := effect.NewSequencer(channel, nil)
	effects.StepSettle = time.Duration(config.Blackout.SettleMs) * time.Millisecond
	effects.FadeHold = time.Duration(config.Fade.HoldMs) * time.Millisecond
	effects.BlackoutDwell = time.Duration(config.Blackout.DwellMs) * time.Millisecond
	effects.WakeSettle = time.Duration(config.Blackout.WakeMs) * time.Millisecond

	return &control.Controller{
		VCP:       channel,
		Enumerate: enumerate,
		Mode:      config.mode,
		Switcher: &control.Switcher{
			VCP:       channel,
			Store:     store,
			Enumerate: enumerate,
			Mode:      config.mode,
			Port1:     config.Port1,
			Port2:     config.Port2,
			Notify:    notify,
		},
		Effects: effects,
	}
}

// exitIf turns an entry point result into the process exit code.
func exitIf(ok bool) {
	if !ok {
		os.Exit(1)
	}
}

func atoiOrDie(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		logrus.Fatalf("not a number: %s", s)
	}
	return value
}

func main() {
	configPath := flag.String("config", "dizzlebot.yml", "path to the config file")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	config := &appConfig{}
	if err := config.load(*configPath); err != nil {
		logrus.Fatalf("%v", err)
	}
	level, _ := logrus.ParseLevel(config.LogLevel)
	logrus.SetLevel(level)

	ctl := newController(config)

	switch args[0] {
	case "toggle":
		exitIf(ctl.Toggle())
	case "input":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		exitIf(ctl.SwitchInput(args[1]))
	case "get":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		value := ctl.GetSetting(args[1])
		if value < 0 {
			os.Exit(1)
		}
		fmt.Println(value)
	case "set":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		exitIf(ctl.SetSetting(args[1], atoiOrDie(args[2])))
	case "brightness":
		if len(args) < 2 {
			value := ctl.GetBrightness()
			if value < 0 {
				os.Exit(1)
			}
			fmt.Println(value)
		} else {
			exitIf(ctl.SetBrightness(atoiOrDie(args[1])))
		}
	case "fade":
		delay, steps := config.Fade.StepDelayMs, config.Fade.Steps
		if len(args) > 1 {
			delay = atoiOrDie(args[1])
		}
		if len(args) > 2 {
			steps = atoiOrDie(args[2])
		}
		exitIf(ctl.FadeToBlackAndRestore(delay, steps))
	case "blackout":
		exitIf(runBlackout(config, ctl))
	case "power":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		exitIf(setPower(ctl, args[1]))
	case "monitors":
		exitIf(listMonitors())
	case "probe":
		probeSettings(ctl)
	case "listen":
		listen(config, ctl)
	default:
		usage()
		os.Exit(2)
	}
}
