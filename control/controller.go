package control

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/effect"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
)

// Controller is the boolean facade the automation triggers call into.
// Every failure is converted to a false (or -1) return plus a log entry;
// nothing propagates past this layer. The target display is enumerated and
// selected fresh on every call, never cached.
type Controller struct {
	VCP       Channel
	Enumerate func() []monitor.Descriptor
	Mode      monitor.Mode
	Switcher  *Switcher
	Effects   *effect.Sequencer
	Log       logrus.FieldLogger
}

func (c *Controller) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

func (c *Controller) target() (monitor.Descriptor, error) {
	return monitor.Select(c.Mode, c.Enumerate())
}

// Toggle flips the display between the two configured ports. A write the
// hardware rejected without a fault still counts as done here, so a flaky
// display does not turn one hotkey press into a retry storm.
func (c *Controller) Toggle() bool {
	switched, err := c.Switcher.Toggle()
	if err != nil {
		c.logger().WithError(err).Errorln("input toggle failed")
		return false
	}
	if !switched {
		c.logger().Warnln("input toggle was not confirmed, reporting success anyway")
	}
	return true
}

// SwitchInput moves the display to the named input.
func (c *Controller) SwitchInput(name string) bool {
	switched, err := c.Switcher.Switch(name)
	if err != nil {
		c.logger().WithError(err).Errorf("could not switch input to %q", name)
		return false
	}
	if !switched {
		c.logger().Warnln("input switch was not confirmed, reporting success anyway")
	}
	return true
}

// GetSetting reads a named setting from the target display. -1 means the
// name is unknown, the display does not support it, or the read failed.
func (c *Controller) GetSetting(name string) int {
	setting, ok := ddc.LookupSetting(name)
	if !ok {
		c.logger().Errorf("unknown setting %q, valid names are %s",
			name, strings.Join(ddc.SettingNames(), ", "))
		return -1
	}
	target, err := c.target()
	if err != nil {
		c.logger().WithError(err).Errorf("could not pick a display to read %s from", setting.Name)
		return -1
	}
	value, err := c.VCP.GetVCP(target.Handle, setting.Code)
	if err != nil {
		if errors.Is(err, ddc.ErrUnsupported) {
			c.logger().Debugf("%s does not answer %s", target.Name, setting.Name)
		} else {
			c.logger().WithError(err).Errorf("could not read %s from %s", setting.Name, target.Name)
		}
		return -1
	}
	return int(value)
}

// SetSetting writes a named setting on the target display. Percentage
// settings are clamped to 0-100 before the write goes out.
func (c *Controller) SetSetting(name string, value int) bool {
	setting, ok := ddc.LookupSetting(name)
	if !ok {
		c.logger().Errorf("unknown setting %q, valid names are %s",
			name, strings.Join(ddc.SettingNames(), ", "))
		return false
	}
	clamped := setting.Clamp(value)
	if clamped != value {
		c.logger().Debugf("clamping %s from %d to %d", setting.Name, value, clamped)
	}
	if clamped < 0 {
		c.logger().Errorf("%s cannot be set to %d", setting.Name, clamped)
		return false
	}
	target, err := c.target()
	if err != nil {
		c.logger().WithError(err).Errorf("could not pick a display to set %s on", setting.Name)
		return false
	}
	// best-effort pre-write read, purely for the log
	if current, err := c.VCP.GetVCP(target.Handle, setting.Code); err == nil {
		c.logger().Debugf("%s %s is %d before the write", target.Name, setting.Name, current)
	}
	if err := c.VCP.SetVCP(target.Handle, setting.Code, uint32(clamped)); err != nil {
		c.logger().WithError(err).Errorf("could not set %s to %d on %s", setting.Name, clamped, target.Name)
		return false
	}
	c.logger().Infof("%s %s set to %d", target.Name, setting.Name, clamped)
	return true
}

// Per-setting wrappers over the generic get/set.

func (c *Controller) GetBrightness() int          { return c.GetSetting("BRIGHTNESS") }
func (c *Controller) SetBrightness(v int) bool    { return c.SetSetting("BRIGHTNESS", v) }
func (c *Controller) GetContrast() int            { return c.GetSetting("CONTRAST") }
func (c *Controller) SetContrast(v int) bool      { return c.SetSetting("CONTRAST", v) }
func (c *Controller) GetRedGain() int             { return c.GetSetting("RED_GAIN") }
func (c *Controller) SetRedGain(v int) bool       { return c.SetSetting("RED_GAIN", v) }
func (c *Controller) GetGreenGain() int           { return c.GetSetting("GREEN_GAIN") }
func (c *Controller) SetGreenGain(v int) bool     { return c.SetSetting("GREEN_GAIN", v) }
func (c *Controller) GetBlueGain() int            { return c.GetSetting("BLUE_GAIN") }
func (c *Controller) SetBlueGain(v int) bool      { return c.SetSetting("BLUE_GAIN", v) }
func (c *Controller) GetHorizontalPos() int       { return c.GetSetting("HORIZONTAL_POSITION") }
func (c *Controller) SetHorizontalPos(v int) bool { return c.SetSetting("HORIZONTAL_POSITION", v) }
func (c *Controller) GetVerticalPos() int         { return c.GetSetting("VERTICAL_POSITION") }
func (c *Controller) SetVerticalPos(v int) bool   { return c.SetSetting("VERTICAL_POSITION", v) }
func (c *Controller) GetHorizontalSize() int      { return c.GetSetting("HORIZONTAL_SIZE") }
func (c *Controller) SetHorizontalSize(v int) bool {
	return c.SetSetting("HORIZONTAL_SIZE", v)
}
func (c *Controller) GetDisplayMode() int       { return c.GetSetting("DISPLAY_MODE") }
func (c *Controller) SetDisplayMode(v int) bool { return c.SetSetting("DISPLAY_MODE", v) }
func (c *Controller) GetPowerState() int        { return c.GetSetting("POWER_CONTROL") }
func (c *Controller) SetPowerState(v int) bool  { return c.SetSetting("POWER_CONTROL", v) }
func (c *Controller) GetDPMS() int              { return c.GetSetting("DPMS_CONTROL") }
func (c *Controller) SetDPMS(v int) bool        { return c.SetSetting("DPMS_CONTROL", v) }
func (c *Controller) GetOSD() int               { return c.GetSetting("OSD_CONTROL") }
func (c *Controller) SetOSD(v int) bool         { return c.SetSetting("OSD_CONTROL", v) }

// FadeToBlackAndRestore dims the display to black and brings it back up.
// Only a failure to start the fade reports false.
func (c *Controller) FadeToBlackAndRestore(stepDelayMs, steps int) bool {
	target, err := c.target()
	if err != nil {
		c.logger().WithError(err).Errorln("could not pick a display for the fade")
		return false
	}
	delay := time.Duration(stepDelayMs) * time.Millisecond
	if err := c.Effects.FadeToBlackAndRestore(target.Handle, delay, steps); err != nil {
		c.logger().WithError(err).Errorln("fade did not start")
		return false
	}
	return true
}

// Blackout cuts the display to standby for the dwell period and restores
// the picture afterwards. Only a failure to start reports false.
func (c *Controller) Blackout() bool {
	target, err := c.target()
	if err != nil {
		c.logger().WithError(err).Errorln("could not pick a display for the blackout")
		return false
	}
	if err := c.Effects.Blackout(target.Handle); err != nil {
		c.logger().WithError(err).Errorln("blackout did not start")
		return false
	}
	return true
}
