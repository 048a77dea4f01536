package effect

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
)

// Channel is the VCP surface a sequencer drives.
type Channel interface {
	GetVCP(monitor uintptr, code byte) (uint32, error)
	SetVCP(monitor uintptr, code byte, value uint32) error
}

// Sequencer runs timed multi-step effects against one display. Sequences
// block the calling goroutine with deliberate, ordered sleeps; once a
// sequence has started it always runs every remaining step, so a failed
// write can never strand the display in a dark intermediate state.
type Sequencer struct {
	VCP Channel
	Log logrus.FieldLogger

	StepSettle    time.Duration // pause after each blackout write
	FadeHold      time.Duration // dwell at black during a fade
	BlackoutDwell time.Duration // dwell in standby during a blackout
	WakeSettle    time.Duration // wait for the panel to wake after standby
}

// NewSequencer returns a sequencer with the stock timing. Callers tune the
// exported fields afterwards.
func NewSequencer(vcp Channel, log logrus.FieldLogger) *Sequencer {
	return &Sequencer{
		VCP:           vcp,
		Log:           log,
		StepSettle:    250 * time.Millisecond,
		FadeHold:      2 * time.Second,
		BlackoutDwell: 8 * time.Second,
		WakeSettle:    5 * time.Second,
	}
}

func (s *Sequencer) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

// write is best-effort: a refused step is logged and the sequence moves on.
func (s *Sequencer) write(target uintptr, code byte, value uint32) {
	if err := s.VCP.SetVCP(target, code, value); err != nil {
		s.logger().WithError(err).Warnf("effect write 0x%02X=%d failed, continuing", code, value)
	}
}

// FadeToBlackAndRestore steps brightness from its current value down to 0,
// holds, and steps back up. Stepping is integer (step = original/steps):
// intermediate values are clamped, and only the final step is guaranteed
// to land exactly on the original value. The error covers only a failed
// attempt to start; step failures inside a running fade are absorbed.
func (s *Sequencer) FadeToBlackAndRestore(target uintptr, stepDelay time.Duration, steps int) error {
	if steps < 1 {
		return fmt.Errorf("fade needs at least one step, got %d", steps)
	}
	original, err := s.VCP.GetVCP(target, ddc.CodeBrightness)
	if err != nil {
		return fmt.Errorf("could not read brightness before fade: %w", err)
	}
	step := int(original) / steps
	s.logger().Infof("fading brightness %d -> 0 -> %d over %d steps", original, original, steps)

	for i := 1; i <= steps; i++ {
		v := int(original) - i*step
		if v < 0 {
			v = 0
		}
		s.write(target, ddc.CodeBrightness, uint32(v))
		time.Sleep(stepDelay)
	}
	s.write(target, ddc.CodeBrightness, 0)
	time.Sleep(s.FadeHold)

	for i := 1; i <= steps; i++ {
		v := i * step
		if i == steps || v > int(original) {
			v = int(original)
		}
		s.write(target, ddc.CodeBrightness, uint32(v))
		time.Sleep(stepDelay)
	}
	return nil
}

// blackout touches these controls, in this order, for zeroing and restore.
var blackoutControls = []struct {
	name string
	code byte
}{
	{"brightness", ddc.CodeBrightness},
	{"contrast", ddc.CodeContrast},
	{"red gain", ddc.CodeRedGain},
	{"green gain", ddc.CodeGreenGain},
	{"blue gain", ddc.CodeBlueGain},
}

// Blackout snapshots the picture controls and power state, zeroes the
// picture, drops the panel into standby for the dwell period, wakes it and
// restores the snapshot. Any snapshot read failing aborts before the first
// mutation; after that every step is attempted no matter what, because
// stopping partway would leave the display dark with nothing pending to
// fix it.
func (s *Sequencer) Blackout(target uintptr) error {
	values := make([]uint32, len(blackoutControls))
	for i, ctl := range blackoutControls {
		v, err := s.VCP.GetVCP(target, ctl.code)
		if err != nil {
			return fmt.Errorf("could not read %s before blackout: %w", ctl.name, err)
		}
		values[i] = v
	}
	power, err := s.VCP.GetVCP(target, ddc.CodePowerControl)
	if err != nil {
		return fmt.Errorf("could not read power state before blackout: %w", err)
	}
	s.logger().Debugf("blackout snapshot: %v, power state %d", values, power)

	s.logger().Infoln("blackout: zeroing picture controls")
	for _, ctl := range blackoutControls {
		s.write(target, ctl.code, 0)
		time.Sleep(s.StepSettle)
	}

	s.logger().Infof("blackout: standby for %s", s.BlackoutDwell)
	s.write(target, ddc.CodePowerControl, ddc.PowerStandby)
	time.Sleep(s.BlackoutDwell)

	s.write(target, ddc.CodePowerControl, ddc.PowerOn)
	time.Sleep(s.WakeSettle)

	s.logger().Infoln("blackout: restoring picture controls")
	for i, ctl := range blackoutControls {
		s.write(target, ctl.code, values[i])
		time.Sleep(s.StepSettle)
	}
	return nil
}
