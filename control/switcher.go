package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
)

// Channel is the VCP surface the control layer drives.
type Channel interface {
	GetVCP(monitor uintptr, code byte) (uint32, error)
	SetVCP(monitor uintptr, code byte, value uint32) error
}

// StateStore remembers the last input the switcher applied.
type StateStore interface {
	Load() (value string, ok bool)
	Save(value string)
}

// Switcher flips the target display between two configured inputs and
// persists whichever one it applied last, so the next trigger knows which
// way to flip.
type Switcher struct {
	VCP       Channel
	Store     StateStore
	Enumerate func() []monitor.Descriptor
	Mode      monitor.Mode
	Port1     string
	Port2     string

	// Notify, when set, receives a one-line message after a confirmed
	// switch. Rejected and failed switches stay in the log.
	Notify func(message string)

	Log logrus.FieldLogger
}

func (s *Switcher) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

func hasFoldPrefix(v, prefix string) bool {
	return len(v) >= len(prefix) && strings.EqualFold(v[:len(prefix)], prefix)
}

// Toggle switches to whichever configured port the stored state says is
// not active. Missing or unrecognized state biases towards Port1.
func (s *Switcher) Toggle() (switched bool, err error) {
	desired := s.Port1
	if last, ok := s.Store.Load(); ok {
		switch {
		case hasFoldPrefix(last, s.Port2):
			desired = s.Port1
		case hasFoldPrefix(last, s.Port1):
			desired = s.Port2
		default:
			s.logger().Debugf("stored input %q matches neither port, defaulting to %s", last, s.Port1)
		}
	}
	return s.Switch(desired)
}

// Switch moves the target display to the named input and persists the name
// on success. The name is validated before any display is touched, so a
// bad configuration never causes device traffic. switched=false with a nil
// error means the hardware rejected the write without reporting a fault;
// nothing is persisted in that case and the next call retries the same
// input.
func (s *Switcher) Switch(name string) (switched bool, err error) {
	value, ok := ddc.LookupInput(name)
	if !ok {
		return false, fmt.Errorf("input %q is not recognized, valid names are %s",
			name, strings.Join(ddc.InputNames(), ", "))
	}
	target, err := monitor.Select(s.Mode, s.Enumerate())
	if err != nil {
		return false, err
	}
	// best-effort pre-switch read, purely for the log
	if current, err := s.VCP.GetVCP(target.Handle, ddc.CodeInputSource); err == nil {
		s.logger().Debugf("%s is currently on %s", target.Name, ddc.InputName(byte(current)))
	}
	s.logger().Infof("switching %s to %s", target.Name, name)
	if err := s.VCP.SetVCP(target.Handle, ddc.CodeInputSource, uint32(value)); err != nil {
		if errors.Is(err, ddc.ErrRejected) {
			s.logger().Warnf("no physical monitor accepted the switch to %s", name)
			return false, nil
		}
		return false, fmt.Errorf("could not switch %s to %s: %w", target.Name, name, err)
	}
	s.Store.Save(name)
	if s.Notify != nil {
		s.Notify(fmt.Sprintf("Switched %s to %s", target.Name, name))
	}
	return true, nil
}
