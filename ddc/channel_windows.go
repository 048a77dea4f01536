package ddc

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	dxva2 = windows.MustLoadDLL("dxva2.dll")

	getNumberOfPhysicalMonitorsProc = dxva2.MustFindProc("GetNumberOfPhysicalMonitorsFromHMONITOR")
	getPhysicalMonitorsProc         = dxva2.MustFindProc("GetPhysicalMonitorsFromHMONITOR")
	destroyPhysicalMonitorProc      = dxva2.MustFindProc("DestroyPhysicalMonitor")
	getVCPFeatureReplyProc          = dxva2.MustFindProc("GetVCPFeatureAndVCPFeatureReply")
	setVCPFeatureProc               = dxva2.MustFindProc("SetVCPFeature")
)

// physicalMonitor mirrors the Win32 PHYSICAL_MONITOR struct.
type physicalMonitor struct {
	Handle      windows.Handle
	Description [128]uint16
}

// Channel performs VCP operations against the physical monitors behind a
// display handle. Physical handles are opened per call and destroyed on
// every exit path; none survive a call.
type Channel struct {
	Log logrus.FieldLogger
}

func (c *Channel) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// withPhysicalMonitors opens every physical monitor behind the display
// handle, runs fn, and destroys all of them no matter how fn returns.
func withPhysicalMonitors(monitor uintptr, fn func([]physicalMonitor) error) error {
	var count uint32
	if ret, _, err := getNumberOfPhysicalMonitorsProc.Call(monitor, uintptr(unsafe.Pointer(&count))); ret == 0 {
		return fmt.Errorf("GetNumberOfPhysicalMonitorsFromHMONITOR failed: %v", err)
	}
	if count == 0 {
		return ErrNoPhysicalMonitors
	}
	monitors := make([]physicalMonitor, count)
	if ret, _, err := getPhysicalMonitorsProc.Call(monitor, uintptr(count), uintptr(unsafe.Pointer(&monitors[0]))); ret == 0 {
		return fmt.Errorf("GetPhysicalMonitorsFromHMONITOR failed: %v", err)
	}
	defer func() {
		for i := range monitors {
			destroyPhysicalMonitorProc.Call(uintptr(monitors[i].Handle))
		}
	}()
	return fn(monitors)
}

// GetVCP reads a control code, returning the first value any physical
// monitor answers with. ErrUnsupported means none of them did.
func (c *Channel) GetVCP(monitor uintptr, code byte) (uint32, error) {
	var value uint32
	err := withPhysicalMonitors(monitor, func(monitors []physicalMonitor) error {
		for i := range monitors {
			var current, maximum uint32
			ret, _, callErr := getVCPFeatureReplyProc.Call(
				uintptr(monitors[i].Handle),
				uintptr(code),
				0,
				uintptr(unsafe.Pointer(&current)),
				uintptr(unsafe.Pointer(&maximum)),
			)
			if ret != 0 {
				value = current
				return nil
			}
			c.logger().WithError(callErr).Debugf("vcp read 0x%02X failed on physical monitor %d", code, i)
		}
		return ErrUnsupported
	})
	return value, err
}

// SetVCP writes a control code to every physical monitor behind the
// display handle. The write counts as successful when at least one of
// them accepts it.
func (c *Channel) SetVCP(monitor uintptr, code byte, value uint32) error {
	return withPhysicalMonitors(monitor, func(monitors []physicalMonitor) error {
		accepted := 0
		for i := range monitors {
			ret, _, callErr := setVCPFeatureProc.Call(uintptr(monitors[i].Handle), uintptr(code), uintptr(value))
			if ret != 0 {
				accepted++
				continue
			}
			c.logger().WithError(callErr).Debugf("vcp write 0x%02X=%d failed on physical monitor %d", code, value, i)
		}
		if accepted == 0 {
			return fmt.Errorf("vcp write 0x%02X=%d to %d physical monitors: %w", code, value, len(monitors), ErrRejected)
		}
		if accepted < len(monitors) {
			c.logger().Debugf("vcp write 0x%02X=%d accepted by %d of %d physical monitors", code, value, accepted, len(monitors))
		}
		return nil
	})
}

// Describe returns the description string of the first physical monitor
// behind the display handle, e.g. "Dell U2720Q".
func (c *Channel) Describe(monitor uintptr) (string, error) {
	var name string
	err := withPhysicalMonitors(monitor, func(monitors []physicalMonitor) error {
		name = strings.TrimSpace(windows.UTF16ToString(monitors[0].Description[:]))
		return nil
	})
	return name, err
}
