package monitor

import (
	"syscall"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
)

var (
	user32 = windows.MustLoadDLL("user32.dll")

	enumDisplayMonitorsProc = user32.MustFindProc("EnumDisplayMonitors")
	getMonitorInfoProc      = user32.MustFindProc("GetMonitorInfoW")
)

type rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfoEx struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
	Device  [32]uint16
}

type enumState struct {
	log      logrus.FieldLogger
	channel  ddc.Channel
	monitors []Descriptor
}

// registered once; callback slots are never released by the runtime
var enumCallback = syscall.NewCallback(func(hMonitor, hdc, lprc, lparam uintptr) uintptr {
	state := (*enumState)(unsafe.Pointer(lparam))

	var info monitorInfoEx
	info.Size = uint32(unsafe.Sizeof(info))
	if ret, _, err := getMonitorInfoProc.Call(hMonitor, uintptr(unsafe.Pointer(&info))); ret == 0 {
		state.log.WithError(err).Warnf("GetMonitorInfoW failed for display handle %#x, skipping", hMonitor)
		return 1
	}

	name, err := state.channel.Describe(hMonitor)
	if err != nil || name == "" {
		state.log.WithError(err).Debugf("no description for display handle %#x, using placeholder", hMonitor)
		name = FallbackName
	}

	state.monitors = append(state.monitors, Descriptor{
		Handle: hMonitor,
		Name:   name,
		X:      int(info.Monitor.Left),
		Y:      int(info.Monitor.Top),
		Width:  int(info.Monitor.Right - info.Monitor.Left),
		Height: int(info.Monitor.Bottom - info.Monitor.Top),
	})
	return 1
})

// Enumerate walks every active display once and returns fresh descriptors
// in the OS enumeration order. A display whose name cannot be resolved is
// still returned, with a placeholder name; a failure on one display never
// stops the walk. An empty result is returned as-is, not as an error.
func Enumerate(log logrus.FieldLogger) []Descriptor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	state := &enumState{log: log, channel: ddc.Channel{Log: log}}
	if ret, _, err := enumDisplayMonitorsProc.Call(0, 0, enumCallback, uintptr(unsafe.Pointer(state))); ret == 0 {
		log.WithError(err).Errorln("EnumDisplayMonitors failed")
		return nil
	}
	for _, m := range state.monitors {
		log.Debugf("enumerated %s", m)
	}
	return state.monitors
}
