package control

import (
	"errors"
	"fmt"
	"testing"

	"github.com/CanadianZombies/DizzleBot---Monitor-Control/ddc"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/effect"
	"github.com/CanadianZombies/DizzleBot---Monitor-Control/monitor"
)

func testController(channel *fakeChannel, store *fakeStore) *Controller {
	enumerate := fixedMonitors(monitor.Descriptor{Handle: 7, Name: "Dell U2720"})
	return &Controller{
		VCP:       channel,
		Enumerate: enumerate,
		Switcher: &Switcher{
			VCP:       channel,
			Store:     store,
			Enumerate: enumerate,
			Port1:     "HDMI1",
			Port2:     "DISPLAYPORT",
		},
		Effects: &effect.Sequencer{VCP: channel},
	}
}

func TestControllerToggle(t *testing.T) {
	channel := &fakeChannel{}
	store := &fakeStore{value: "HDMI1", ok: true}
	ctl := testController(channel, store)
	if !ctl.Toggle() {
		t.Error("Toggle() = false, want true")
	}
	if store.value != "DISPLAYPORT" {
		t.Errorf("stored %q, want DISPLAYPORT", store.value)
	}
}

func TestControllerToggleSuppressesRetries(t *testing.T) {
	channel := &fakeChannel{failSet: fmt.Errorf("input source: %w", ddc.ErrRejected)}
	ctl := testController(channel, &fakeStore{})
	if !ctl.Toggle() {
		t.Error("Toggle() = false for a faultless rejection, want true to avoid retry storms")
	}

	channel.failSet = errors.New("i2c timeout")
	if ctl.Toggle() {
		t.Error("Toggle() = true for a device fault, want false")
	}
}

func TestSetSettingClampsBeforeWrite(t *testing.T) {
	channel := &fakeChannel{}
	ctl := testController(channel, &fakeStore{})
	if !ctl.SetSetting("BRIGHTNESS", 150) {
		t.Fatal("SetSetting(BRIGHTNESS, 150) = false")
	}
	if got := channel.writes[0]; got.code != 0x10 || got.value != 100 {
		t.Errorf("wrote %+v, want brightness clamped to 100", got)
	}
}

func TestSetSettingUnknownName(t *testing.T) {
	channel := &fakeChannel{}
	ctl := testController(channel, &fakeStore{})
	if ctl.SetSetting("GAMMA", 10) {
		t.Error("SetSetting(GAMMA) = true, want false")
	}
	if len(channel.writes) != 0 {
		t.Errorf("unknown setting still wrote: %+v", channel.writes)
	}
}

func TestSetSettingEnumeratedUnclamped(t *testing.T) {
	channel := &fakeChannel{}
	ctl := testController(channel, &fakeStore{})
	if !ctl.SetSetting("POWER_CONTROL", ddc.PowerSleep) {
		t.Fatal("SetSetting(POWER_CONTROL, 5) = false")
	}
	if got := channel.writes[0]; got.code != 0xC6 || got.value != 5 {
		t.Errorf("wrote %+v, want power control 5", got)
	}
}

func TestGetSetting(t *testing.T) {
	channel := &fakeChannel{values: map[byte]uint32{0x10: 80}}
	ctl := testController(channel, &fakeStore{})
	if got := ctl.GetSetting("BRIGHTNESS"); got != 80 {
		t.Errorf("GetSetting(BRIGHTNESS) = %d, want 80", got)
	}
	if got := ctl.GetSetting("CONTRAST"); got != -1 {
		t.Errorf("GetSetting(CONTRAST) = %d, want -1 for unsupported", got)
	}
	if got := ctl.GetSetting("GAMMA"); got != -1 {
		t.Errorf("GetSetting(GAMMA) = %d, want -1 for unknown", got)
	}
}

func TestWrapperDelegation(t *testing.T) {
	channel := &fakeChannel{values: map[byte]uint32{0x10: 70}}
	ctl := testController(channel, &fakeStore{})

	if got := ctl.GetBrightness(); got != 70 {
		t.Errorf("GetBrightness() = %d, want 70", got)
	}
	if !ctl.SetContrast(110) {
		t.Fatal("SetContrast(110) = false")
	}
	if last := channel.writes[len(channel.writes)-1]; last.code != 0x12 || last.value != 100 {
		t.Errorf("SetContrast wrote %+v, want contrast 100", last)
	}
	if !ctl.SetPowerState(ddc.PowerStandby) {
		t.Fatal("SetPowerState(standby) = false")
	}
	if last := channel.writes[len(channel.writes)-1]; last.code != 0xC6 || last.value != 4 {
		t.Errorf("SetPowerState wrote %+v, want power control 4", last)
	}
}

func TestControllerFade(t *testing.T) {
	channel := &fakeChannel{values: map[byte]uint32{0x10: 80}}
	ctl := testController(channel, &fakeStore{})
	if !ctl.FadeToBlackAndRestore(0, 4) {
		t.Fatal("FadeToBlackAndRestore() = false")
	}
	if last := channel.writes[len(channel.writes)-1]; last.code != 0x10 || last.value != 80 {
		t.Errorf("fade ended on %+v, want brightness restored to 80", last)
	}
}

func TestControllerBlackoutSnapshotFailure(t *testing.T) {
	// contrast is unreadable, so the blackout must abort before mutating
	channel := &fakeChannel{values: map[byte]uint32{0x10: 80}}
	ctl := testController(channel, &fakeStore{})
	if ctl.Blackout() {
		t.Error("Blackout() = true when the snapshot cannot be read")
	}
	if len(channel.writes) != 0 {
		t.Errorf("blackout mutated the display before aborting: %+v", channel.writes)
	}
}

func TestControllerNoDisplays(t *testing.T) {
	channel := &fakeChannel{values: map[byte]uint32{0x10: 80}}
	ctl := testController(channel, &fakeStore{})
	ctl.Enumerate = fixedMonitors()

	if got := ctl.GetSetting("BRIGHTNESS"); got != -1 {
		t.Errorf("GetSetting() = %d with no displays, want -1", got)
	}
	if ctl.SetSetting("BRIGHTNESS", 50) {
		t.Error("SetSetting() = true with no displays")
	}
	if ctl.FadeToBlackAndRestore(0, 4) {
		t.Error("FadeToBlackAndRestore() = true with no displays")
	}
	if ctl.Blackout() {
		t.Error("Blackout() = true with no displays")
	}
}
