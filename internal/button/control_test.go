package button

import "testing"

func TestBusyIdleCycleRestoresCapturedContent(t *testing.T) {
	var changed []string
	ctrl := NewController(func(c *Control) { changed = append(changed, c.Content()) })
	c := NewControl("organize", "🗂 Organize")

	original := c.Capture()
	ctrl.SetBusy(c)
	if !c.Disabled() || c.Content() != BusyContent {
		t.Fatalf("busy state: disabled=%v content=%q", c.Disabled(), c.Content())
	}

	ctrl.SetIdle(c, original)
	if c.Disabled() || c.Content() != "🗂 Organize" {
		t.Fatalf("idle state: disabled=%v content=%q", c.Disabled(), c.Content())
	}
	if len(changed) != 2 || changed[0] != BusyContent || changed[1] != "🗂 Organize" {
		t.Fatalf("changes = %q", changed)
	}
}

func TestCaptureWhileBusyKeepsSavedIdle(t *testing.T) {
	ctrl := NewController(nil)
	c := NewControl("undo", "↩ Undo")

	first := c.Capture()
	ctrl.SetBusy(c)
	second := c.Capture()
	if second != first {
		t.Fatalf("Capture() while busy = %q, want %q", second, first)
	}
	ctrl.SetIdle(c, second)
	if c.Content() != "↩ Undo" {
		t.Fatalf("content = %q", c.Content())
	}
}

func TestSetBusyNilIsNoop(t *testing.T) {
	ctrl := NewController(func(*Control) { t.Fatal("onChange called for nil control") })
	ctrl.SetBusy(nil)
	ctrl.SetIdle(nil, "x")
	if _, ok := ctrl.Animation(); ok {
		t.Fatal("animation installed by a nil control")
	}
	var c *Control
	if got := c.Capture(); got != "" {
		t.Fatalf("nil Capture() = %q", got)
	}
}

func TestAnimationInstalledOnce(t *testing.T) {
	ctrl := NewController(nil)
	a := NewControl("a", "A")
	b := NewControl("b", "B")

	ctrl.SetBusy(a)
	ctrl.SetBusy(b)
	ctrl.SetIdle(a, "A")
	ctrl.SetBusy(a)

	if ctrl.installCount() != 1 {
		t.Fatalf("install count = %d, want 1", ctrl.installCount())
	}
	anim, ok := ctrl.Animation()
	if !ok || len(anim.Frames) == 0 {
		t.Fatalf("Animation() = %#v, %v", anim, ok)
	}
}

func TestTryClaimIsExclusive(t *testing.T) {
	ctrl := NewController(nil)
	c := NewControl("undo", "↩ Undo")

	if !c.TryClaim() {
		t.Fatal("first TryClaim() = false on idle control")
	}
	if c.TryClaim() {
		t.Fatal("second TryClaim() = true while claimed")
	}
	c.Release()
	if !c.TryClaim() {
		t.Fatal("TryClaim() = false after Release")
	}
	c.Release()

	original := c.Capture()
	ctrl.SetBusy(c)
	if c.TryClaim() {
		t.Fatal("TryClaim() = true on busy control")
	}
	ctrl.SetIdle(c, original)
	if !c.TryClaim() {
		t.Fatal("TryClaim() = false after SetIdle")
	}
	if c.Disabled() || c.Content() != "↩ Undo" {
		t.Fatalf("claim changed visible state: disabled=%v content=%q", c.Disabled(), c.Content())
	}

	var nilControl *Control
	if nilControl.TryClaim() {
		t.Fatal("nil control claimed")
	}
	nilControl.Release()
}
