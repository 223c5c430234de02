package oia

import (
	"strings"
	"testing"
)

type recorder struct {
	changes []Change
}

func (r *recorder) listen(_ *OIA, c Change) { r.changes = append(r.changes, c) }

func TestKeyboardLockNotifiesOnce(t *testing.T) {
	o := New()
	rec := &recorder{}
	o.Subscribe(rec.listen)

	o.SetKeyboardLocked(true)
	o.SetKeyboardLocked(true) // no-op, no notification

	if len(rec.changes) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(rec.changes))
	}
	if rec.changes[0] != ChangeKeyboard {
		t.Errorf("expected keyboard change, got %v", rec.changes[0])
	}
	if !o.KeyboardLocked() {
		t.Error("expected keyboard locked")
	}
}

func TestValueSettersSuppressNoOps(t *testing.T) {
	o := New()
	rec := &recorder{}
	o.Subscribe(rec.listen)

	o.SetInsertMode(false)  // already off
	o.SetKeysBuffered(false)
	o.SetScriptActive(false)
	o.SetMessageLightOff()

	if len(rec.changes) != 0 {
		t.Errorf("expected no notifications for unchanged values, got %v", rec.changes)
	}

	o.SetInsertMode(true)
	o.SetKeysBuffered(true)
	o.SetScriptActive(true)
	o.SetMessageLightOn()

	if len(rec.changes) != 4 {
		t.Errorf("expected 4 notifications, got %d: %v", len(rec.changes), rec.changes)
	}
}

func TestBellAndClearScreenAlwaysFire(t *testing.T) {
	o := New()
	rec := &recorder{}
	o.Subscribe(rec.listen)

	o.SetAudibleBell()
	o.SetAudibleBell()
	o.ClearScreen()

	if len(rec.changes) != 3 {
		t.Errorf("expected 3 notifications, got %d", len(rec.changes))
	}
}

func TestListenerOrderAndNoCoalescing(t *testing.T) {
	o := New()
	var order []string
	o.Subscribe(func(_ *OIA, c Change) { order = append(order, "first:"+c.String()) })
	o.Subscribe(func(_ *OIA, c Change) { order = append(order, "second:"+c.String()) })

	o.SetKeyboardLocked(true)
	o.SetKeyboardLocked(false)

	want := []string{
		"first:keyboard", "second:keyboard",
		"first:keyboard", "second:keyboard",
	}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d: %v", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("delivery %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestUnsubscribeTakesEffectImmediately(t *testing.T) {
	o := New()
	rec := &recorder{}
	sub := o.Subscribe(rec.listen)

	o.SetKeyboardLocked(true)
	sub.Unsubscribe()
	o.SetKeyboardLocked(false)

	if len(rec.changes) != 1 {
		t.Errorf("expected 1 notification before unsubscribe, got %d", len(rec.changes))
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	o := New()
	var sub *Subscription
	var firstCalls, secondCalls int
	sub = o.Subscribe(func(_ *OIA, _ Change) {
		firstCalls++
		sub.Unsubscribe()
	})
	o.Subscribe(func(_ *OIA, _ Change) { secondCalls++ })

	o.SetKeyboardLocked(true)
	o.SetKeyboardLocked(false)

	if firstCalls != 1 {
		t.Errorf("expected unsubscribed listener called once, got %d", firstCalls)
	}
	if secondCalls != 2 {
		t.Errorf("expected peer listener called for both events, got %d", secondCalls)
	}
}

func TestInhibitMessageStoredVerbatim(t *testing.T) {
	o := New()

	msg := "MSGW\x07\x00 " + strings.Repeat("long ", 1000) + "é"
	o.SetInputInhibitedMessage(ProgCheck, 0, msg)

	got, ok := o.InhibitedText()
	if !ok {
		t.Fatal("expected a message")
	}
	if got != msg {
		t.Error("inhibit message must be returned unmodified")
	}
	if o.InputInhibited() != ProgCheck {
		t.Errorf("expected ProgCheck, got %v", o.InputInhibited())
	}
}

func TestInhibitCheckCodes(t *testing.T) {
	o := New()

	o.SetInputInhibited(CommCheck, 42)
	if o.CommCheckCode() != 42 {
		t.Errorf("expected comm check 42, got %d", o.CommCheckCode())
	}

	o.SetInputInhibited(MachineCheck, 7)
	if o.MachineCheckCode() != 7 {
		t.Errorf("expected machine check 7, got %d", o.MachineCheckCode())
	}
	// Comm check survives a machine check.
	if o.CommCheckCode() != 42 {
		t.Errorf("expected comm check still 42, got %d", o.CommCheckCode())
	}
}

func TestInhibitLevelCodes(t *testing.T) {
	o := New()

	o.SetInputInhibited(SystemWait, LevelInputInhibited)
	if o.Level() != LevelInputInhibited {
		t.Errorf("system wait stores whatCode as level, got %d", o.Level())
	}

	o.SetInputInhibited(CommCheck, 1)
	if o.Level() != LevelInputInhibited {
		t.Errorf("expected level %d, got %d", LevelInputInhibited, o.Level())
	}
}

func TestInhibitNoOpSuppression(t *testing.T) {
	o := New()
	rec := &recorder{}
	o.Subscribe(rec.listen)

	o.SetInputInhibitedMessage(SystemWait, LevelInputInhibited, "X SYSTEM")
	o.SetInputInhibitedMessage(SystemWait, LevelInputInhibited, "X SYSTEM")

	if len(rec.changes) != 1 {
		t.Errorf("expected a single notification for identical inhibit state, got %d", len(rec.changes))
	}

	o.SetInputInhibitedMessage(SystemWait, LevelInputInhibited, "X SYSTEM2")
	if len(rec.changes) != 2 {
		t.Errorf("expected a notification for a changed message, got %d", len(rec.changes))
	}
}

func TestOwnerDoesNotNotify(t *testing.T) {
	o := New()
	rec := &recorder{}
	o.Subscribe(rec.listen)

	o.SetOwner(3)

	if o.Owner() != 3 {
		t.Errorf("expected owner 3, got %d", o.Owner())
	}
	if len(rec.changes) != 0 {
		t.Errorf("owner changes should not notify, got %v", rec.changes)
	}
}
