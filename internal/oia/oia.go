// Package oia models the operator information area of a host session:
// keyboard lock, input-inhibit reason, message light, insert mode and the
// related indicator state, with synchronous change notification for
// renderers and automation clients.
package oia

// InhibitReason says why input is inhibited.
type InhibitReason int

// Input-inhibit reasons.
const (
	NotInhibited InhibitReason = iota
	SystemWait
	CommCheck
	ProgCheck
	MachineCheck
	InhibitOther
)

// String returns the reason name.
func (r InhibitReason) String() string {
	switch r {
	case NotInhibited:
		return "not-inhibited"
	case SystemWait:
		return "system-wait"
	case CommCheck:
		return "comm-check"
	case ProgCheck:
		return "prog-check"
	case MachineCheck:
		return "machine-check"
	case InhibitOther:
		return "other"
	default:
		return "unknown"
	}
}

// Change tags which part of the OIA a notification is about.
type Change int

// Change categories delivered to listeners.
const (
	ChangeKeyboard Change = iota
	ChangeInsertMode
	ChangeInputInhibited
	ChangeMessageLight
	ChangeKeysBuffered
	ChangeScript
	ChangeBell
	ChangeClearScreen
)

// String returns the change-category name.
func (c Change) String() string {
	switch c {
	case ChangeKeyboard:
		return "keyboard"
	case ChangeInsertMode:
		return "insert-mode"
	case ChangeInputInhibited:
		return "input-inhibited"
	case ChangeMessageLight:
		return "message-light"
	case ChangeKeysBuffered:
		return "keys-buffered"
	case ChangeScript:
		return "script"
	case ChangeBell:
		return "bell"
	case ChangeClearScreen:
		return "clear-screen"
	default:
		return "unknown"
	}
}

// Subsystem levels recorded on each mutation, mirroring the host-visible
// OIA level codes.
const (
	LevelInputInhibited  = 1
	LevelNotInhibited    = 2
	LevelMessageLightOn  = 3
	LevelMessageLightOff = 4
	LevelAudibleBell     = 5
	LevelInsertMode      = 6
	LevelKeyboard        = 7
	LevelClearScreen     = 8
	LevelScreenSize      = 9
	LevelInputError      = 10
	LevelKeysBuffered    = 11
	LevelScript          = 12
)

// Listener receives a change notification. Listeners run synchronously, in
// registration order, on the mutating call's goroutine.
type Listener func(o *OIA, change Change)

// Subscription identifies a registered listener.
type Subscription struct {
	id  uint64
	oia *OIA
}

// Unsubscribe removes the listener. Removal takes effect for subsequent
// notifications; a notification already in flight completes.
func (s *Subscription) Unsubscribe() {
	if s.oia == nil {
		return
	}
	s.oia.remove(s.id)
	s.oia = nil
}

type entry struct {
	id uint64
	fn Listener
}

// OIA is the operator-information-area state machine for one session.
// It is mutated only through its setters; each setter that would leave the
// state unchanged is a strict no-op and fires no notification.
//
// Not safe for concurrent use; the session contract is single-threaded.
type OIA struct {
	locked       bool
	insertMode   bool
	messageWait  bool
	keysBuffered bool
	scriptActive bool

	inhibited     InhibitReason
	inhibitedText string
	hasInhibitMsg bool
	commCheck     int
	machineCheck  int

	owner int
	level int

	nextID    uint64
	listeners []entry
}

// New creates an OIA with everything clear and the keyboard unlocked.
func New() *OIA { return &OIA{} }

// Subscribe registers a listener for every subsequent change.
func (o *OIA) Subscribe(fn Listener) *Subscription {
	o.nextID++
	o.listeners = append(o.listeners, entry{id: o.nextID, fn: fn})
	return &Subscription{id: o.nextID, oia: o}
}

func (o *OIA) remove(id uint64) {
	for i, e := range o.listeners {
		if e.id == id {
			o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
			return
		}
	}
}

// fire notifies every listener, in registration order, no coalescing.
func (o *OIA) fire(change Change) {
	// Snapshot so a listener unsubscribing mid-notification does not skip
	// its peers for this event.
	snapshot := make([]entry, len(o.listeners))
	copy(snapshot, o.listeners)
	for _, e := range snapshot {
		e.fn(o, change)
	}
}

// KeyboardLocked reports whether the keyboard is locked.
func (o *OIA) KeyboardLocked() bool { return o.locked }

// SetKeyboardLocked locks or unlocks the keyboard. Setting the current
// value again notifies nobody.
func (o *OIA) SetKeyboardLocked(locked bool) {
	o.level = LevelKeyboard
	if o.locked == locked {
		return
	}
	o.locked = locked
	o.fire(ChangeKeyboard)
}

// InsertMode reports whether insert mode is on.
func (o *OIA) InsertMode() bool { return o.insertMode }

// SetInsertMode toggles insert mode.
func (o *OIA) SetInsertMode(on bool) {
	o.level = LevelInsertMode
	if o.insertMode == on {
		return
	}
	o.insertMode = on
	o.fire(ChangeInsertMode)
}

// IsMessageWait reports whether the message light is on.
func (o *OIA) IsMessageWait() bool { return o.messageWait }

// SetMessageLightOn turns the message light on.
func (o *OIA) SetMessageLightOn() {
	o.level = LevelMessageLightOn
	if o.messageWait {
		return
	}
	o.messageWait = true
	o.fire(ChangeMessageLight)
}

// SetMessageLightOff turns the message light off.
func (o *OIA) SetMessageLightOff() {
	o.level = LevelMessageLightOff
	if !o.messageWait {
		return
	}
	o.messageWait = false
	o.fire(ChangeMessageLight)
}

// KeysBuffered reports whether type-ahead keys are waiting.
func (o *OIA) KeysBuffered() bool { return o.keysBuffered }

// SetKeysBuffered records whether type-ahead keys are waiting.
func (o *OIA) SetKeysBuffered(buffered bool) {
	o.level = LevelKeysBuffered
	if o.keysBuffered == buffered {
		return
	}
	o.keysBuffered = buffered
	o.fire(ChangeKeysBuffered)
}

// ScriptActive reports whether a host script owns the session.
func (o *OIA) ScriptActive() bool { return o.scriptActive }

// SetScriptActive records whether a script owns the session.
func (o *OIA) SetScriptActive(active bool) {
	o.level = LevelScript
	if o.scriptActive == active {
		return
	}
	o.scriptActive = active
	o.fire(ChangeScript)
}

// SetAudibleBell rings the bell. The bell carries no state, so every call
// notifies.
func (o *OIA) SetAudibleBell() {
	o.level = LevelAudibleBell
	o.fire(ChangeBell)
}

// ClearScreen signals that the display was cleared. Always notifies.
func (o *OIA) ClearScreen() {
	o.level = LevelClearScreen
	o.fire(ChangeClearScreen)
}

// InputInhibited returns the current inhibit reason.
func (o *OIA) InputInhibited() InhibitReason { return o.inhibited }

// InhibitedText returns the inhibit message verbatim: no truncation, no
// sanitization, exactly the bytes the host supplied. ok is false when no
// message accompanies the current state.
func (o *OIA) InhibitedText() (msg string, ok bool) {
	return o.inhibitedText, o.hasInhibitMsg
}

// CommCheckCode returns the last communications-check code.
func (o *OIA) CommCheckCode() int { return o.commCheck }

// MachineCheckCode returns the last machine-check code.
func (o *OIA) MachineCheckCode() int { return o.machineCheck }

// SetInputInhibited records an inhibit state with no message.
func (o *OIA) SetInputInhibited(reason InhibitReason, whatCode int) {
	o.setInputInhibited(reason, whatCode, "", false)
}

// SetInputInhibitedMessage records an inhibit state with a host message.
// The message is stored as given, control characters and all.
func (o *OIA) SetInputInhibitedMessage(reason InhibitReason, whatCode int, message string) {
	o.setInputInhibited(reason, whatCode, message, true)
}

func (o *OIA) setInputInhibited(reason InhibitReason, whatCode int, message string, hasMsg bool) {
	level := LevelInputInhibited
	commCheck, machineCheck := o.commCheck, o.machineCheck
	switch reason {
	case CommCheck:
		commCheck = whatCode
	case MachineCheck:
		machineCheck = whatCode
	case SystemWait, NotInhibited:
		level = whatCode
	}

	if o.inhibited == reason && o.inhibitedText == message && o.hasInhibitMsg == hasMsg &&
		o.commCheck == commCheck && o.machineCheck == machineCheck {
		o.level = level
		return
	}

	o.inhibited = reason
	o.inhibitedText = message
	o.hasInhibitMsg = hasMsg
	o.commCheck = commCheck
	o.machineCheck = machineCheck
	o.level = level
	o.fire(ChangeInputInhibited)
}

// Owner returns the session owner code.
func (o *OIA) Owner() int { return o.owner }

// SetOwner records the session owner. Ownership is bookkeeping, not an
// indicator; it notifies nobody.
func (o *OIA) SetOwner(owner int) { o.owner = owner }

// Level returns the subsystem level of the most recent mutation.
func (o *OIA) Level() int { return o.level }
