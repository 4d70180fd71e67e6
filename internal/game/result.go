package game

// Reason classifies why an intent was refused. Gameplay failures are never
// Go errors: every intent returns a Result and leaves state untouched on
// refusal.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInsufficientFunds   Reason = "insufficient_funds"
	ReasonInsufficientWorkers Reason = "insufficient_workers"
	ReasonInvalidPlacement    Reason = "invalid_placement"
	ReasonInsufficientXP      Reason = "insufficient_xp"
	ReasonMissingDefinition   Reason = "missing_definition"
	ReasonMissingInstance     Reason = "missing_instance"
	ReasonWrongMode           Reason = "wrong_mode"
	ReasonMaxLevel            Reason = "max_level"
)

// Result is the outcome of a mutating intent.
type Result struct {
	OK     bool   `json:"ok"`
	Reason Reason `json:"reason,omitempty"`
}

func ok() Result           { return Result{OK: true} }
func fail(r Reason) Result { return Result{Reason: r} }

// NotificationKind distinguishes the modal acknowledgements the player
// must dismiss, as opposed to transient failure feedback.
type NotificationKind string

const (
	NoteLevelUp  NotificationKind = "level_up"
	NoteOffline  NotificationKind = "offline"
	NoteReferral NotificationKind = "referral"
)

// Notification is a pending modal event. Offline fields are only set for
// NoteOffline; Level only for NoteLevelUp.
type Notification struct {
	Kind           NotificationKind `json:"kind"`
	Level          int              `json:"level,omitempty"`
	Coins          int64            `json:"coins,omitempty"`
	XP             int64            `json:"xp,omitempty"`
	ElapsedSeconds int64            `json:"elapsed_seconds,omitempty"`
}
