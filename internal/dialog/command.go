package dialog

import "context"

// TerminationReason says why a dialog closed.
type TerminationReason int

const (
	ReasonUnknown TerminationReason = iota
	ReasonCompleted
	ReasonAborted
	ReasonCancelled
	ReasonPreEmpted
	ReasonSessionEnding
)

func (r TerminationReason) String() string {
	switch r {
	case ReasonCompleted:
		return "Completed"
	case ReasonAborted:
		return "Aborted"
	case ReasonCancelled:
		return "Cancelled"
	case ReasonPreEmpted:
		return "PreEmpted"
	case ReasonSessionEnding:
		return "SessionEnding"
	case ReasonUnknown:
		return "Unknown"
	default:
		return "Unrecognized"
	}
}

// Command is the lifecycle a host calls on a dialog.
type Command interface {
	// OnCreate populates in with the dialog's fields.
	OnCreate(ctx context.Context, in *Inputs) error

	// OnPreview validates the current field values and flags bad fields.
	OnPreview(ctx context.Context, in *Inputs) bool

	// OnExecute applies the dialog. It returns false when any part of the
	// execution failed; failures are reported to the user, never fatal.
	OnExecute(ctx context.Context, in *Inputs) bool

	// OnDestroy is called when the dialog closes and reports whether the
	// host should open it again.
	OnDestroy(ctx context.Context, reason TerminationReason) bool
}

// Messenger shows a message to the user.
type Messenger interface {
	MessageBox(msg string)
}

// Reloader restarts the add-in that owns the dialog.
type Reloader interface {
	Reload(ctx context.Context) error
}
