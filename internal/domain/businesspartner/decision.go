package businesspartner

// Action is the outcome of the confirmation decision for an existing
// address. The "no address at all" case never reaches Decide: the
// workflow resets the record to (checksum="", state=Initial) directly.
type Action int

const (
	// ActionNone: neither an email nor a state change is due
	ActionNone Action = iota

	// ActionEvaluate: attempt to send a confirmation email and persist
	// the resulting state
	ActionEvaluate
)

// Decide applies the confirmation rules to the stored checksum/state and
// the freshly computed checksum:
//
//   - unchanged address in a non-Initial state: nothing to do, the
//     contact was already notified (Open) or already confirmed.
//   - Open state: never re-notify, even when the address changed again.
//     A pending confirmation covers subsequent edits.
//   - otherwise the address changed, or a previous send attempt left the
//     state at Initial: evaluate a (re-)send.
//
// The Open-and-changed no-op is deliberate and pinned by tests; a naive
// "re-send on change" reading of the rules is wrong.
func Decide(oldChecksum, newChecksum string, oldState ConfirmationState) Action {
	changed := newChecksum != oldChecksum

	if !changed && oldState != StateInitial {
		return ActionNone
	}

	if oldState == StateOpen {
		return ActionNone
	}

	return ActionEvaluate
}
