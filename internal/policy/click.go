package policy

// ClickOutcome is the result of recording a contact click. Deduplicated is
// not an error: it is a defined successful no-op outcome.
type ClickOutcome string

const (
	// ClickRecorded means this was the session's first engagement with the
	// listing and a row was written
	ClickRecorded ClickOutcome = "recorded"

	// ClickDeduplicated means the (session, listing) pair already had a
	// record, regardless of click type; no write was performed
	ClickDeduplicated ClickOutcome = "deduplicated"
)
