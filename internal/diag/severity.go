package diag

// Severity classifies a diagnostic: Error, Warning, Note, or Help.
// Ordered so that Sort and HasErrors/HasWarnings can compare numerically.
type Severity uint8

const (
	SevHelp Severity = iota
	SevNote
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevNote:
		return "note"
	case SevHelp:
		return "help"
	default:
		return "unknown"
	}
}
