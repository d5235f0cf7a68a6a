package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info":
		return SevInfo, true
	case "warning":
		return SevWarning, true
	case "error":
		return SevError, true
	}
	return 0, false
}

// Category separates problems with the comment's structure from problems
// with a type annotation inside it.
type Category uint8

const (
	CatParser Category = iota
	CatType
)

func (c Category) String() string {
	if c == CatType {
		return "type"
	}
	return "parser"
}
