package menu

import "fmt"

// ParseError is returned when a structural directive cannot be trusted.
// No partial tree is returned alongside it.
type ParseError struct {
	LineNum int    // 1-indexed line number in the menu text
	Line    string // The offending line, verbatim
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("menu line %d: %s: %s", e.LineNum, e.Reason, e.Line)
}

// NotFoundError is returned when a lookup finds no matching section.
type NotFoundError struct {
	What  string // "section" or "airport"
	Query string // Exact title or airport prefix that was searched for
}

func (e *NotFoundError) Error() string {
	if e.What == "airport" {
		return fmt.Sprintf("no section found for airport %q", e.Query)
	}
	return fmt.Sprintf("no %s found with title %q", e.What, e.Query)
}
