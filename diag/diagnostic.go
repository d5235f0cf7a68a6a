package diag

import (
	"fmt"

	"github.com/dhamidi/closuredoc/source"
)

// TypePrefix is prepended to the message of every type diagnostic.
const TypePrefix = "Bad type annotation. "

type Diagnostic struct {
	Severity Severity
	Category Category
	Message  string
	File     string
	Span     source.Span
}

// Text returns the full message as shown to users.
func (d Diagnostic) Text() string {
	if d.Category == CatType {
		return TypePrefix + d.Message
	}
	return d.Message
}

func (d Diagnostic) String() string {
	file := d.File
	if file == "" {
		file = "<comment>"
	}
	return fmt.Sprintf("%s:%s: %s: %s", file, d.Span.Start, d.Severity, d.Text())
}

func (d Diagnostic) Error() string {
	return d.String()
}
