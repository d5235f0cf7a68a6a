// Package format renders parsed documentation comments.
package format

import (
	"encoding"

	"github.com/dhamidi/closuredoc/jsdoc"
)

// File is the unit every encoder works on: the comments of one JavaScript
// file in source order.
type File struct {
	Name string
	Docs []jsdoc.Doc
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(file File) error
}
