package mvcontext

import (
	"io"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// Frame is a column-oriented table: one column per attribute, in attribute
// order, plus the row (object) names.
type Frame struct {
	Index   []string
	Columns map[string][]float64
}

// ToJSON writes the context as JSON. Not implemented.
func (c *Context) ToJSON(w io.Writer) error {
	return errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.ToJSON")
}

// FromJSON reads a context written by ToJSON. Not implemented.
func FromJSON(r io.Reader) (*Context, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.FromJSON")
}

// ToCSV writes the context as delimited text. Not implemented.
func (c *Context) ToCSV(w io.Writer, sep rune) error {
	return errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.ToCSV")
}

// FromCSV reads delimited text. Not implemented.
func FromCSV(r io.Reader, sep rune, types PatternTypes) (*Context, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.FromCSV")
}

// ToFrame converts the context into a Frame. Not implemented.
func (c *Context) ToFrame() (*Frame, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.ToFrame")
}

// FromFrame builds a context from a Frame. Not implemented.
func FromFrame(f *Frame, types PatternTypes) (*Context, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "MultiValuedContext.FromFrame")
}
