package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates HTML output and remembers the first write error,
// so components can be written as a straight sequence of calls
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewWriter wraps w for component rendering
func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes trusted markup
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes escaped text
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Component renders a nested component
func (hw *Writer) Component(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

// Err returns the first error encountered
func (hw *Writer) Err() error {
	return hw.err
}

// Render adapts a write function into a templ.Component
func Render(fn func(hw *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		fn(hw)
		return hw.Err()
	})
}
