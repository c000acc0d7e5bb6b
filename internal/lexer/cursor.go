package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"morph/internal/source"
)

// Cursor is a byte position inside one file's content.
type Cursor struct {
	File    source.FileID
	Content []byte
	Off     uint32
	Limit   uint32 // exclusive upper bound for Off
}

// NewCursor creates a new cursor over content.
func NewCursor(file source.FileID, content []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:    file,
		Content: content,
		Limit:   limit,
	}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Content[c.Off]
}

// Peek2 returns the current and the next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Content[c.Off], c.Content[c.Off+1], true
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Content[c.Off]
	c.Off++
	return b
}

// Mark remembers a position to build spans from.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span from m to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
