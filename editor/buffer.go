package editor

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/davazp/rile/logger"
)

// ErrNoFile is reported when saving a buffer that has no file name.
var ErrNoFile = errors.New("no file")

// Cursor is a position inside a buffer. Column is a byte offset into
// the line.
type Cursor struct {
	Line   int
	Column int
}

// Buffer holds text being edited as a list of lines without newline
// terminators. The line list is never empty.
type Buffer struct {
	Keymap   *Keymap
	Filename string

	// The cursor is always a valid position in the buffer. Commands
	// must re-validate it after structural changes.
	Cursor Cursor

	// Highlight marks a substring for the renderer. Empty means no
	// highlight.
	Highlight string

	lines []string
}

// NewBuffer returns an empty buffer with the default keymap.
func NewBuffer() *Buffer {
	return &Buffer{
		lines:  []string{""},
		Keymap: Defaults(),
	}
}

// NewBufferFromString returns a buffer holding s.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.Set(s)
	return b
}

// NewBufferFromFile loads path into a new buffer. A file that does
// not exist yet yields an empty buffer that will be created on save.
// Any other read failure yields an empty buffer with no file name, so
// an unreadable file cannot be clobbered by accident.
func NewBufferFromFile(path string) *Buffer {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot read file", "path", path, "err", err)
			return NewBuffer()
		}
		b := NewBuffer()
		b.Filename = path
		logger.Info("new file", "path", path)
		return b
	}
	b := NewBufferFromString(string(content))
	b.Filename = path
	logger.Info("loaded file", "path", path, "lines", b.LinesCount())
	return b
}

// Set replaces the buffer contents and moves the cursor to the
// origin. Splitting on '\n' keeps a trailing empty element, so a
// trailing newline in s survives a Set/String round trip.
func (b *Buffer) Set(s string) {
	b.lines = strings.Split(s, "\n")
	b.Cursor = Cursor{}
}

// Truncate empties the buffer.
func (b *Buffer) Truncate() {
	b.lines = []string{""}
	b.Cursor = Cursor{}
}

// String returns the buffer contents with lines joined by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Line returns the nth line, reporting false when out of range.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 0 || n >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// LinesCount returns the number of lines, always at least one.
func (b *Buffer) LinesCount() int {
	return len(b.lines)
}

// InsertLineAt inserts line so it becomes the nth line.
func (b *Buffer) InsertLineAt(n int, line string) {
	b.lines = slices.Insert(b.lines, n, line)
}

// RemoveLine removes and returns the nth line.
func (b *Buffer) RemoveLine(n int) string {
	line := b.lines[n]
	b.lines = slices.Delete(b.lines, n, n+1)
	return line
}

// RemoveCharAt removes the byte at the given position.
func (b *Buffer) RemoveCharAt(line, column int) {
	s := b.lines[line]
	b.lines[line] = s[:column] + s[column+1:]
}

// Save writes the buffer to its file and returns the written path.
func (b *Buffer) Save() (string, error) {
	if b.Filename == "" {
		return "", ErrNoFile
	}
	if err := os.WriteFile(b.Filename, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("cannot save %s: %w", b.Filename, err)
	}
	return b.Filename, nil
}

// search returns the first occurrence of query at or after from.
func (b *Buffer) search(query string, from Cursor) (Cursor, bool) {
	col := from.Column
	for line := from.Line; line < len(b.lines); line++ {
		s := b.lines[line]
		if col > len(s) {
			col = len(s)
		}
		if idx := strings.Index(s[col:], query); idx >= 0 {
			return Cursor{Line: line, Column: col + idx}, true
		}
		col = 0
	}
	return Cursor{}, false
}

//----------------------------------------------------------------------------
// buffer list
//----------------------------------------------------------------------------

// BufferRef is a stable handle to a buffer in a BufferList. Windows
// hold references instead of buffers so the two can evolve
// independently.
type BufferRef int

const (
	mainBufferRef BufferRef = iota
	minibufferRef
)

// BufferList names the two buffers of the editor.
type BufferList struct {
	main       *Buffer
	minibuffer *Buffer
}

// Resolve returns the buffer a reference points to. It panics on a
// reference that cannot exist; callers only ever hold the two
// well-known references.
func (bl *BufferList) Resolve(ref BufferRef) *Buffer {
	switch ref {
	case mainBufferRef:
		return bl.main
	case minibufferRef:
		return bl.minibuffer
	}
	panic("editor: cannot resolve a buffer that does not exist")
}
