// Package term is the terminal adapter: raw mode, window size, timed
// byte-oriented input decoding and buffered CSI output.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/davazp/rile/key"
)

// readTimeout is how long a single input poll waits before giving up.
// It matches the VTIME tenth-of-a-second granularity set in raw mode.
const readTimeout = 100 * time.Millisecond

// ErrTerm marks unrecoverable terminal failures. Callers use it to
// tell a dead terminal apart from ordinary command errors.
var ErrTerm = errors.New("terminal failure")

const (
	defaultRows = 24
	defaultCols = 80
)

// Term talks to one terminal. Output is buffered and only reaches the
// terminal on Flush, so a frame is always written in one piece.
type Term struct {
	in    *os.File
	fd    int
	out   *bufio.Writer
	rows  int
	cols  int
	fixed bool

	state      *xterm.State
	noDeadline bool
	eof        bool
}

// New returns a Term reading keys from in and writing frames to out.
func New(in *os.File, out io.Writer) *Term {
	return &Term{
		in:   in,
		fd:   int(in.Fd()),
		out:  bufio.NewWriter(out),
		rows: defaultRows,
		cols: defaultCols,
	}
}

// NewWriter returns an output-only Term with a fixed window size.
// Reads always time out. It is meant for exercising the renderer
// against an in-memory terminal.
func NewWriter(out io.Writer, rows, cols int) *Term {
	return &Term{
		in:    nil,
		fd:    -1,
		out:   bufio.NewWriter(out),
		rows:  rows,
		cols:  cols,
		fixed: true,
	}
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// EnterRawMode switches the input terminal to raw mode and arranges
// for reads to wait at most a tenth of a second. Restore undoes it.
func (t *Term) EnterRawMode() error {
	if t.in == nil {
		return nil
	}
	state, err := xterm.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("cannot enter raw mode: %w", err)
	}
	t.state = state

	// MakeRaw leaves reads fully blocking (VMIN=1). Timed polling
	// needs VMIN=0, VTIME=1 so a read returns empty after 100ms.
	raw, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("cannot read terminal attributes: %w", err)
	}
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, raw); err != nil {
		return fmt.Errorf("cannot set terminal attributes: %w", err)
	}
	return nil
}

// Restore puts the terminal back into the mode it had before
// EnterRawMode.
func (t *Term) Restore() error {
	if t.state == nil {
		return nil
	}
	err := xterm.Restore(t.fd, t.state)
	t.state = nil
	return err
}

// WindowSize returns the current terminal dimensions. When the size
// cannot be queried the last known size is returned.
func (t *Term) WindowSize() (rows, cols int) {
	if t.fixed {
		return t.rows, t.cols
	}
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err == nil && ws.Row > 0 && ws.Col > 0 {
		t.rows = int(ws.Row)
		t.cols = int(ws.Col)
	}
	return t.rows, t.cols
}

// CanRead reports whether this Term has an input source.
func (t *Term) CanRead() bool {
	return t.in != nil
}

func (t *Term) readByte() (byte, bool) {
	if t.in == nil {
		return 0, false
	}
	if !t.noDeadline {
		if err := t.in.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			// Reads on this descriptor cannot carry a deadline;
			// fall back on the VTIME granted by raw mode.
			t.noDeadline = true
		}
	}
	var buf [1]byte
	_, err := t.in.Read(buf[:])
	if err != nil {
		// Without deadline support an expired VTIME timer is a zero
		// byte read, which os.File reports as io.EOF. A hung up
		// terminal reports EIO instead, so EOF here only means the
		// poll ran out.
		if t.noDeadline && errors.Is(err, io.EOF) {
			return 0, false
		}
		if !os.IsTimeout(err) {
			t.eof = true
		}
		return 0, false
	}
	return buf[0], true
}

// InputClosed reports whether the input source has reached a
// permanent end: further reads will never deliver a key.
func (t *Term) InputClosed() bool {
	return t.eof
}

// ReadKeyTimeout reads the next keystroke. It returns false when no
// key arrived within the poll interval. A lone ESC is reported as the
// ESC key, ESC followed by a byte as a meta key, and the arrow CSI
// sequences are translated to their control equivalents. Any other
// escape sequence is consumed and dropped.
func (t *Term) ReadKeyTimeout() (key.Key, bool) {
	b, ok := t.readByte()
	if !ok {
		return key.Key{}, false
	}
	if b != 0x1b {
		return key.FromCode(rune(b)), true
	}
	b, ok = t.readByte()
	if !ok {
		return key.FromCode(0x1b), true
	}
	if b != '[' {
		return key.FromCode(rune(b)).Alt(), true
	}
	for {
		b, ok = t.readByte()
		if !ok {
			return key.Key{}, false
		}
		switch b {
		case 'A':
			return key.FromChar('p').Ctrl(), true
		case 'B':
			return key.FromChar('n').Ctrl(), true
		case 'C':
			return key.FromChar('f').Ctrl(), true
		case 'D':
			return key.FromChar('b').Ctrl(), true
		}
		if b >= 0x40 && b <= 0x7e {
			// Final byte of a sequence we do not handle.
			return key.Key{}, false
		}
	}
}

// DiscardInput drops any keystrokes typed but not yet read.
func (t *Term) DiscardInput() {
	if t.in == nil {
		return
	}
	_ = tcflush(t.fd)
}

// WriteString appends s to the pending frame.
func (t *Term) WriteString(s string) {
	_, _ = t.out.WriteString(s)
}

// Csi appends a control sequence with the given parameters and final
// byte to the pending frame.
func (t *Term) Csi(params string) {
	t.WriteString("\x1b[" + params)
}

// MoveTo places the cursor at a 1-based row and column.
func (t *Term) MoveTo(row, col int) {
	t.Csi(fmt.Sprintf("%d;%dH", row, col))
}

// Clear erases the whole screen.
func (t *Term) Clear() {
	t.Csi("2J")
}

// ErasePart selects what part of the line EraseLine removes.
type ErasePart int

const (
	EraseToEnd   ErasePart = 0 // from the cursor to the end of the line
	EraseToStart ErasePart = 1 // from the start of the line to the cursor
	EraseAll     ErasePart = 2 // the whole line
)

// EraseLine erases part of the line the cursor is on.
func (t *Term) EraseLine(part ErasePart) {
	t.Csi(fmt.Sprintf("%dK", int(part)))
}

// HideCursor makes the cursor invisible until ShowCursor.
func (t *Term) HideCursor() {
	t.Csi("?25l")
}

// ShowCursor makes the cursor visible again.
func (t *Term) ShowCursor() {
	t.Csi("?25h")
}

// EnterAlternateScreen switches to the alternate screen buffer so the
// shell content reappears intact on exit.
func (t *Term) EnterAlternateScreen() {
	t.Csi("?1049h")
}

// ExitAlternateScreen switches back to the main screen buffer.
func (t *Term) ExitAlternateScreen() {
	t.Csi("?1049l")
}

// Flush writes the pending frame to the terminal.
func (t *Term) Flush() error {
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("%w: cannot write: %v", ErrTerm, err)
	}
	return nil
}

// NotifyResize arranges for flag to be set whenever the terminal is
// resized. The returned function stops the notifications.
func NotifyResize(flag *atomic.Bool) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	go func() {
		for range ch {
			flag.Store(true)
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
