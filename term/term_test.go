package term

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/davazp/rile/key"
)

func TestOutputBuffering(t *testing.T) {
	var out bytes.Buffer
	tm := NewWriter(&out, 24, 80)
	tm.MoveTo(5, 3)
	tm.WriteString("hi")
	if out.Len() != 0 {
		t.Errorf("frame reached the terminal before Flush: %q", out.String())
	}
	if err := tm.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\x1b[5;3Hhi"; got != want {
		t.Errorf("bad frame: got %q, want %q", got, want)
	}
}

func TestFlushFailure(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	r.Close()
	w.Close()
	tm := NewWriter(w, 24, 80)
	tm.WriteString("hi")
	if err := tm.Flush(); !errors.Is(err, ErrTerm) {
		t.Errorf("bad error: got %v, want ErrTerm", err)
	}
}

func TestControlSequences(t *testing.T) {
	tests := []struct {
		name string
		emit func(*Term)
		want string
	}{
		{"clear", (*Term).Clear, "\x1b[2J"},
		{"hide cursor", (*Term).HideCursor, "\x1b[?25l"},
		{"show cursor", (*Term).ShowCursor, "\x1b[?25h"},
		{"enter alternate screen", (*Term).EnterAlternateScreen, "\x1b[?1049h"},
		{"exit alternate screen", (*Term).ExitAlternateScreen, "\x1b[?1049l"},
		{"erase to end", func(tm *Term) { tm.EraseLine(EraseToEnd) }, "\x1b[0K"},
		{"erase line", func(tm *Term) { tm.EraseLine(EraseAll) }, "\x1b[2K"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		tm := NewWriter(&out, 24, 80)
		tt.emit(tm)
		if err := tm.Flush(); err != nil {
			t.Fatalf("%s: Flush: %v", tt.name, err)
		}
		if out.String() != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, out.String(), tt.want)
		}
	}
}

func TestFixedWindowSize(t *testing.T) {
	tm := NewWriter(io.Discard, 10, 40)
	rows, cols := tm.WindowSize()
	if rows != 10 || cols != 40 {
		t.Errorf("bad size: got %dx%d, want 10x40", rows, cols)
	}
}

// pipeTerm returns a Term whose input can be fed through the returned
// write end.
func pipeTerm(t *testing.T) (*Term, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return New(r, io.Discard), w
}

func TestReadKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  key.Key
	}{
		{"plain", "q", key.FromChar('q')},
		{"control", "\x11", key.FromChar('q').Ctrl()},
		{"meta", "\x1bv", key.FromChar('v').Alt()},
		{"arrow up", "\x1b[A", key.FromChar('p').Ctrl()},
		{"arrow down", "\x1b[B", key.FromChar('n').Ctrl()},
		{"arrow right", "\x1b[C", key.FromChar('f').Ctrl()},
		{"arrow left", "\x1b[D", key.FromChar('b').Ctrl()},
		{"high byte", "\xc3", key.FromCode(0xc3)},
	}
	for _, tt := range tests {
		tm, w := pipeTerm(t)
		if _, err := w.WriteString(tt.input); err != nil {
			t.Fatalf("%s: write: %v", tt.name, err)
		}
		got, ok := tm.ReadKeyTimeout()
		if !ok {
			t.Errorf("%s: no key", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReadKeyTimesOut(t *testing.T) {
	tm, _ := pipeTerm(t)
	start := time.Now()
	if k, ok := tm.ReadKeyTimeout(); ok {
		t.Fatalf("read %v from empty input", k)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("poll took %v", elapsed)
	}
}

func TestReadKeyLoneEscape(t *testing.T) {
	tm, w := pipeTerm(t)
	if _, err := w.WriteString("\x1b"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := tm.ReadKeyTimeout()
	if !ok {
		t.Fatal("no key")
	}
	if want := key.FromCode(0x1b); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadKeySkipsUnknownSequences(t *testing.T) {
	tm, w := pipeTerm(t)
	if _, err := w.WriteString("\x1b[5~q"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if k, ok := tm.ReadKeyTimeout(); ok {
		t.Fatalf("unknown sequence produced %v", k)
	}
	got, ok := tm.ReadKeyTimeout()
	if !ok {
		t.Fatal("key after unknown sequence was lost")
	}
	if want := key.FromChar('q'); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadKeyPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	tm := New(tty, io.Discard)
	if err := tm.EnterRawMode(); err != nil {
		t.Skipf("raw mode unavailable: %v", err)
	}
	defer tm.Restore()

	if _, err := ptmx.WriteString("\x1b[D"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := tm.ReadKeyTimeout()
	if !ok {
		t.Fatal("no key")
	}
	if want := key.FromChar('b').Ctrl(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ptmx.WriteString("abc"); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	tm.DiscardInput()
	if k, ok := tm.ReadKeyTimeout(); ok {
		t.Errorf("read %v after DiscardInput", k)
	}
}

func TestReadKeyBlockingTTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	// A session reads stdin through a blocking descriptor that cannot
	// carry read deadlines. pty.Open hands out non-blocking files, so
	// reopen the slave by path to get the same shape as stdin.
	fd, err := unix.Open(tty.Name(), unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", tty.Name(), err)
	}
	in := os.NewFile(uintptr(fd), tty.Name())
	defer in.Close()
	if in.SetReadDeadline(time.Now()) == nil {
		t.Skip("descriptor supports deadlines")
	}

	tm := New(in, io.Discard)
	if err := tm.EnterRawMode(); err != nil {
		t.Skipf("raw mode unavailable: %v", err)
	}
	defer tm.Restore()

	if k, ok := tm.ReadKeyTimeout(); ok {
		t.Fatalf("read %v from an idle terminal", k)
	}
	if tm.InputClosed() {
		t.Fatal("bad InputClosed: got true, want false after an idle poll")
	}

	if _, err := ptmx.WriteString("q"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := tm.ReadKeyTimeout()
	if !ok {
		t.Fatal("no key after the idle poll")
	}
	if want := key.FromChar('q'); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNotifyResize(t *testing.T) {
	var flag atomic.Bool
	stop := NotifyResize(&flag)
	defer stop()

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("FindProcess: %v", err)
	}
	if err := p.Signal(unix.SIGWINCH); err != nil {
		t.Fatalf("signal: %v", err)
	}
	deadline := time.Now().Add(time.Second)
	for !flag.Load() {
		if time.Now().After(deadline) {
			t.Fatal("resize flag never set")
		}
		time.Sleep(time.Millisecond)
	}
}
