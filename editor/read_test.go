package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/davazp/rile/key"
	"github.com/davazp/rile/term"
)

func TestReadKeyPopsPending(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "a", "b")

	for _, want := range []key.Key{key.FromChar('a'), key.FromChar('b')} {
		k, err := ed.readKey(tm)
		if err != nil {
			t.Fatal(err)
		}
		if k != want {
			t.Errorf("bad key: got %v, want %v", k, want)
		}
	}
	if len(ed.loop.pending) != 0 {
		t.Errorf("pending not drained: %d keys left", len(ed.loop.pending))
	}
}

func TestReadKeyWithoutInputPanics(t *testing.T) {
	ed, tm := testEditor("")
	defer func() {
		if recover() == nil {
			t.Error("no panic reading from a terminal with no input")
		}
	}()
	ed.readKey(tm)
}

func TestReadKeyBindingResolvesPrefix(t *testing.T) {
	ed := New(Options{})
	var out bytes.Buffer
	tm := term.NewWriter(&out, 6, 40)
	feedKeys(t, ed, "C-x", "C-s")

	cmd, keys, err := ed.readKeyBinding(tm)
	if err != nil {
		t.Fatal(err)
	}
	if cmd == nil {
		t.Fatal("C-x C-s did not resolve to a command")
	}
	if got := key.FormatSeq(keys); got != "C-x C-s" {
		t.Errorf("bad sequence: got %q, want %q", got, "C-x C-s")
	}

	// The pending prefix was echoed while waiting for C-s.
	if !strings.Contains(out.String(), "C-x-") {
		t.Error("prefix echo missing from the frame")
	}
}

func TestReadKeyBindingUndefined(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "C-x", "p")

	cmd, keys, err := ed.readKeyBinding(tm)
	if err != nil {
		t.Fatal(err)
	}
	if cmd != nil {
		t.Error("undefined sequence resolved to a command")
	}
	if got := key.FormatSeq(keys); got != "C-x p" {
		t.Errorf("bad sequence: got %q, want %q", got, "C-x p")
	}
}

func TestReadString(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "h", "e", "y", "RET")

	var sawFocused bool
	var sawCursor Cursor
	callback := func(ed *Editor, _ *term.Term) {
		sawFocused = ed.windows.minibufferFocused
		sawCursor = ed.Minibuffer().Cursor
	}

	got, err := ed.readString(tm, "Say: ", callback, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hey" {
		t.Errorf("bad input: got %q, want %q", got, "hey")
	}

	if !sawFocused {
		t.Error("minibuffer was not focused during the prompt")
	}
	if sawCursor.Column <= len("Say: ") {
		t.Errorf("bad prompt cursor: got column %d", sawCursor.Column)
	}

	// The prompt cleans up after itself.
	if ed.windows.minibufferFocused {
		t.Error("minibuffer still focused")
	}
	checkMessage(t, ed, "")
}

func TestReadStringAbort(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "n", "o", "C-g")

	if _, err := ed.readString(tm, "Say: ", nil, false); !errors.Is(err, ErrQuit) {
		t.Errorf("bad error: got %v, want %v", err, ErrQuit)
	}
	if ed.windows.minibufferFocused {
		t.Error("minibuffer still focused after abort")
	}
}

func TestReadStringEditsApplyToPrompt(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "h", "e", "u", "DEL", "y", "RET")

	got, err := ed.readString(tm, "Say: ", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hey" {
		t.Errorf("bad input: got %q, want %q", got, "hey")
	}
}

func TestReadStringPromptNotEditable(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "C-a", "DEL", "DEL", "x", "RET")

	got, err := ed.readString(tm, "Say: ", nil, false)
	if err != nil {
		t.Fatal(err)
	}

	// C-a stops after the prompt and DEL refuses to eat into it.
	if got != "x" {
		t.Errorf("bad input: got %q, want %q", got, "x")
	}
}

func TestReadStringMotionStopsAtPrompt(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "a", "C-b", "C-b", "M-<", "x", "RET")

	got, err := ed.readString(tm, "Say: ", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "xa" {
		t.Errorf("bad input: got %q, want %q", got, "xa")
	}
}

func TestReadStringPreviousLineStopsAtPrompt(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "a", "C-j", "C-p", "x", "RET")

	got, err := ed.readString(tm, "Say: ", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "xa\n" {
		t.Errorf("bad input: got %q, want %q", got, "xa\n")
	}
}

func TestReadStringExitOnUndefined(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "f", "o", "o", "C-t")

	got, err := ed.readString(tm, "Find: ", nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "foo" {
		t.Errorf("bad input: got %q, want %q", got, "foo")
	}

	// The key that ended the prompt is waiting to be read again.
	if got := key.FormatSeq(ed.loop.pending); got != "C-t" {
		t.Errorf("bad pending keys: got %q, want %q", got, "C-t")
	}
}

func TestReadStringPushesBackWholeSequence(t *testing.T) {
	ed, tm := testEditor("")
	feedKeys(t, ed, "a", "C-x", "p")

	got, err := ed.readString(tm, "Find: ", nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a" {
		t.Errorf("bad input: got %q, want %q", got, "a")
	}
	if got := key.FormatSeq(ed.loop.pending); got != "C-x p" {
		t.Errorf("bad pending keys: got %q, want %q", got, "C-x p")
	}
}

func TestReadKeyServesResize(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	resized := new(atomic.Bool)
	resized.Store(true)

	ed := New(Options{Resized: resized})
	var out bytes.Buffer
	tm := term.New(r, &out)

	done := make(chan key.Key, 1)
	go func() {
		k, _ := ed.readKey(tm)
		done <- k
	}()

	// Let at least one poll time out so the resize is observed, then
	// deliver a key.
	time.Sleep(250 * time.Millisecond)
	if _, err := w.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}

	select {
	case k := <-done:
		if k != key.FromChar('q') {
			t.Errorf("bad key: got %v", k)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("readKey did not return")
	}

	if resized.Load() {
		t.Error("resize flag was not consumed")
	}
	if frames := strings.Count(out.String(), "\x1b[?25h"); frames < 2 {
		t.Errorf("bad refresh count: got %d frames, want at least 2", frames)
	}
}

func TestReadKeyInputClosed(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	w.Close()

	ed := New(Options{})
	tm := term.New(r, io.Discard)
	if _, err := ed.readKey(tm); !errors.Is(err, term.ErrTerm) {
		t.Errorf("bad error: got %v, want %v", err, term.ErrTerm)
	}
}
