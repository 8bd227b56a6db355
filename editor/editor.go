// Package editor implements the editing core: buffers, keymaps, the
// command set, the renderer and the event loop that ties them to a
// terminal.
package editor

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/davazp/rile/color"
)

// ErrQuit is reported when the user aborts the current event loop
// with keyboard-quit.
var ErrQuit = errors.New("quit")

// Theme holds the resolved frame colors.
type Theme struct {
	ModelineFg  color.Color
	ModelineBg  color.Color
	GutterFg    color.Color
	HighlightFg color.Color
	HighlightBg color.Color
}

func mustColor(spec string) color.Color {
	c, err := color.Parse(spec)
	if err != nil {
		panic("editor: bad theme color " + spec)
	}
	return c
}

// DefaultTheme returns the colors used when no configuration
// overrides them.
func DefaultTheme() Theme {
	return Theme{
		ModelineFg:  mustColor("15"),
		ModelineBg:  mustColor("236"),
		GutterFg:    mustColor("240"),
		HighlightFg: mustColor("0"),
		HighlightBg: mustColor("11"),
	}
}

// Options configures a new editor.
type Options struct {
	// Filename is loaded into the main buffer when non-empty.
	Filename string

	// LineNumbers enables the line-number gutter of the main window.
	LineNumbers bool

	Theme Theme

	// Resized is set by the resize signal handler and polled by the
	// event loop. It may be nil when resizes cannot happen.
	Resized *atomic.Bool
}

// goalColumn is the column vertical motion tries to reach. The event
// loop clears it after any command that does not ask to preserve it,
// so it only survives across runs of pure vertical motion.
type goalColumn struct {
	column     int
	set        bool
	toPreserve bool
}

// getOrSet marks the goal column as preserved for this command and
// returns it, initializing it from current when unset.
func (g *goalColumn) getOrSet(current int) int {
	g.toPreserve = true
	if !g.set {
		g.column = current
		g.set = true
	}
	return g.column
}

func (g *goalColumn) clear() {
	g.set = false
	g.column = 0
}

// Editor is the shared state all commands operate on.
type Editor struct {
	buffers BufferList
	windows WindowList
	loop    eventLoopState
	goal    goalColumn
	prompt  string // text readString is prompting with, "" otherwise
	theme   Theme
	resized *atomic.Bool
}

// New builds an editor. The main buffer is loaded from
// Options.Filename if given, otherwise it starts empty.
func New(opts Options) *Editor {
	var main *Buffer
	if opts.Filename != "" {
		main = NewBufferFromFile(opts.Filename)
	} else {
		main = NewBuffer()
	}

	theme := opts.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme()
	}

	return &Editor{
		buffers: BufferList{
			main:       main,
			minibuffer: newMinibuffer(),
		},
		windows: WindowList{
			main: Window{
				bufferRef:    mainBufferRef,
				showLines:    opts.LineNumbers,
				showModeline: true,
			},
			minibuffer: Window{
				bufferRef: minibufferRef,
			},
		},
		theme:   theme,
		resized: opts.Resized,
	}
}

// newMinibuffer builds the minibuffer: a regular buffer whose keymap
// completes the pending prompt on RET.
func newMinibuffer() *Buffer {
	b := NewBuffer()
	b.Keymap.DefineKey("RET", minibufferComplete)
	return b
}

// MainBuffer returns the buffer holding the edited file.
func (ed *Editor) MainBuffer() *Buffer {
	return ed.buffers.main
}

// Minibuffer returns the message and prompt buffer.
func (ed *Editor) Minibuffer() *Buffer {
	return ed.buffers.minibuffer
}

// CurrentBuffer returns the buffer of the focused window.
func (ed *Editor) CurrentBuffer() *Buffer {
	return ed.buffers.Resolve(ed.windows.current().bufferRef)
}

// Message shows a formatted message in the minibuffer. It replaces
// any previous content, including an active prompt.
func (ed *Editor) Message(format string, args ...any) {
	ed.buffers.minibuffer.Set(fmt.Sprintf(format, args...))
}

// promptEnd returns the first column the cursor may occupy on the
// given line of the focused buffer. While a prompt is being read its
// text sits at the start of the first minibuffer line and is not
// editable.
func (ed *Editor) promptEnd(line int) int {
	if line == 0 && ed.windows.minibufferFocused {
		return len(ed.prompt)
	}
	return 0
}
