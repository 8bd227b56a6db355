package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/davazp/rile/term"
)

// Region is a horizontal band of the terminal. Top is the 0-based
// first row.
type Region struct {
	Top    int
	Height int
}

// Window is a viewport onto a buffer: a scroll origin plus flags for
// the line-number gutter and the modeline.
type Window struct {
	bufferRef    BufferRef
	scrollLine   int
	showLines    bool
	showModeline bool
}

// WindowList is the fixed layout: the main window on top, the
// minibuffer window at the bottom.
type WindowList struct {
	main              Window
	minibuffer        Window
	minibufferFocused bool
}

func (w *WindowList) current() *Window {
	if w.minibufferFocused {
		return &w.minibuffer
	}
	return &w.main
}

//----------------------------------------------------------------------------
// layout
//----------------------------------------------------------------------------

// layout splits the terminal between the two windows. The minibuffer
// grows with its content up to a third of the screen; the main window
// takes the rest.
func (ed *Editor) layout(t *term.Term) (main, minibuffer Region) {
	rows, _ := t.WindowSize()

	height := ed.buffers.minibuffer.LinesCount()
	if max := rows / 3; height > max {
		height = max
	}

	minibuffer = Region{Top: rows - height, Height: height}
	main = Region{Top: 0, Height: rows - height}
	return main, minibuffer
}

func (ed *Editor) currentRegion(t *term.Term) Region {
	main, minibuffer := ed.layout(t)
	if ed.windows.minibufferFocused {
		return minibuffer
	}
	return main
}

// adjustScroll moves the scroll origin of the focused window so the
// cursor stays on the screen. Called after every command.
func (ed *Editor) adjustScroll(t *term.Term) {
	ed.adjustWindowScroll(ed.windows.current(), ed.currentRegion(t))
}

func (ed *Editor) adjustWindowScroll(win *Window, region Region) {
	buf := ed.buffers.Resolve(win.bufferRef)

	if buf.Cursor.Line < win.scrollLine {
		win.scrollLine = buf.Cursor.Line
	}

	lines := win.windowLines(region)
	if lines <= 0 {
		return
	}
	if buf.Cursor.Line > win.scrollLine+lines-1 {
		win.scrollLine = buf.Cursor.Line - lines + 1
	}
}

//----------------------------------------------------------------------------
// window rendering
//----------------------------------------------------------------------------

// windowLines is the number of content rows, excluding the modeline.
func (w *Window) windowLines(region Region) int {
	if w.showModeline {
		return region.Height - 1
	}
	return region.Height
}

// padWidth is the gutter width: wide enough for the largest line
// number this frame could show, plus a separating space.
func (w *Window) padWidth(region Region) int {
	if !w.showLines {
		return 0
	}
	return len(strconv.Itoa(w.scrollLine+region.Height)) + 1
}

func (w *Window) render(t *term.Term, ed *Editor, region Region, flashed bool) {
	w.renderLines(t, ed, region, flashed)
	if w.showModeline {
		w.renderModeline(t, ed, region)
	}
}

// renderLines writes every content row of the window. Rows are padded
// to the full terminal width and never followed by a newline: with
// output processing disabled, the terminal's own autowrap advances to
// the next row, and the wrap pending after the very last cell keeps
// the screen from scrolling.
func (w *Window) renderLines(t *term.Term, ed *Editor, region Region, flashed bool) {
	buf := ed.buffers.Resolve(w.bufferRef)
	pad := w.padWidth(region)

	_, cols := t.WindowSize()
	windowColumns := cols - pad
	if windowColumns < 0 {
		windowColumns = 0
	}

	for row := 0; row < w.windowLines(region); row++ {
		linenum := row + w.scrollLine

		content, present := buf.Line(linenum)
		if len(content) > windowColumns {
			content = content[:windowColumns]
		}

		if w.showLines && present {
			t.WriteString(ed.theme.GutterFg.Fg())
			t.WriteString(fmt.Sprintf("%*d ", pad-1, linenum+1))
		} else {
			t.WriteString(strings.Repeat(" ", pad))
		}

		t.Csi("m")
		if flashed {
			t.Csi("7m")
		}
		writeContent(t, ed, content, buf.Highlight, windowColumns)
	}

	t.Csi("m")
}

func (w *Window) renderModeline(t *term.Term, ed *Editor, region Region) {
	buf := ed.buffers.Resolve(w.bufferRef)
	_, cols := t.WindowSize()

	t.WriteString(ed.theme.ModelineFg.Fg())
	t.WriteString(ed.theme.ModelineBg.Bg())

	var progress string
	switch {
	case w.scrollLine == 0:
		progress = "Top"
	case w.scrollLine+w.windowLines(region)-1 >= buf.LinesCount():
		progress = "Bot"
	default:
		progress = fmt.Sprintf("%d%%", 100*(buf.Cursor.Line+1)/buf.LinesCount())
	}

	name := buf.Filename
	if name == "" {
		name = "*scratch*"
	}

	// Erasing the line does not repaint it with the current background
	// on every terminal, so pad the modeline to the full width instead.
	line := fmt.Sprintf("  %s  %s L%d", name, progress, buf.Cursor.Line+1)
	t.WriteString(runewidth.FillRight(runewidth.Truncate(line, cols, ""), cols))
}

// renderCursor places the terminal cursor on the buffer cursor. When
// the cursor has scrolled out of view above the window there is no
// cell to place it on, so it is left where the frame ended.
func (w *Window) renderCursor(t *term.Term, ed *Editor, region Region) {
	buf := ed.buffers.Resolve(w.bufferRef)
	if buf.Cursor.Line < w.scrollLine {
		return
	}
	row := buf.Cursor.Line - w.scrollLine
	t.MoveTo(region.Top+row+1, buf.Cursor.Column+w.padWidth(region)+1)
}

// writeContent writes one clipped line, marking any occurrences of
// the buffer highlight, and pads it to width.
func writeContent(t *term.Term, ed *Editor, content, highlight string, width int) {
	if highlight == "" || !strings.Contains(content, highlight) {
		writeLine(t, content, width)
		return
	}

	rest := content
	for {
		before, after, found := strings.Cut(rest, highlight)
		t.WriteString(before)
		if !found {
			break
		}
		t.WriteString(ed.theme.HighlightFg.Fg())
		t.WriteString(ed.theme.HighlightBg.Bg())
		t.WriteString(highlight)
		t.Csi("m")
		rest = after
	}
	if len(content) < width {
		t.WriteString(strings.Repeat(" ", width-len(content)))
	}
}

// writeLine writes str padded with spaces to exactly width bytes.
func writeLine(t *term.Term, str string, width int) {
	t.WriteString(str)
	if len(str) < width {
		t.WriteString(strings.Repeat(" ", width-len(str)))
	}
}

//----------------------------------------------------------------------------
// screen
//----------------------------------------------------------------------------

// render draws the whole frame: both windows back to back from the
// top left corner, then the cursor of the focused window.
func (ed *Editor) render(t *term.Term, flashed bool) error {
	mainRegion, minibufferRegion := ed.layout(t)

	t.HideCursor()
	t.MoveTo(1, 1)

	ed.windows.main.render(t, ed, mainRegion, flashed)
	ed.windows.minibuffer.render(t, ed, minibufferRegion, flashed)

	if ed.windows.minibufferFocused {
		ed.windows.minibuffer.renderCursor(t, ed, minibufferRegion)
	} else {
		ed.windows.main.renderCursor(t, ed, mainRegion)
	}

	t.ShowCursor()
	return t.Flush()
}

// refresh makes the terminal reflect the current editor state.
func (ed *Editor) refresh(t *term.Term) error {
	return ed.render(t, false)
}

// ding flashes the screen. Pending input is dropped afterwards so
// holding down the abort key cannot queue up flashes faster than they
// can be shown.
func (ed *Editor) ding(t *term.Term) {
	_ = ed.render(t, true)
	time.Sleep(100 * time.Millisecond)
	t.DiscardInput()
	_ = ed.render(t, false)
}
