package editor

import (
	"errors"
	"strings"
	"unicode"

	"github.com/davazp/rile/logger"
	"github.com/davazp/rile/term"
)

// Command errors report boundary conditions. The event loop consumes
// them; they never terminate the program.
var (
	errBeginningOfBuffer = errors.New("beginning of buffer")
	errEndOfBuffer       = errors.New("end of buffer")
)

// contextLines is how many lines of overlap scrolling by screenfuls
// keeps visible.
const contextLines = 2

// lineIndentation returns the column of the first character that is
// not whitespace, or the line length when there is none.
func lineIndentation(line string) int {
	i := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return len(line)
	}
	return i
}

//----------------------------------------------------------------------------
// motion
//----------------------------------------------------------------------------

func moveBeginningOfLine(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	indent := lineIndentation(buf.lines[buf.Cursor.Line])
	if buf.Cursor.Column > indent {
		buf.Cursor.Column = indent
	} else {
		buf.Cursor.Column = 0
	}
	if limit := ed.promptEnd(buf.Cursor.Line); buf.Cursor.Column < limit {
		buf.Cursor.Column = limit
	}
	return nil
}

func moveEndOfLine(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	buf.Cursor.Column = len(buf.lines[buf.Cursor.Line])
	return nil
}

func forwardChar(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	if buf.Cursor.Column < len(buf.lines[buf.Cursor.Line]) {
		buf.Cursor.Column++
		return nil
	}
	if err := nextLine(ed, t); err != nil {
		return err
	}
	buf.Cursor.Column = 0
	return nil
}

func backwardChar(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	limit := ed.promptEnd(buf.Cursor.Line)
	if buf.Cursor.Column > limit {
		buf.Cursor.Column--
		return nil
	}
	if limit > 0 {
		// The cursor does not enter the prompt.
		return errBeginningOfBuffer
	}
	if err := previousLine(ed, t); err != nil {
		return err
	}
	return moveEndOfLine(ed, t)
}

func nextLine(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	if buf.Cursor.Line >= buf.LinesCount()-1 {
		ed.Message("End of buffer")
		return errEndOfBuffer
	}
	goal := ed.goal.getOrSet(buf.Cursor.Column)
	buf.Cursor.Line++
	buf.Cursor.Column = min(len(buf.lines[buf.Cursor.Line]), goal)
	return nil
}

func previousLine(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	if buf.Cursor.Line == 0 {
		ed.Message("Beginning of buffer")
		return errBeginningOfBuffer
	}
	goal := ed.goal.getOrSet(buf.Cursor.Column)
	buf.Cursor.Line--
	buf.Cursor.Column = min(len(buf.lines[buf.Cursor.Line]), goal)
	if limit := ed.promptEnd(buf.Cursor.Line); buf.Cursor.Column < limit {
		buf.Cursor.Column = limit
	}
	return nil
}

func beginningOfBuffer(ed *Editor, _ *term.Term) error {
	ed.CurrentBuffer().Cursor = Cursor{Column: ed.promptEnd(0)}
	return nil
}

func endOfBuffer(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	line := buf.LinesCount() - 1
	buf.Cursor = Cursor{Line: line, Column: len(buf.lines[line])}
	return nil
}

//----------------------------------------------------------------------------
// editing
//----------------------------------------------------------------------------

// insertChar inserts ch at the cursor. It backs self-insert, so it is
// not a Command itself.
func insertChar(ed *Editor, ch rune) {
	buf := ed.CurrentBuffer()
	cur := buf.Cursor
	line := buf.lines[cur.Line]
	buf.lines[cur.Line] = line[:cur.Column] + string(ch) + line[cur.Column:]
	buf.Cursor.Column += len(string(ch))
}

func deleteChar(ed *Editor, t *term.Term) error {
	if err := forwardChar(ed, t); err != nil {
		return err
	}
	return deleteBackwardChar(ed, t)
}

func deleteBackwardChar(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()

	// promptEnd keeps deletion out of an active prompt; a cursor on
	// its boundary deletes nothing.
	switch {
	case buf.Cursor.Column > ed.promptEnd(buf.Cursor.Line):
		buf.Cursor.Column--
		buf.RemoveCharAt(buf.Cursor.Line, buf.Cursor.Column)
	case buf.Cursor.Line > 0:
		// Join the current line onto the previous one.
		line := buf.RemoveLine(buf.Cursor.Line)
		previous := buf.lines[buf.Cursor.Line-1]
		buf.lines[buf.Cursor.Line-1] = previous + line

		buf.Cursor.Line--
		buf.Cursor.Column = len(previous)
	}

	return nil
}

func killLine(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	line := buf.lines[buf.Cursor.Line]
	if buf.Cursor.Column == len(line) {
		if buf.Cursor.Line < buf.LinesCount()-1 {
			return deleteChar(ed, t)
		}
		return nil
	}
	buf.lines[buf.Cursor.Line] = line[:buf.Cursor.Column]
	return nil
}

func newline(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	cur := buf.Cursor
	line := buf.lines[cur.Line]

	buf.lines[cur.Line] = line[:cur.Column]
	buf.InsertLineAt(cur.Line+1, line[cur.Column:])
	buf.Cursor = Cursor{Line: cur.Line + 1}
	return nil
}

func indentLine(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	indent := lineIndentation(buf.lines[buf.Cursor.Line])
	if buf.Cursor.Column < indent {
		buf.Cursor.Column = indent
	}
	return nil
}

//----------------------------------------------------------------------------
// files
//----------------------------------------------------------------------------

func saveBuffer(ed *Editor, _ *term.Term) error {
	buf := ed.CurrentBuffer()
	path, err := buf.Save()
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			ed.Message("No file")
		} else {
			logger.Error("saving buffer failed", "path", buf.Filename, "err", err)
			ed.Message("Could not save file")
		}
		return err
	}
	logger.Info("wrote file", "path", path, "lines", buf.LinesCount())
	ed.Message("Wrote %s", path)
	return nil
}

//----------------------------------------------------------------------------
// scrolling
//----------------------------------------------------------------------------

// screenOffset is how far scrolling by a screenful moves: one window
// minus the overlap.
func screenOffset(win *Window, region Region) int {
	offset := win.windowLines(region) - 1 - contextLines
	if offset < 0 {
		return 0
	}
	return offset
}

func nextScreen(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	win := ed.windows.current()
	region := ed.currentRegion(t)

	target := win.scrollLine + screenOffset(win, region)
	if target >= buf.LinesCount() {
		ed.Message("End of buffer")
		return errEndOfBuffer
	}
	win.scrollLine = target
	buf.Cursor.Line = target
	buf.Cursor.Column = min(buf.Cursor.Column, len(buf.lines[target]))
	return nil
}

func previousScreen(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	win := ed.windows.current()
	region := ed.currentRegion(t)

	if win.scrollLine == 0 {
		ed.Message("Beginning of buffer")
		return errBeginningOfBuffer
	}

	line := min(win.scrollLine+contextLines, buf.LinesCount()-1)
	buf.Cursor.Line = line
	buf.Cursor.Column = min(buf.Cursor.Column, len(buf.lines[line]))
	win.scrollLine = max(0, win.scrollLine-screenOffset(win, region))
	return nil
}

//----------------------------------------------------------------------------
// session
//----------------------------------------------------------------------------

func killEditor(ed *Editor, _ *term.Term) error {
	ed.loop.complete(nil)
	return nil
}

func keyboardQuit(ed *Editor, t *term.Term) error {
	ed.Message("Quit")
	ed.ding(t)
	ed.loop.complete(ErrQuit)
	return nil
}

func minibufferComplete(ed *Editor, _ *term.Term) error {
	ed.loop.complete(nil)
	return nil
}
