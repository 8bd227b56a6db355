package editor

import (
	"github.com/davazp/rile/term"
)

const isearchPrompt = "I-search: "

// isearchForward prompts for a query and moves the cursor to its
// first occurrence at or after the starting point, live on every
// keystroke. Matches are highlighted while the prompt is open. An
// aborted search puts the cursor back; any other key sequence the
// prompt does not handle ends the search and runs as usual.
func isearchForward(ed *Editor, t *term.Term) error {
	buf := ed.CurrentBuffer()
	origin := buf.Cursor

	search := func(ed *Editor, t *term.Term) {
		query := promptInput(ed.buffers.minibuffer.String(), isearchPrompt)

		match, found := buf.search(query, origin)
		if query == "" || !found {
			buf.Cursor = origin
			buf.Highlight = ""
			return
		}

		buf.Cursor = match
		buf.Highlight = query

		// Keep the match visible: the focused window is the
		// minibuffer, so the main window needs adjusting by hand.
		mainRegion, _ := ed.layout(t)
		ed.adjustWindowScroll(&ed.windows.main, mainRegion)
	}

	_, err := ed.readString(t, isearchPrompt, search, true)
	buf.Highlight = ""
	if err != nil {
		buf.Cursor = origin
		return err
	}
	return nil
}
