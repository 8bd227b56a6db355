package editor

import (
	"fmt"

	"github.com/davazp/rile/key"
	"github.com/davazp/rile/logger"
	"github.com/davazp/rile/term"
)

// readKey returns the next key to process: pushed-back input first,
// then the terminal. While blocking it keeps the screen current and
// serves resizes between polls.
func (ed *Editor) readKey(t *term.Term) (key.Key, error) {
	if len(ed.loop.pending) > 0 {
		k := ed.loop.pending[0]
		ed.loop.pending = ed.loop.pending[1:]
		return k, nil
	}

	if !t.CanRead() {
		panic("editor: reading a key from a terminal with no input")
	}

	if err := ed.refresh(t); err != nil {
		return key.Key{}, err
	}
	for {
		if k, ok := t.ReadKeyTimeout(); ok {
			return k, nil
		}
		if t.InputClosed() {
			return key.Key{}, fmt.Errorf("%w: input closed", term.ErrTerm)
		}
		if ed.wasResized() {
			rows, cols := t.WindowSize()
			logger.Info("terminal resized", "rows", rows, "cols", cols)
			ed.adjustScroll(t)
			if err := ed.refresh(t); err != nil {
				return key.Key{}, err
			}
		}
	}
}

func (ed *Editor) wasResized() bool {
	return ed.resized != nil && ed.resized.Swap(false)
}

// readKeyBinding reads keys until they resolve in the current
// buffer's keymap. It returns either the bound command or, with a nil
// command, the undefined sequence that was read. A partial prefix is
// echoed in the minibuffer so the user can see the pending state.
func (ed *Editor) readKeyBinding(t *term.Term) (Command, []key.Key, error) {
	keymap := ed.CurrentBuffer().Keymap
	var read []key.Key

	// The prefix echo overwrites the minibuffer. During a prompt that
	// content is the user's input, so it is put back once the sequence
	// resolves.
	if ed.windows.minibufferFocused {
		minibuffer := ed.buffers.minibuffer
		content, cursor := minibuffer.String(), minibuffer.Cursor
		defer func() {
			minibuffer.Set(content)
			minibuffer.Cursor = cursor
		}()
	}

	for {
		if len(read) > 0 {
			ed.Message("%s-", key.FormatSeq(read))
			if err := ed.refresh(t); err != nil {
				return nil, nil, err
			}
		}

		k, err := ed.readKey(t)
		if err != nil {
			return nil, nil, err
		}
		read = append(read, k)

		item, ok := keymap.Lookup(k)
		switch {
		case !ok:
			return nil, read, nil
		case item.Command != nil:
			return item.Command, read, nil
		default:
			keymap = item.Keymap
		}
	}
}

// readString prompts for a line of input in the minibuffer by running
// a nested event loop with the minibuffer focused. The prompt itself
// is not editable: motion and deletion stop at its end and only the
// text after it is returned. callback, if not nil, runs after every
// processed key. With exitOnUndefined, a key sequence the minibuffer
// keymap does not know completes the prompt and is pushed back for
// the caller's loop to consume.
func (ed *Editor) readString(t *term.Term, prompt string, callback func(*Editor, *term.Term), exitOnUndefined bool) (string, error) {
	minibuffer := ed.buffers.minibuffer
	minibuffer.Set(prompt)
	minibuffer.Cursor = Cursor{Line: 0, Column: len(prompt)}
	ed.windows.minibufferFocused = true
	ed.prompt = prompt

	err := ed.eventLoop(t, callback, exitOnUndefined)

	input := promptInput(minibuffer.String(), prompt)
	minibuffer.Truncate()
	ed.windows.minibufferFocused = false
	ed.prompt = ""

	if err != nil {
		return "", err
	}
	return input, nil
}

// promptInput returns what the user typed after a prompt. The slice
// is positional rather than a prefix trim: a command may have
// replaced the minibuffer wholesale (Message does), and the prompt
// must never come back as input.
func promptInput(content, prompt string) string {
	return content[min(len(prompt), len(content)):]
}
