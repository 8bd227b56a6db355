package editor

import (
	"errors"

	"github.com/davazp/rile/key"
	"github.com/davazp/rile/logger"
	"github.com/davazp/rile/term"
)

// eventLoopState carries the completion of the running event loop and
// the queue of pushed-back keys. A completion only takes effect once
// the command that set it has returned.
type eventLoopState struct {
	completed bool
	err       error

	// pending holds keys a command has pushed back; blocking reads
	// drain it before touching the terminal.
	pending []key.Key
}

// complete makes the current event loop stop after this iteration. A
// nil err is a normal completion.
func (s *eventLoopState) complete(err error) {
	s.completed = true
	s.err = err
}

func selfInsertChar(keys []key.Key) (rune, bool) {
	if len(keys) != 1 {
		return 0, false
	}
	return keys[0].AsChar()
}

// processUserInput reads one key sequence and acts on it: run the
// bound command, self-insert a plain character, or report the
// sequence as undefined. The returned error is a terminal failure;
// command errors are consumed here.
func (ed *Editor) processUserInput(t *term.Term, exitOnUndefined bool) error {
	cmd, keys, err := ed.readKeyBinding(t)
	if err != nil {
		return err
	}

	if !ed.windows.minibufferFocused {
		ed.buffers.minibuffer.Truncate()
	}

	switch {
	case cmd != nil:
		logger.Debug("dispatch", "keys", key.FormatSeq(keys))
		if err := cmd(ed, t); err != nil {
			if errors.Is(err, term.ErrTerm) {
				return err
			}
			logger.Debug("command failed", "keys", key.FormatSeq(keys), "err", err)
		}
	default:
		if ch, ok := selfInsertChar(keys); ok {
			insertChar(ed, ch)
		} else if exitOnUndefined {
			ed.loop.pending = append(ed.loop.pending, keys...)
			ed.loop.complete(nil)
		} else {
			ed.Message("%s is undefined", key.FormatSeq(keys))
		}
	}
	return nil
}

// eventLoop processes input until a command completes it, returning
// the completion. The loop re-enters for minibuffer prompts: the
// outer completion is saved on entry and restored on exit so a nested
// loop cannot terminate its caller.
func (ed *Editor) eventLoop(t *term.Term, callback func(*Editor, *term.Term), exitOnUndefined bool) error {
	outerCompleted, outerErr := ed.loop.completed, ed.loop.err
	defer func() {
		ed.loop.completed, ed.loop.err = outerCompleted, outerErr
	}()

	for {
		ed.loop.completed = false
		ed.loop.err = nil
		ed.goal.toPreserve = false

		if err := ed.processUserInput(t, exitOnUndefined); err != nil {
			return err
		}

		if !ed.goal.toPreserve {
			ed.goal.clear()
		}

		ed.adjustScroll(t)

		if ed.loop.completed {
			return ed.loop.err
		}

		if callback != nil {
			callback(ed, t)
		}
	}
}

// Run drives the interactive session until kill-editor completes it.
// A keyboard-quit only aborts the iteration it ran in, so the session
// continues; anything else is a terminal failure.
func (ed *Editor) Run(t *term.Term) error {
	for {
		err := ed.eventLoop(t, nil, false)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrQuit) {
			return err
		}
	}
}
