package editor

import (
	"github.com/davazp/rile/key"
	"github.com/davazp/rile/term"
)

// Command is a named editing operation. A non-nil error reports a
// user-visible condition (edge of buffer, failed save); commands set
// a minibuffer message themselves before returning it.
type Command func(ed *Editor, t *term.Term) error

// Item is a keymap entry: either a command or a nested keymap acting
// as a prefix. Exactly one field is set.
type Item struct {
	Command Command
	Keymap  *Keymap
}

// Keymap maps keys to items. Each buffer carries its own keymap, so
// bindings can differ between the main buffer and the minibuffer.
type Keymap struct {
	items map[key.Key]Item
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{items: make(map[key.Key]Item)}
}

// DefineKey binds a key description to a command, replacing any
// previous binding. It panics on a malformed description.
func (m *Keymap) DefineKey(spec string, cmd Command) {
	m.items[key.MustParse(spec)] = Item{Command: cmd}
}

// DefineKeymap binds a key description to a nested keymap, making
// the key a prefix.
func (m *Keymap) DefineKeymap(spec string, sub *Keymap) {
	m.items[key.MustParse(spec)] = Item{Keymap: sub}
}

// Lookup returns the item bound to k, if any.
func (m *Keymap) Lookup(k key.Key) (Item, bool) {
	item, ok := m.items[k]
	return item, ok
}

// Defaults returns the standard bindings of the main buffer.
func Defaults() *Keymap {
	keymap := NewKeymap()
	cx := NewKeymap()

	keymap.DefineKey("C-a", moveBeginningOfLine)
	keymap.DefineKey("C-e", moveEndOfLine)
	keymap.DefineKey("C-f", forwardChar)
	keymap.DefineKey("C-b", backwardChar)
	keymap.DefineKey("C-p", previousLine)
	keymap.DefineKey("C-n", nextLine)
	keymap.DefineKey("C-d", deleteChar)

	keymap.DefineKey("DEL", deleteBackwardChar)
	keymap.DefineKey("C-k", killLine)
	keymap.DefineKey("RET", newline)
	keymap.DefineKey("C-j", newline)
	keymap.DefineKey("TAB", indentLine)

	keymap.DefineKey("M-<", beginningOfBuffer)
	keymap.DefineKey("M->", endOfBuffer)

	keymap.DefineKey("C-v", nextScreen)
	keymap.DefineKey("M-v", previousScreen)

	keymap.DefineKey("C-g", keyboardQuit)
	keymap.DefineKey("C-s", isearchForward)

	cx.DefineKey("C-s", saveBuffer)
	cx.DefineKey("C-c", killEditor)
	keymap.DefineKeymap("C-x", cx)

	return keymap
}
