// Package key models a single keystroke and the textual key
// descriptions used to define bindings ("C-a", "M-<", "C-M-x", "DEL").
package key

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key is one keystroke. Code is the Unicode scalar of the pressed key
// with the control modifier folded in (code & 0x1f); Meta records the
// meta/alt modifier separately. Key is comparable and can be used as a
// map key directly.
type Key struct {
	Meta bool
	Code rune
}

// FromCode builds a key from a raw scalar code.
func FromCode(code rune) Key {
	return Key{Code: code}
}

// FromChar builds a key for a plain character press.
func FromChar(ch rune) Key {
	return FromCode(ch)
}

// Ctrl returns the key with the control modifier folded into the code.
func (k Key) Ctrl() Key {
	k.Code &= 0x1f
	return k
}

// Alt returns the key with the meta modifier set.
func (k Key) Alt() Key {
	k.Meta = true
	return k
}

// AsChar returns the character this key inserts, if any. Keys with
// meta set and control characters do not insert anything.
func (k Key) AsChar() (rune, bool) {
	if k.Meta {
		return 0, false
	}
	if k.Code < 0 || !utf8.ValidRune(k.Code) || unicode.IsControl(k.Code) {
		return 0, false
	}
	return k.Code, true
}

// String renders the key description: [C-][M-] followed by the
// printable form. Control codes are folded back into the letter range
// (code | 0x60), so RET prints as C-m and TAB as C-i. DEL keeps its
// name since it has no printable fold.
func (k Key) String() string {
	var b strings.Builder
	code := k.Code
	printable := string(code)
	switch {
	case code == del:
		printable = "DEL"
	case code < 0x20:
		b.WriteString("C-")
		printable = string(code | 0x60)
	}
	if k.Meta {
		b.WriteString("M-")
	}
	b.WriteString(printable)
	return b.String()
}

// FormatSeq renders a key sequence separated by spaces, as shown in
// the minibuffer while a prefix is pending.
func FormatSeq(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

const (
	del = 127
	ret = 13
	tab = 9
)

func parseUnmodified(s string) (Key, bool) {
	if len(s) == 1 {
		return FromChar(rune(s[0])), true
	}
	switch s {
	case "DEL":
		return FromCode(del), true
	case "RET":
		return FromCode(ret), true
	case "TAB":
		return FromCode(tab), true
	}
	return Key{}, false
}

// Parse reads a key description with an optional C-M-, C- or M-
// prefix applied to a single character or one of the names DEL, RET
// and TAB. It reports false for any other form.
func Parse(s string) (Key, bool) {
	if suffix, ok := strings.CutPrefix(s, "C-M-"); ok {
		k, ok := parseUnmodified(suffix)
		if !ok {
			return Key{}, false
		}
		return k.Ctrl().Alt(), true
	}
	if suffix, ok := strings.CutPrefix(s, "C-"); ok {
		k, ok := parseUnmodified(suffix)
		if !ok {
			return Key{}, false
		}
		return k.Ctrl(), true
	}
	if suffix, ok := strings.CutPrefix(s, "M-"); ok {
		k, ok := parseUnmodified(suffix)
		if !ok {
			return Key{}, false
		}
		return k.Alt(), true
	}
	return parseUnmodified(s)
}

// MustParse is like Parse but panics on malformed descriptions. It is
// meant for keymap definitions written as literals.
func MustParse(s string) Key {
	k, ok := Parse(s)
	if !ok {
		panic("key: cannot parse key description " + s)
	}
	return k
}
