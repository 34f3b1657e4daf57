package converter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nconklindev/diacritix/internal/types"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterate replaces every character of text that has an entry in m
// with its replacement. Unmapped characters, and bytes that are not valid
// UTF-8, are copied unchanged.
func Transliterate(text string, m types.CharacterMap) string {
	if len(m) == 0 || text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(text[i])
			i++
			continue
		}
		if rep, ok := m[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Options tune a Transliterator beyond plain table lookup. The zero value
// does table lookup only.
type Options struct {
	// Compose NFC-normalizes input first so that a base letter followed by a
	// combining mark matches a precomposed table entry.
	Compose bool
	// StripMarks drops nonspacing marks left over after table lookup.
	StripMarks bool
}

// Transliterator binds a character map and options for one operation.
// It is not safe for concurrent use.
type Transliterator struct {
	m          types.CharacterMap
	opts       Options
	stripMarks transform.Transformer
}

func NewTransliterator(m types.CharacterMap, opts Options) *Transliterator {
	t := &Transliterator{m: m, opts: opts}
	if opts.StripMarks {
		t.stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return t
}

func (t *Transliterator) Transliterate(text string) string {
	if t.opts.Compose {
		text = norm.NFC.String(text)
	}
	text = Transliterate(text, t.m)
	if t.stripMarks != nil {
		if out, _, err := transform.String(t.stripMarks, text); err == nil {
			text = out
		}
	}
	return text
}
