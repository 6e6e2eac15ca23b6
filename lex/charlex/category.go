package charlex

import (
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/lexlr/fa"
	"github.com/npillmayer/lexlr/lex"
	"github.com/pkg/errors"
)

// --- Category codes --------------------------------------------------------

// RuneCategorizer maps runes to input classes.
type RuneCategorizer interface {
	Cat(r rune) fa.Class
	Classes() int
}

// Category is a predicate on runes.
type Category func(r rune) bool

// AnyOf is the category of the runes in chars.
func AnyOf(chars string) Category {
	return func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}
}

// In is the category of the runes in any of the Unicode range tables.
func In(tables ...*unicode.RangeTable) Category {
	return func(r rune) bool {
		return unicode.IsOneOf(tables, r)
	}
}

// Categories is a RuneCategorizer: rune r is of class i if Categories[i] is
// the first category containing r. Runes outside of all categories are of
// class fa.NoClass.
type Categories []Category

var _ RuneCategorizer = Categories(nil)

// Categorizer creates a RuneCategorizer from a list of categories.
func Categorizer(cats ...Category) Categories {
	return Categories(cats)
}

// Cat returns the input class of r.
func (cats Categories) Cat(r rune) fa.Class {
	for i, c := range cats {
		if c(r) {
			return fa.Class(i)
		}
	}
	return fa.NoClass
}

// Classes returns the number of input classes.
func (cats Categories) Classes() int {
	return len(cats)
}

// --- Rune source -----------------------------------------------------------

// RuneSource creates a lexer buffer reading runes from r.
// Read errors other than io.EOF end the input and are reported by the
// buffer's Err method.
func RuneSource(r io.RuneReader) *lex.Buffer[rune] {
	pos := 0
	return lex.NewBuffer(func() (rune, error) {
		ch, sz, err := r.ReadRune()
		if err == io.EOF {
			tracer().Debugf("EOF for lexer input after %d bytes", pos)
			return 0, err
		} else if err != nil {
			return 0, errors.Wrapf(err, "lexer cannot read input at byte %d", pos)
		}
		pos += sz
		return ch, nil
	})
}
