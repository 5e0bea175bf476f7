package lexer

import (
	"github.com/coregx/derivlex/charsyntax"
	"github.com/coregx/derivlex/regex"
	"github.com/coregx/derivlex/utf8range"
)

// Builder is the human-facing EDSL of spec.md §6: operator-style
// constructors over a single shared regex.Cache, so that every term a
// caller builds through it is hash-consed together for one make_lexer
// call.
type Builder struct {
	cache *regex.Cache
}

// NewBuilder creates a Builder over a fresh byte-alphabet cache (END =
// 256); char constructors above 0x7F are expanded to byte sub-automata
// via utf8range, so callers never see the alphabet distinction.
func NewBuilder() *Builder {
	return &Builder{cache: regex.NewCache(256)}
}

// Cache exposes the underlying regex.Cache, e.g. for MakeLexer.
func (b *Builder) Cache() *regex.Cache { return b.cache }

func (b *Builder) Empty() *regex.Regex   { return b.cache.Empty() }
func (b *Builder) Epsilon() *regex.Regex { return b.cache.Epsilon() }
func (b *Builder) AnyChar() *regex.Regex { return b.cache.AnyChar() }

// Char matches exactly the code point c.
func (b *Builder) Char(c rune) *regex.Regex {
	return utf8range.Expand(b.cache, c, c)
}

// CharRange matches any code point in [lo, hi] inclusive.
func (b *Builder) CharRange(lo, hi rune) *regex.Regex {
	return utf8range.Expand(b.cache, lo, hi)
}

// CharSet parses text as the char_set grammar (spec.md §6) and builds
// the union of its resulting code-point ranges.
func (b *Builder) CharSet(text string) (*regex.Regex, error) {
	ranges, err := charsyntax.Parse(text)
	if err != nil {
		return nil, &InvalidCharClassSyntax{Text: text, Cause: err}
	}
	result := b.cache.Empty()
	for _, r := range ranges {
		result = b.cache.Or(result, utf8range.Expand(b.cache, rune(r.Lo), rune(r.Hi)))
	}
	return result, nil
}

// String matches exactly the literal sequence of code points in s.
func (b *Builder) String(s string) *regex.Regex {
	result := b.cache.Epsilon()
	for _, r := range s {
		result = b.cache.Seq(result, b.Char(r))
	}
	return result
}

// Tag attaches a zero-width marker carrying id.
func (b *Builder) Tag(id int) *regex.Regex { return b.cache.Tag(id) }

// Seq concatenates a and b.
func (b *Builder) Seq(a, b2 *regex.Regex) *regex.Regex { return b.cache.Seq(a, b2) }

// Concat concatenates parts left to right.
func (b *Builder) Concat(parts ...*regex.Regex) *regex.Regex { return b.cache.Concat(parts...) }

// Or is union.
func (b *Builder) Or(a, b2 *regex.Regex) *regex.Regex { return b.cache.Or(a, b2) }

// And is intersection.
func (b *Builder) And(a, b2 *regex.Regex) *regex.Regex { return b.cache.And(a, b2) }

// Sub is set difference, a & ~b.
func (b *Builder) Sub(a, b2 *regex.Regex) *regex.Regex { return b.cache.Sub(a, b2) }

// Not is complement with respect to the full alphabet.
func (b *Builder) Not(a *regex.Regex) *regex.Regex { return b.cache.Not(a) }

// Star is Kleene star.
func (b *Builder) Star(a *regex.Regex) *regex.Regex { return b.cache.Star(a) }

// Plus is one-or-more: a · a*.
func (b *Builder) Plus(a *regex.Regex) *regex.Regex { return b.cache.Plus(a) }

// Opt is zero-or-one: a | ε.
func (b *Builder) Opt(a *regex.Regex) *regex.Regex { return b.cache.Opt(a) }

// AnyWith matches any string containing r as a substring: .* · r · .*.
func (b *Builder) AnyWith(r *regex.Regex) *regex.Regex {
	any := b.cache.Star(b.cache.AnyChar())
	return b.cache.Concat(any, r, any)
}

// AnyWithout matches any string that does not contain r as a substring.
func (b *Builder) AnyWithout(r *regex.Regex) *regex.Regex {
	return b.cache.Not(b.AnyWith(r))
}
