// Package vector implements the tagged vector (spec.md §4.3): a
// priority-ordered list of (tag_id, Regex) pairs whose joint derivative
// drives the DFA worklist in package dfa.
package vector

import (
	"strconv"
	"strings"

	"github.com/coregx/derivlex/partition"
	"github.com/coregx/derivlex/regex"
)

// Entry is one priority-ordered (tag, pattern) pair of a Vector.
type Entry struct {
	Tag     int
	Pattern *regex.Regex
}

// Vector is an order-preserving, duplicate-preserving list of Entry. No
// Entry's Pattern is ever Empty — that invariant is enforced by
// Derivatives, which drops any (tag, Empty) pair rather than storing it.
type Vector []Entry

// Key returns a canonical string uniquely identifying this Vector's
// content, used to intern Vectors to state indices during the DFA build.
func (v Vector) Key() string {
	var sb strings.Builder
	for i, e := range v {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(e.Tag))
		sb.WriteByte(':')
		sb.WriteString(e.Pattern.Key())
	}
	return sb.String()
}

// Tags returns the tag ids of entries whose pattern is nullable, in
// original (priority) order.
func (v Vector) Tags() []int {
	var out []int
	for _, e := range v {
		if regex.Nullable(e.Pattern) {
			out = append(out, e.Tag)
		}
	}
	return out
}

// Derivatives computes the joint derivative partition: for each code
// unit, the Vector obtained by taking every entry's own derivative under
// that unit and dropping any entry whose derivative is Empty.
//
// Vector is a slice type and so isn't comparable, which partition.Merge
// requires of its codomain (it coalesces adjacent bands by value
// equality). Instead the partition is built over each resulting
// Vector's Key() — comparable, and already the canonical identity this
// package uses for interning — and the returned map resolves each key
// back to its Vector, mirroring how package regex keys its own
// derivative partition by *Regex identity.
func Derivatives(cache *regex.Cache, v Vector) (partition.Partition[string], map[string]Vector) {
	end := cache.End()
	byKey := map[string]Vector{"": nil}
	result := partition.Constant(end, "")
	for _, e := range v {
		d := cache.Derivatives(e.Pattern)
		tag := e.Tag
		result = partition.Merge(result, d, func(accKey string, next *regex.Regex) string {
			if next.Kind() == regex.KindEmpty {
				return accKey
			}
			acc := byKey[accKey]
			out := make(Vector, len(acc), len(acc)+1)
			copy(out, acc)
			out = append(out, Entry{Tag: tag, Pattern: next})
			key := out.Key()
			if _, ok := byKey[key]; !ok {
				byKey[key] = out
			}
			return key
		})
	}
	return result, byKey
}
