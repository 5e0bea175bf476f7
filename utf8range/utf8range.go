// Package utf8range expands a code-point range into the equivalent
// byte-level regex sub-automaton, so that a byte-alphabet Cache can
// represent Unicode character classes without widening its alphabet.
// See spec.md §4.6's "separate UTF-8 expander" and §8 scenario 6.
package utf8range

import (
	"unicode/utf8"

	"github.com/coregx/derivlex/regex"
)

const (
	max1Byte = 0x7F
	max2Byte = 0x7FF
	max3Byte = 0xFFFF
	max4Byte = 0x1FFFFF

	surrogateStart = 0xD800
	surrogateEnd   = 0xDFFF
)

var maxContMask = []struct{ end, mask int }{
	{max1Byte, 0},
	{max2Byte, 0x3F},
	{max3Byte, 0xFFF},
	{max4Byte, 0x3FFFF},
}

type codeRange struct{ lo, hi int }

// Expand builds the regex matching the UTF-8 encoding of every code
// point in [lo, hi], over cache's byte alphabet.
func Expand(cache *regex.Cache, lo, hi rune) *regex.Regex {
	ranges := splitRange(int(lo), int(hi))
	byteRanges := make([][][2]int, 0, len(ranges))
	for _, r := range ranges {
		byteRanges = append(byteRanges, encodeRange(r.lo, r.hi))
	}
	return toPrefixTree(cache, byteRanges)
}

// splitRange breaks [lo, hi] into sub-ranges that each encode to the
// same number of UTF-8 bytes and, within each byte position, vary over
// a contiguous range independent of the other positions — the
// precondition encodeRange/toPrefixTree rely on. It also excludes the
// surrogate range, which is never valid UTF-8 input.
func splitRange(lo, hi int) []codeRange {
	if hi < surrogateStart || lo > surrogateEnd {
		return splitByByteLength(lo, hi)
	}
	var out []codeRange
	if lo < surrogateStart {
		out = append(out, splitByByteLength(lo, surrogateStart-1)...)
	}
	if hi > surrogateEnd {
		out = append(out, splitByByteLength(surrogateEnd+1, hi)...)
	}
	return out
}

func splitByByteLength(lo, hi int) []codeRange {
	for _, m := range maxContMask {
		if lo > m.end {
			continue
		}
		if hi <= m.end {
			return splitByPrefix(lo, hi, m.mask)
		}
		out := splitByPrefix(lo, m.end, m.mask)
		return append(out, splitByByteLength(m.end+1, hi)...)
	}
	return nil
}

// splitByPrefix recursively narrows [lo, hi] until every continuation
// byte varies over a full contiguous range independent of the others,
// mirroring the original's bit-mask recursion over 6-bit groups (one
// per UTF-8 continuation byte).
func splitByPrefix(lo, hi, mask int) []codeRange {
	for mask != 0 {
		if lo&^mask != hi&^mask {
			if lo&mask != 0 {
				out := splitByPrefix(lo, lo|mask, mask>>6)
				return append(out, splitByPrefix((lo|mask)+1, hi, mask)...)
			}
			if hi&mask != mask {
				out := splitByPrefix(lo, (hi&^mask)-1, mask)
				return append(out, splitByPrefix(hi&^mask, hi, mask>>6)...)
			}
		}
		mask >>= 6
	}
	return []codeRange{{lo, hi}}
}

func encodeChar(code int) []int {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], rune(code))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(buf[i])
	}
	return out
}

func encodeRange(lo, hi int) [][2]int {
	loBytes := encodeChar(lo)
	hiBytes := encodeChar(hi)
	out := make([][2]int, len(loBytes))
	for i := range loBytes {
		out[i] = [2]int{loBytes[i], hiBytes[i]}
	}
	return out
}

// toPrefixTree builds the union-of-sequences regex for a list of
// per-code-range byte-position (lo, hi) sequences, sharing common
// leading byte ranges as a single branch (a prefix tree), exactly as
// the original's to_prefix_tree groups consecutive entries sharing a
// head range.
func toPrefixTree(cache *regex.Cache, byteRanges [][][2]int) *regex.Regex {
	result := cache.Empty()
	i := 0
	for i < len(byteRanges) {
		head := byteRanges[i][0]
		j := i
		var group [][][2]int
		for j < len(byteRanges) && byteRanges[j][0] == head {
			group = append(group, byteRanges[j][1:])
			j++
		}

		groupRegex := cache.Range(head[0], head[1])
		if len(group) == 1 {
			for _, br := range group[0] {
				groupRegex = cache.Seq(groupRegex, cache.Range(br[0], br[1]))
			}
		} else {
			groupRegex = cache.Seq(groupRegex, toPrefixTree(cache, group))
		}
		result = cache.Or(result, groupRegex)
		i = j
	}
	return result
}
