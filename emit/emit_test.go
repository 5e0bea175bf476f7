package emit

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/coregx/derivlex/dfa"
	"github.com/coregx/derivlex/regex"
	"github.com/coregx/derivlex/vector"
)

func buildTwoPattern(t *testing.T) (*dfa.Dfa, Names) {
	t.Helper()
	c := regex.NewCache(256)
	ifPat := c.Concat(c.Char('i'), c.Char('f'))
	ident := c.Plus(c.Range('a', 'z'))
	v := vector.Vector{
		{Tag: 0, Pattern: ifPat},
		{Tag: 1, Pattern: ident},
	}
	d, err := dfa.Build(c, v, dfa.SelectFirst)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d, Names{"IF", "IDENT"}
}

func TestDotContainsExpectedNodesAndEdges(t *testing.T) {
	d, names := buildTwoPattern(t)
	var buf bytes.Buffer
	if err := Dot(&buf, d, names); err != nil {
		t.Fatalf("Dot: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph dfa {") {
		t.Errorf("missing digraph header: %q", out[:min(40, len(out))])
	}
	if !strings.Contains(out, `"" -> "0"`) {
		t.Error("missing start arrow to state 0")
	}
	if !strings.Contains(out, `"end" [shape=doublecircle]`) {
		t.Error("missing end sink node")
	}
	if !strings.Contains(out, "/IF") && !strings.Contains(out, "EOF/IF") {
		t.Error("expected the IF tag to appear somewhere in the graph")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// --- C round-trip interpreter -------------------------------------------
//
// scan_all in the spec must match the token sequence the C-emitted
// scanner produces for the same input (spec.md §8, "Round-trip via
// emitter"). Rather than shelling out to a C compiler, this executes
// the emitted labelled-goto ladder directly against our own emitted
// text, since the ladder's shape is fully specified by this package.

var (
	reLabel      = regexp.MustCompile(`^S(\d+):$`)
	reIfAction   = regexp.MustCompile(`^if \(c <= (\d+)\) \{ (.*) \}$`)
	reEndAssign  = regexp.MustCompile(`match->end = s( - 1)?;`)
	reTokenSet   = regexp.MustCompile(`match->token = (\w+);`)
	reGoto       = regexp.MustCompile(`goto S(\d+);`)
	reReturn     = regexp.MustCompile(`return;`)
)

type cInterp struct {
	states map[int][]cBand
}

type cBand struct {
	hasUpper bool
	upper    int
	action   string
}

func parseCScanner(src string) *cInterp {
	interp := &cInterp{states: map[int][]cBand{}}
	lines := strings.Split(src, "\n")
	current := -1
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if m := reLabel.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			current = n
			continue
		}
		if current < 0 {
			continue
		}
		if line == "c = *(s++);" {
			continue
		}
		if m := reIfAction.FindStringSubmatch(line); m != nil {
			upper, _ := strconv.Atoi(m[1])
			interp.states[current] = append(interp.states[current], cBand{hasUpper: true, upper: upper, action: m[2]})
			continue
		}
		if line == "" || line == "unsigned char c;" || strings.HasPrefix(line, "match->begin") || strings.HasPrefix(line, "match->token = DFA_INVALID_TOKEN") || line == "}" {
			continue
		}
		// An unconditional terminal action line for the state's last band.
		if reGoto.MatchString(line) || reReturn.MatchString(line) {
			interp.states[current] = append(interp.states[current], cBand{action: line})
		}
	}
	return interp
}

// run feeds input through the parsed ladder and returns the tokens the
// emitted scanner would have recorded via repeated restarts from S0,
// mirroring scan_all's "restart after each accepted/rejected prefix".
func (ci *cInterp) run(input []byte, tokenNames map[string]int) (tags []int, lengths []int, ok bool) {
	pos := 0
	for pos < len(input) {
		matchEnd := -1
		matchTag := -1
		state := 0
		cursor := pos
		for {
			bands, found := ci.states[state]
			if !found || cursor >= len(input) {
				break
			}
			c := int(input[cursor])
			cursor++
			var taken *cBand
			for i := range bands {
				b := bands[i]
				if !b.hasUpper || c <= b.upper {
					taken = &bands[i]
					break
				}
			}
			if taken == nil {
				break
			}
			if em := reEndAssign.FindStringSubmatch(taken.action); em != nil {
				if em[1] != "" {
					matchEnd = cursor - 1 // at-exit: exclude the just-consumed character
				} else {
					matchEnd = cursor // on-entry: include it
				}
				if tm := reTokenSet.FindStringSubmatch(taken.action); tm != nil {
					matchTag = tokenNames[tm[1]]
				}
			}
			if reReturn.MatchString(taken.action) {
				break
			}
			if gm := reGoto.FindStringSubmatch(taken.action); gm != nil {
				next, _ := strconv.Atoi(gm[1])
				state = next
				continue
			}
			break
		}
		if matchEnd < 0 || matchEnd == pos {
			return tags, lengths, false
		}
		tags = append(tags, matchTag)
		lengths = append(lengths, matchEnd-pos)
		pos = matchEnd
	}
	return tags, lengths, true
}

func TestCEmitterRoundTripsWithScanOnce(t *testing.T) {
	d, names := buildTwoPattern(t)
	var buf bytes.Buffer
	if err := C(&buf, d, names, false); err != nil {
		t.Fatalf("C: %v", err)
	}

	tokenNames := map[string]int{}
	for i, name := range names {
		tokenNames[tokenName(name)] = i
	}
	interp := parseCScanner(buf.String())

	for _, input := range []string{"if", "iffy", "z", "ifzz"} {
		gotTags, gotLens, ok := interp.run([]byte(input), tokenNames)
		wantMatch, wantOK := d.ScanOnce(unitsOf(input))

		if ok != wantOK {
			t.Errorf("input %q: C interpreter ok=%v, scan_once ok=%v", input, ok, wantOK)
			continue
		}
		if !wantOK {
			continue
		}
		if len(gotTags) != 1 || gotTags[0] != wantMatch.Tag || gotLens[0] != wantMatch.Length {
			t.Errorf("input %q: C emitted %v/%v, scan_once (tag=%d len=%d)", input, gotTags, gotLens, wantMatch.Tag, wantMatch.Length)
		}
	}
}

func unitsOf(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i])
	}
	return out
}
