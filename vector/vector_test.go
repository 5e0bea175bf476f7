package vector

import (
	"testing"

	"github.com/coregx/derivlex/partition"
	"github.com/coregx/derivlex/regex"
)

func TestDerivativesDropsEmptyEntries(t *testing.T) {
	c := regex.NewCache(256)
	v := Vector{
		{Tag: 1, Pattern: c.Char('a')},
		{Tag: 2, Pattern: c.Char('b')},
	}
	d, byKey := Derivatives(c, v)

	afterA := byKey[partition.Lookup(d, 'a')]
	if len(afterA) != 1 || afterA[0].Tag != 1 {
		t.Fatalf("d/da(v) = %+v, want single entry tagged 1", afterA)
	}
	if afterA[0].Pattern.Kind() != regex.KindEpsilon {
		t.Errorf("surviving entry's pattern should be ε, got %v", afterA[0].Pattern.Kind())
	}

	afterX := byKey[partition.Lookup(d, 'x')]
	if len(afterX) != 0 {
		t.Errorf("d/dx(v) should drop both entries (neither matches x), got %+v", afterX)
	}
}

func TestDerivativesPreservesPriorityOrder(t *testing.T) {
	c := regex.NewCache(256)
	// Two patterns that both survive one derivative step under the same
	// code unit: priority order (tag 1 before tag 2) must be preserved.
	v := Vector{
		{Tag: 1, Pattern: c.Star(c.Char('a'))},
		{Tag: 2, Pattern: c.Char('a')},
	}
	d, byKey := Derivatives(c, v)
	afterA := byKey[partition.Lookup(d, 'a')]
	if len(afterA) != 2 {
		t.Fatalf("expected both entries to survive, got %+v", afterA)
	}
	if afterA[0].Tag != 1 || afterA[1].Tag != 2 {
		t.Errorf("expected priority order [1,2], got [%d,%d]", afterA[0].Tag, afterA[1].Tag)
	}
}

func TestTagsOnlyNullableEntries(t *testing.T) {
	c := regex.NewCache(256)
	v := Vector{
		{Tag: 1, Pattern: c.Epsilon()},
		{Tag: 2, Pattern: c.Char('a')},
		{Tag: 3, Pattern: c.Star(c.Char('b'))},
	}
	tags := v.Tags()
	if len(tags) != 2 || tags[0] != 1 || tags[1] != 3 {
		t.Errorf("Tags() = %v, want [1 3]", tags)
	}
}

func TestKeyDistinguishesOrder(t *testing.T) {
	c := regex.NewCache(256)
	a, b := c.Char('a'), c.Char('b')
	v1 := Vector{{Tag: 1, Pattern: a}, {Tag: 2, Pattern: b}}
	v2 := Vector{{Tag: 2, Pattern: b}, {Tag: 1, Pattern: a}}
	if v1.Key() == v2.Key() {
		t.Error("vectors with swapped priority order must have distinct keys")
	}
}

func TestEmptyVectorIsValidDeadEnd(t *testing.T) {
	var v Vector
	if len(v.Tags()) != 0 {
		t.Error("empty vector should have no nullable tags")
	}
	if v.Key() != "" {
		t.Errorf("empty vector key should be empty string, got %q", v.Key())
	}
}
