package dfa

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestWalk(t *testing.T) {
	d := abc()
	s, ok := d.Walk(0, Symbols("abcb"))
	assert.True(t, ok)
	assert.Equal(t, SNum(1), s)
	_, ok = d.Walk(0, Symbols("ab a"))
	assert.False(t, ok)
	_, ok = d.Step(42, 'a')
	assert.False(t, ok)
	s, ok = d.Walk(2, nil)
	assert.True(t, ok)
	assert.Equal(t, SNum(2), s)
}

func TestMatchLongest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.dfa")
	defer teardown()
	//
	d := abc()
	m := d.Match(0, Symbols("abcbx"), nil)
	assert.True(t, m.OK)
	assert.Equal(t, 4, m.Length)
	assert.Equal(t, Accept{Priority: 1, Token: 10}, m.Accept)
	m = d.Match(1, Symbols("bb"), nil)
	assert.True(t, m.OK)
	assert.Equal(t, 1, m.Length)
	assert.Equal(t, Accept{Priority: 2, Token: 11}, m.Accept)
	assert.False(t, d.Match(0, Symbols("b"), nil).OK)
	assert.False(t, d.Match(0, nil, nil).OK)
	assert.Panics(t, func() { d.Match(2, nil, nil) })
}

func TestMatchRightContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.dfa")
	defer teardown()
	//
	// "a" is a token if followed by "bb"; "a" followed by anything else is
	// another token; 4 → 5 → 6 recognizes the context.
	d := New(0)
	d.AddState(0)
	d.AddState(1,
		Accept{Priority: 0, Token: 1, RightContext: RightContext{Kind: RightContextState, State: 4}},
		Accept{Priority: 1, Token: 2},
	)
	d.AddState(4)
	d.AddState(5)
	d.AddState(6, Accept{Token: 99})
	d.AddTransition(0, 'a', 1)
	d.AddTransition(4, 'b', 5)
	d.AddTransition(5, 'b', 6)
	m := d.Match(0, Symbols("abbc"), nil)
	assert.Equal(t, Match{Accept: d.States[1].Accepts[0], Length: 1, OK: true}, m)
	m = d.Match(0, Symbols("abc"), nil)
	assert.Equal(t, 2, tokenOf(m))
	m = d.Match(0, Symbols("a"), nil)
	assert.Equal(t, 2, tokenOf(m))
}

func tokenOf(m Match) int {
	return int(m.Accept.Token)
}

func TestMatchPredicate(t *testing.T) {
	d := New(0)
	d.AddState(0)
	d.AddState(1,
		Accept{Token: 1, RightContext: RightContext{Kind: RightContextCode, Code: "eol"}},
		Accept{Token: 2},
	)
	d.AddTransition(0, 'x', 1)
	eol := func(code string, input []Symbol, pos int) bool {
		assert.Equal(t, "eol", code)
		return pos == len(input) || input[pos] == '\n'
	}
	assert.Equal(t, 1, tokenOf(d.Match(0, Symbols("x\n"), eol)))
	assert.Equal(t, 1, tokenOf(d.Match(0, Symbols("x"), eol)))
	assert.Equal(t, 2, tokenOf(d.Match(0, Symbols("xy"), eol)))
	assert.Equal(t, 1, tokenOf(d.Match(0, Symbols("xy"), nil)))
}

func TestReachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.dfa")
	defer teardown()
	//
	d := abc()
	d.AddState(4) // unreachable
	d.AddState(5) // reachable as right context only
	d.AddState(6, Accept{Token: 12})
	d.AddAccept(3, Accept{RightContext: RightContext{Kind: RightContextState, State: 5}})
	d.AddTransition(5, 'z', 6)
	r := Reachable(d)
	assert.Equal(t, uint(6), r.Count())
	assert.False(t, r.Test(4))
	for _, s := range []uint{0, 1, 2, 3, 5, 6} {
		assert.True(t, r.Test(s), "state %d should be reachable", s)
	}
	assert.Equal(t, uint(0), Reachable(New()).Count())
	//
	holes := New(10)
	holes.AddState(10)
	holes.AddState(40, Accept{Token: 12})
	holes.AddState(25)
	holes.AddTransition(10, 'a', 40)
	holes.AddTransition(40, 'b', 99) // dangling
	r = Reachable(holes)
	assert.Equal(t, uint(2), r.Count())
	assert.True(t, r.Test(10))
	assert.True(t, r.Test(40))
	assert.False(t, r.Test(25))
	assert.False(t, r.Test(99))
}
