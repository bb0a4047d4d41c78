package minimize

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/lexgen"
	"github.com/npillmayer/lexgen/dfa"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accept(prio int, tok lexgen.TokType) dfa.Accept {
	return dfa.Accept{Priority: prio, Token: tok}
}

// workedExample: 0 --a--> 1, 0 --b--> 2, with 1 and 2 accepting alike;
// 3 is unreachable.
func workedExample() *dfa.DFA {
	d := dfa.New(0)
	d.AddState(0)
	d.AddState(1, accept(1, 10))
	d.AddState(2, accept(1, 10))
	d.AddState(3)
	d.AddTransition(0, 'a', 1)
	d.AddTransition(0, 'b', 2)
	return d
}

var testAlphabet = dfa.Symbols("abc")

// randomDFA creates a DFA with up to 12 states and up to 3 start conditions
// over the alphabet {a,b,c}.
func randomDFA(rnd *rand.Rand, withContexts bool) *dfa.DFA {
	n := 1 + rnd.Intn(12)
	starts := make([]dfa.SNum, 1+rnd.Intn(3))
	for i := range starts {
		starts[i] = dfa.SNum(rnd.Intn(n))
	}
	d := dfa.New(starts...)
	for s := 0; s < n; s++ {
		d.AddState(dfa.SNum(s))
		if rnd.Intn(5) < 2 {
			acc := accept(rnd.Intn(2), lexgen.TokType(10+rnd.Intn(2)))
			if withContexts && rnd.Intn(3) == 0 {
				acc.RightContext = dfa.RightContext{Kind: dfa.RightContextState, State: dfa.SNum(rnd.Intn(n))}
			}
			d.AddAccept(dfa.SNum(s), acc)
		}
	}
	for s := 0; s < n; s++ {
		for _, c := range testAlphabet {
			if rnd.Intn(10) < 6 {
				d.AddTransition(dfa.SNum(s), c, dfa.SNum(rnd.Intn(n)))
			}
		}
	}
	return d
}

// mooreClasses computes state equivalence the slow way, by iterated signature
// refinement over the automaton completed with a sink. It does not know about
// right contexts.
func mooreClasses(d *dfa.DFA) map[dfa.SNum]int {
	const sink = dfa.SNum(-1)
	all := append(d.StateNumbers(), sink)
	alphabet := d.Alphabet()
	class := make(map[dfa.SNum]int)
	keys := make(map[string]int)
	for _, s := range all {
		k := "[]"
		if s != sink {
			k = fmt.Sprintf("%v", d.States[s].Accepts)
		}
		if _, ok := keys[k]; !ok {
			keys[k] = len(keys)
		}
		class[s] = keys[k]
	}
	for {
		count := len(keys)
		next := make(map[dfa.SNum]int)
		keys = make(map[string]int)
		for _, s := range all {
			var b strings.Builder
			fmt.Fprintf(&b, "%d", class[s])
			for _, c := range alphabet {
				t := sink
				if s != sink {
					if to, ok := d.States[s].Out[c]; ok {
						t = to
					}
				}
				fmt.Fprintf(&b, ",%d", class[t])
			}
			k := b.String()
			if _, ok := keys[k]; !ok {
				keys[k] = len(keys)
			}
			next[s] = keys[k]
		}
		class = next
		if len(keys) == count {
			return class
		}
	}
}

func classOf(classes []EquivalenceClass) map[dfa.SNum]int {
	m := make(map[dfa.SNum]int)
	for i, cls := range classes {
		for _, s := range cls {
			m[s] = i
		}
	}
	return m
}

func assertValidPartition(t *testing.T, d *dfa.DFA, classes []EquivalenceClass) {
	t.Helper()
	seen := make(map[dfa.SNum]bool)
	for i, cls := range classes {
		require.NotEmpty(t, cls, "class %d is empty", i)
		for j, s := range cls {
			if j > 0 {
				assert.Less(t, int(cls[j-1]), int(s), "class %d not sorted", i)
			}
			assert.False(t, seen[s], "state %d in more than one class", s)
			seen[s] = true
			_, ok := d.States[s]
			assert.True(t, ok, "class %d holds unknown state %d", i, s)
		}
		if i > 0 {
			assert.Less(t, int(classes[i-1][0]), int(cls[0]), "classes not ordered")
		}
	}
	assert.Equal(t, len(d.States), len(seen), "classes do not cover all states")
}

// ---------------------------------------------------------------------------

func TestRefineWorkedExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	classes, err := Refine(workedExample())
	require.NoError(t, err)
	assert.Equal(t, []EquivalenceClass{{0}, {1, 2}, {3}}, classes)
}

func TestRefinePartialTransitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	// Nothing leads into 0 or 1. Only the missing 'c' transition of 1 tells
	// them apart.
	d := dfa.New(0, 1)
	for s := dfa.SNum(0); s < 5; s++ {
		d.AddState(s)
	}
	d.AddState(5, accept(1, 10))
	d.AddTransition(2, 'a', 5)
	d.AddTransition(3, 'a', 5)
	d.AddTransition(4, 'a', 5)
	d.AddTransition(0, 'c', 2)
	for _, order := range []WorklistOrder{LIFO, FIFO} {
		classes, err := Refine(d, WithWorklist(order))
		require.NoError(t, err)
		assert.Equal(t, []EquivalenceClass{{0}, {1}, {2, 3, 4}, {5}}, classes, "%s worklist", order)
	}
}

func TestRefineKeepsAcceptSequencesApart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	d := dfa.New(0)
	d.AddState(0)
	d.AddState(1, accept(1, 10))
	d.AddState(2, accept(2, 10)) // priority differs
	d.AddState(3, accept(1, 10), accept(2, 11))
	d.AddState(4, accept(2, 11), accept(1, 10)) // order differs
	d.AddState(5, dfa.Accept{Priority: 1, Token: 10, Action: "upper"})
	d.AddState(6, dfa.Accept{Priority: 1, Token: 10,
		RightContext: dfa.RightContext{Kind: dfa.RightContextCode, Code: "bol"}})
	for i, c := range dfa.Symbols("abcdef") {
		d.AddTransition(0, c, dfa.SNum(i+1))
	}
	classes, err := Refine(d)
	require.NoError(t, err)
	assert.Len(t, classes, 7)
}

func TestRefineRightContexts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	build := func(distinct bool) *dfa.DFA {
		d := dfa.New(0)
		d.AddState(0)
		d.AddState(1, dfa.Accept{Token: 10, RightContext: dfa.RightContext{Kind: dfa.RightContextState, State: 3}})
		d.AddState(2, dfa.Accept{Token: 10, RightContext: dfa.RightContext{Kind: dfa.RightContextState, State: 4}})
		d.AddState(3)
		d.AddState(4)
		d.AddState(5, accept(0, 99))
		d.AddState(6, accept(0, 99))
		d.AddTransition(0, 'a', 1)
		d.AddTransition(0, 'b', 2)
		d.AddTransition(3, 'x', 5)
		if distinct {
			d.AddTransition(4, 'y', 6)
		} else {
			d.AddTransition(4, 'x', 6)
		}
		return d
	}
	classes, err := Refine(build(false))
	require.NoError(t, err)
	assert.Equal(t, []EquivalenceClass{{0}, {1, 2}, {3, 4}, {5, 6}}, classes)
	classes, err = Refine(build(true))
	require.NoError(t, err)
	assert.Equal(t, []EquivalenceClass{{0}, {1}, {2}, {3}, {4}, {5, 6}}, classes)
}

func TestRefineAgainstMoore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 200; i++ {
		d := randomDFA(rnd, false)
		classes, err := Refine(d, WithWorklist(WorklistOrder(i%2)))
		require.NoError(t, err)
		assertValidPartition(t, d, classes)
		got, want := classOf(classes), mooreClasses(d)
		for _, p := range d.StateNumbers() {
			for _, q := range d.StateNumbers() {
				if (got[p] == got[q]) != (want[p] == want[q]) {
					t.Fatalf("states %d and %d: refined together=%v, equivalent=%v\n%v",
						p, q, got[p] == got[q], want[p] == want[q], d)
				}
			}
		}
	}
}

func TestRefineWorklistOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		d := randomDFA(rnd, true)
		lifo, err := Refine(d, WithWorklist(LIFO))
		require.NoError(t, err)
		fifo, err := Refine(d, WithWorklist(FIFO))
		require.NoError(t, err)
		assertValidPartition(t, d, lifo)
		assert.Equal(t, lifo, fifo)
	}
}

func TestRefineDegenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexgen.minimize")
	defer teardown()
	//
	classes, err := Refine(dfa.New())
	require.NoError(t, err)
	assert.Empty(t, classes)
	//
	d := dfa.New(0)
	d.AddState(0, accept(1, 10))
	d.AddState(1, accept(1, 10))
	d.AddTransition(0, 'a', 1)
	d.AddTransition(1, 'a', 0)
	classes, err = Refine(d)
	require.NoError(t, err)
	assert.Equal(t, []EquivalenceClass{{0, 1}}, classes)
}

func TestEquivalenceClassContains(t *testing.T) {
	cls := EquivalenceClass{1, 4, 7}
	assert.True(t, cls.Contains(4))
	assert.True(t, cls.Contains(7))
	assert.False(t, cls.Contains(0))
	assert.False(t, cls.Contains(5))
	assert.False(t, EquivalenceClass{}.Contains(0))
}
