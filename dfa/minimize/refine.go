package minimize

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/lexgen/dfa"
)

// EquivalenceClass is a non-empty set of states, sorted in ascending order.
type EquivalenceClass []dfa.SNum

// Contains is true if state s is a member of the class.
func (ec EquivalenceClass) Contains(s dfa.SNum) bool {
	i := sort.Search(len(ec), func(i int) bool { return ec[i] >= s })
	return i < len(ec) && ec[i] == s
}

// Refine computes the coarsest stable partition of the states of d. Classes are
// returned in ascending order of their smallest member.
//
// States carrying different accept actions are never placed in the same class,
// and neither are states for which some input leads into different classes.
func Refine(d *dfa.DFA, opts ...Option) ([]EquivalenceClass, error) {
	o := newOptions(opts...)
	return refine(d, o)
}

// === Partition =============================================================

// block is a class of the partition under construction. Blocks live in an arena
// and are addressed by index; a block is either settled or queued as a
// prospective splitter.
type block struct {
	members []dfa.SNum
	queued  bool
}

type partition struct {
	blocks   []*block
	blockOf  []int          // state → block index, -1 for unused state numbers
	sink     dfa.SNum       // virtual target of all missing transitions
	inX      *bitset.BitSet // members of the current splitter preimage
	touched  []int          // blocks hit by the current preimage
	hits     map[int]int    // block → number of members in the current preimage
	worklist worklist
	splits   int
}

// initialPartition groups non-accepting states into one settled class and
// accepting states into queued classes, one per distinct sequence of accept actions.
// The virtual sink state, numbered one above the highest state, is non-accepting.
func initialPartition(d *dfa.DFA, order WorklistOrder) (*partition, error) {
	states := d.StateNumbers()
	sink := dfa.SNum(0)
	if len(states) > 0 {
		if states[0] < 0 {
			return nil, fmt.Errorf("%w: negative state number %d", dfa.ErrInconsistentDFA, states[0])
		}
		sink = states[len(states)-1] + 1
	}
	p := &partition{
		blockOf:  make([]int, sink+1),
		sink:     sink,
		inX:      bitset.New(uint(sink + 1)),
		hits:     make(map[int]int),
		worklist: newWorklist(order),
	}
	for i := range p.blockOf {
		p.blockOf[i] = -1
	}
	nonaccepting := make([]dfa.SNum, 0, len(states)+1)
	groups := treemap.NewWithStringComparator()
	for _, s := range states {
		state := d.States[s]
		if state == nil {
			return nil, fmt.Errorf("%w: state %d is nil", dfa.ErrInconsistentDFA, s)
		}
		if !state.IsAccepting() {
			nonaccepting = append(nonaccepting, s)
			continue
		}
		key := acceptKey(state.Accepts)
		var members []dfa.SNum
		if g, found := groups.Get(key); found {
			members = g.([]dfa.SNum)
		}
		groups.Put(key, append(members, s))
	}
	tracer().Debugf("initial partition: %d non-accepting states, %d accept classes",
		len(nonaccepting), groups.Size())
	p.newBlock(append(nonaccepting, sink), false)
	it := groups.Iterator()
	for it.Next() {
		p.newBlock(it.Value().([]dfa.SNum), true)
	}
	return p, nil
}

// acceptKey is a canonical serialization of a sequence of accept actions.
// Right-context states are left out; they are refined like transitions.
func acceptKey(accepts []dfa.Accept) string {
	acc := make([]dfa.Accept, len(accepts))
	for i, a := range accepts {
		if a.RightContext.Kind == dfa.RightContextState {
			a.RightContext.State = 0
		}
		acc[i] = a
	}
	return string(structhash.Dump(acc, 1))
}

func (p *partition) newBlock(members []dfa.SNum, queued bool) int {
	b := len(p.blocks)
	p.blocks = append(p.blocks, &block{members: members, queued: queued})
	for _, s := range members {
		p.blockOf[s] = b
	}
	if queued {
		p.worklist.push(b)
	}
	return b
}

// split refines the partition with a preimage X. Every block cut by X is split
// exactly once. A settled block keeps the larger half and queues the smaller one;
// a queued block has both halves queued.
func (p *partition) split(X []dfa.SNum) {
	p.touched = p.touched[:0]
	for _, s := range X {
		p.inX.Set(uint(s))
		b := p.blockOf[s]
		if p.hits[b] == 0 {
			p.touched = append(p.touched, b)
		}
		p.hits[b]++
	}
	for _, b := range p.touched {
		blk := p.blocks[b]
		if p.hits[b] == len(blk.members) { // X does not cut blk
			continue
		}
		in := make([]dfa.SNum, 0, p.hits[b])
		out := make([]dfa.SNum, 0, len(blk.members)-p.hits[b])
		for _, s := range blk.members {
			if p.inX.Test(uint(s)) {
				in = append(in, s)
			} else {
				out = append(out, s)
			}
		}
		keep, other := out, in
		if !blk.queued && len(in) > len(out) {
			keep, other = in, out
		}
		blk.members = keep
		nb := p.newBlock(other, true)
		p.splits++
		tracer().Debugf("split class %d (%d states) off class %d (%d states)", nb, len(other), b, len(keep))
	}
	for _, s := range X {
		p.inX.Clear(uint(s))
	}
	for _, b := range p.touched {
		delete(p.hits, b)
	}
}

func refine(d *dfa.DFA, o *options) ([]EquivalenceClass, error) {
	// negative symbols are reserved for right-context references
	if alphabet := d.Alphabet(); len(alphabet) > 0 && alphabet[0] < 0 {
		return nil, fmt.Errorf("%w: negative input symbol %d", dfa.ErrInconsistentDFA, alphabet[0])
	}
	p, err := initialPartition(d, o.order)
	if err != nil {
		return nil, err
	}
	if o.stats != nil {
		o.stats.States = len(d.States)
		o.stats.InitialClasses = len(p.blocks)
		if len(p.blocks[0].members) == 1 { // sink only
			o.stats.InitialClasses--
		}
	}
	pi := newPreimageIndex(d, p.sink)
	var X []dfa.SNum
	for {
		a, ok := p.worklist.pop()
		if !ok {
			break
		}
		A := p.blocks[a]
		A.queued = false // settled, but still a splitter in this round
		splitter := append([]dfa.SNum(nil), A.members...)
		for _, c := range pi.Alphabet() {
			if X = pi.preimage(c, splitter, X); len(X) == 0 {
				continue
			}
			p.split(X)
		}
	}
	classes := make([]EquivalenceClass, 0, len(p.blocks))
	for _, blk := range p.blocks {
		cls := make(EquivalenceClass, 0, len(blk.members))
		for _, s := range blk.members {
			if s != p.sink {
				cls = append(cls, s)
			}
		}
		if len(cls) == 0 {
			continue
		}
		sort.Slice(cls, func(i, j int) bool { return cls[i] < cls[j] })
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i][0] < classes[j][0] })
	if o.stats != nil {
		o.stats.Splits = p.splits
		o.stats.Classes = len(classes)
	}
	tracer().Debugf("refinement done: %d states in %d classes after %d splits",
		len(d.States), len(classes), p.splits)
	return classes, nil
}
