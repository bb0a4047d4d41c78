package minimize

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by FromConfig.
const (
	ConfigWorklist = "minimize.worklist" // "lifo" or "fifo"
	ConfigValidate = "minimize.validate" // check input consistency up front
)

// WorklistOrder determines in which order pending classes are used as splitters.
// The order influences the amount of work done, never the result.
type WorklistOrder int

// Worklist orders.
const (
	LIFO WorklistOrder = iota // default
	FIFO
)

func (o WorklistOrder) String() string {
	if o == FIFO {
		return "fifo"
	}
	return "lifo"
}

// Option configures minimization.
type Option func(*options)

type options struct {
	order    WorklistOrder
	validate bool
	stats    *Stats
}

func newOptions(opts ...Option) *options {
	o := &options{order: LIFO}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithWorklist sets the worklist order.
func WithWorklist(order WorklistOrder) Option {
	return func(o *options) {
		o.order = order
	}
}

// ValidateInput sets or clears input validation. If set, the input automaton is
// checked with dfa.DFA.Validate before any work is done.
func ValidateInput(b bool) Option {
	return func(o *options) {
		o.validate = b
	}
}

// WithStats makes minimization report statistics into st.
func WithStats(st *Stats) Option {
	return func(o *options) {
		o.stats = st
	}
}

// FromConfig reads options from an application configuration. Keys not set in
// conf leave the respective option untouched.
func FromConfig(conf schuko.Configuration) Option {
	return func(o *options) {
		if conf == nil {
			return
		}
		if conf.IsSet(ConfigWorklist) {
			switch strings.ToLower(conf.GetString(ConfigWorklist)) {
			case "fifo":
				o.order = FIFO
			case "lifo":
				o.order = LIFO
			default:
				tracer().Errorf("unknown worklist order %q, keeping %s",
					conf.GetString(ConfigWorklist), o.order)
			}
		}
		if conf.IsSet(ConfigValidate) {
			o.validate = conf.GetBool(ConfigValidate)
		}
	}
}

// Stats reports what minimization did.
type Stats struct {
	States         int // states of the input automaton
	InitialClasses int // classes after grouping by accept actions
	Splits         int // number of class splits
	Classes        int // equivalence classes found
	MinStates      int // states of the result, including duplicated start states
}

// --- Worklists -------------------------------------------------------------

// worklist holds indices of classes still to be used as splitters.
type worklist interface {
	push(int)
	pop() (int, bool)
	size() int
}

func newWorklist(order WorklistOrder) worklist {
	if order == FIFO {
		return &fifo{list: arraylist.New()}
	}
	return &lifo{stack: arraystack.New()}
}

type lifo struct {
	stack *arraystack.Stack
}

func (l *lifo) push(b int) {
	l.stack.Push(b)
}

func (l *lifo) pop() (int, bool) {
	v, ok := l.stack.Pop()
	if !ok {
		return -1, false
	}
	return v.(int), true
}

func (l *lifo) size() int {
	return l.stack.Size()
}

type fifo struct {
	list *arraylist.List
}

func (f *fifo) push(b int) {
	f.list.Add(b)
}

func (f *fifo) pop() (int, bool) {
	v, ok := f.list.Get(0)
	if !ok {
		return -1, false
	}
	f.list.Remove(0)
	return v.(int), true
}

func (f *fifo) size() int {
	return f.list.Size()
}
