package dfa

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/lexgen/dfa/sparse"
	"github.com/pterm/pterm"
)

// === Transition tables =====================================================

// Table is a transition table for code generation. Rows are states, columns are
// input symbols, shifted by the smallest symbol of the alphabet.
type Table struct {
	matrix *sparse.IntMatrix
	mincol Symbol // lowest symbol => offset for access
	starts []SNum
	accept [][]Accept
}

// TransitionTable creates a transition table for d. State numbers of d have to be
// dense, i.e. range from 0 to NumStates()-1, which is always true for automata
// produced by package minimize.
func TransitionTable(d *DFA) (*Table, error) {
	n := len(d.States)
	alphabet := d.Alphabet()
	var mincol, maxcol Symbol
	if len(alphabet) > 0 {
		mincol, maxcol = alphabet[0], alphabet[len(alphabet)-1]
	}
	extent := int(maxcol-mincol) + 1
	tracer().Infof("transition table of size %d x (%d-%d=%d)", n, maxcol, mincol, extent)
	t := &Table{
		matrix: sparse.NewIntMatrix(n, extent, sparse.DefaultNullValue),
		mincol: mincol,
		starts: append([]SNum(nil), d.Starts...),
		accept: make([][]Accept, n),
	}
	for i := 0; i < n; i++ {
		s, ok := d.States[SNum(i)]
		if !ok {
			return nil, fmt.Errorf("%w: state %d missing, state numbers not dense", ErrInconsistentDFA, i)
		}
		t.accept[i] = s.Accepts
		for c, to := range s.Out {
			if to < 0 || int(to) >= n {
				return nil, fmt.Errorf("%w: transition %d --%d--> %d", ErrInconsistentDFA, i, c, to)
			}
			t.matrix.Set(i, int(c-mincol), int32(to))
		}
	}
	return t, nil
}

// NullValue is the table entry for "no transition".
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the target state for (state, c), or NullValue.
func (t *Table) Value(state SNum, c Symbol) int32 {
	j := c - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(int(state), int(j))
}

// States returns the number of rows.
func (t *Table) States() int {
	return t.matrix.M()
}

// ValueCount returns the number of transitions stored.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// Starts returns the start state for each start condition.
func (t *Table) Starts() []SNum {
	return t.starts
}

// Accepts returns the accept actions of a state.
func (t *Table) Accepts(state SNum) []Accept {
	return t.accept[state]
}

// Transitions calls f for every transition of state, in ascending symbol order.
func (t *Table) Transitions(state SNum, f func(c Symbol, to SNum)) {
	t.matrix.Row(int(state), func(j int, v int32) {
		f(Symbol(j)+t.mincol, SNum(v))
	})
}

// TableAsHTML exports a transition table in HTML-format.
func TableAsHTML(t *Table, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("transition table of size = %d<p>", t.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td><td>accept</td><td>transitions</td></tr>\n")
	for i := 0; i < t.States(); i++ {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", i))
		io.WriteString(w, "<td>"+acceptsLabel(t.accept[i], "&nbsp;")+"</td>\n<td>")
		t.Transitions(SNum(i), func(c Symbol, to SNum) {
			io.WriteString(w, fmt.Sprintf("%s&rarr;%d ", symbolLabel(c), to))
		})
		io.WriteString(w, "</td></tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// === Graphviz and debugging output =========================================

// WriteGraphViz exports an automaton to the Graphviz Dot format.
func WriteGraphViz(d *DFA, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for i, start := range d.Starts {
		b.WriteString(fmt.Sprintf("start%d [shape=plaintext, style=\"\", label=\"sc %d\"]\n", i, i))
		b.WriteString(fmt.Sprintf("start%d -> s%03d\n", i, start))
	}
	for _, n := range d.StateNumbers() {
		s := d.States[n]
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			n, nodecolor(s), n, recordEscaper.Replace(acceptsLabel(s.Accepts, ""))))
	}
	for _, n := range d.StateNumbers() {
		s := d.States[n]
		for _, c := range sortedSymbols(s.Out) {
			b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=%q]\n", n, s.Out[c], symbolLabel(c)))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var recordEscaper = strings.NewReplacer("{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`)

func nodecolor(s *State) string {
	if s.IsAccepting() {
		return "lightgray"
	}
	return "white"
}

// Dump writes a table of all states of d to w. It is a debugging helper.
func Dump(d *DFA, w io.Writer) error {
	data := [][]string{{"state", "start", "accept", "transitions"}}
	for _, n := range d.StateNumbers() {
		s := d.States[n]
		var starts []string
		for i, st := range d.Starts {
			if st == n {
				starts = append(starts, strconv.Itoa(i))
			}
		}
		var trans []string
		for _, c := range sortedSymbols(s.Out) {
			trans = append(trans, fmt.Sprintf("%s→%d", symbolLabel(c), s.Out[c]))
		}
		data = append(data, []string{
			strconv.Itoa(int(n)),
			strings.Join(starts, ","),
			acceptsLabel(s.Accepts, ""),
			strings.Join(trans, " "),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// ----------------------------------------------------------------------

func acceptsLabel(accepts []Accept, empty string) string {
	if len(accepts) == 0 {
		return empty
	}
	labels := make([]string, len(accepts))
	for i, acc := range accepts {
		labels[i] = acc.String()
	}
	return strings.Join(labels, " ")
}

func symbolLabel(c Symbol) string {
	if c > ' ' && c < 0x7f && c != '"' && c != '\\' {
		return string(rune(c))
	}
	return fmt.Sprintf("#%d", c)
}

func sortedSymbols(out map[Symbol]SNum) []Symbol {
	syms := make([]Symbol, 0, len(out))
	for c := range out {
		syms = append(syms, c)
	}
	sortSymbols(syms)
	return syms
}
