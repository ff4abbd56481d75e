// Package nfa builds Thompson NFAs from postfix tokens and simulates them.
//
// States live in an arena and refer to each other by index, so fragments
// that share a state simply hold the same index.
package nfa

// Epsilon labels a state whose out-edges consume no input.
const Epsilon rune = -1

// State is a node of the automaton. A labelled state has exactly one
// out-edge, taken on its label. An epsilon state has zero, one or two.
type State struct {
	Label rune
	Out   []int
}

// IsEpsilon reports whether the state has no label.
func (s *State) IsEpsilon() bool {
	return s.Label == Epsilon
}

// Fragment is a partially built automaton with a single entry and exit.
type Fragment struct {
	Start  int
	Accept int
}

// NFA is a compiled automaton. It is not modified after Compile returns and
// may be shared between goroutines.
type NFA struct {
	States []State
	Start  int
	Accept int
}

// Len returns the number of states.
func (n *NFA) Len() int {
	return len(n.States)
}

// LabelledStates returns the indices of the states that consume input.
func (n *NFA) LabelledStates() []int {
	var ids []int
	for i := range n.States {
		if !n.States[i].IsEpsilon() {
			ids = append(ids, i)
		}
	}
	return ids
}

// builder is the arena states are allocated from during compilation.
type builder struct {
	states []State
}

// add appends a new state with its own out-edge slice.
func (b *builder) add(label rune, out ...int) int {
	edges := make([]int, len(out), 2)
	copy(edges, out)
	b.states = append(b.states, State{Label: label, Out: edges})
	return len(b.states) - 1
}

// link appends an epsilon edge from one state to another.
func (b *builder) link(from, to int) {
	b.states[from].Out = append(b.states[from].Out, to)
}

// relink replaces the out-edges of a state.
func (b *builder) relink(from int, to ...int) {
	edges := make([]int, len(to), 2)
	copy(edges, to)
	b.states[from].Out = edges
}
