package nfa

import "slices"

// stateSet is a sparse set of state indices with O(1) insert, lookup and
// clear.
type stateSet struct {
	dense  []int
	sparse []int
}

func newStateSet(capacity int) *stateSet {
	return &stateSet{
		dense:  make([]int, 0, capacity),
		sparse: make([]int, capacity),
	}
}

func (s *stateSet) contains(id int) bool {
	i := s.sparse[id]
	return i < len(s.dense) && s.dense[i] == id
}

func (s *stateSet) add(id int) {
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, id)
}

func (s *stateSet) clear() {
	s.dense = s.dense[:0]
}

func (s *stateSet) len() int {
	return len(s.dense)
}

// closure adds id and every state reachable from it over epsilon edges to
// set. States already in set are not expanded again, which is what stops
// the loop-back edges of star and plus from cycling forever.
func (n *NFA) closure(id int, set *stateSet, stack []int) []int {
	stack = append(stack[:0], id)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set.contains(id) {
			continue
		}
		set.add(id)

		s := &n.States[id]
		if !s.IsEpsilon() {
			continue
		}
		for i := len(s.Out) - 1; i >= 0; i-- {
			stack = append(stack, s.Out[i])
		}
	}
	return stack
}

// Closure returns the epsilon-closure of state id in ascending order.
func (n *NFA) Closure(id int) []int {
	set := newStateSet(len(n.States))
	n.closure(id, set, nil)
	ids := slices.Clone(set.dense)
	slices.Sort(ids)
	return ids
}

// Match reports whether the automaton accepts all of text.
func (n *NFA) Match(text string) bool {
	current := newStateSet(len(n.States))
	previous := newStateSet(len(n.States))
	stack := make([]int, 0, len(n.States))

	stack = n.closure(n.Start, current, stack)

	for _, c := range text {
		previous, current = current, previous
		current.clear()
		for _, id := range previous.dense {
			s := &n.States[id]
			if s.Label == c {
				stack = n.closure(s.Out[0], current, stack)
			}
		}
		if current.len() == 0 {
			return false
		}
	}

	return current.contains(n.Accept)
}
