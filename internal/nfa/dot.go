package nfa

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot writes a Graphviz representation of the automaton to w.
func (n *NFA) WriteDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph NFA {\n")
	b.WriteString("    rankdir=LR;\n")

	for id := range n.States {
		shape := "circle"
		if id == n.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    s%d [shape=%s];\n", id, shape)
	}

	for id, s := range n.States {
		label := "ε"
		if !s.IsEpsilon() {
			label = string(s.Label)
		}
		for _, to := range s.Out {
			fmt.Fprintf(&b, "    s%d -> s%d [label=%q];\n", id, to, label)
		}
	}

	fmt.Fprintf(&b, "    _start [shape=point]; _start -> s%d;\n", n.Start)
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
