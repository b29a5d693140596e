// Package textrun merges goldmark's fragmented text nodes into runs.
//
// The inline parser splits plain text wherever a construct might start, so
// "[[Page]]" arrives as several adjacent text nodes. A Run joins adjacent
// text siblings into one string that can be matched and replaced as a unit.
package textrun

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Run is a maximal sequence of adjacent plain text siblings. A run ends
// after a node carrying a line break.
type Run struct {
	Parent ast.Node
	Nodes  []ast.Node
	Value  string

	last ast.Node
}

// Collect returns the runs of the subtree below root in document order.
// Text inside code spans, links and images is not collected.
func Collect(root ast.Node, source []byte) []*Run {
	var runs []*Run

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindCodeSpan, ast.KindLink, ast.KindImage, ast.KindAutoLink, ast.KindRawHTML:
			return ast.WalkSkipChildren, nil
		}

		if !n.HasChildren() {
			return ast.WalkContinue, nil
		}

		runs = append(runs, collectChildren(n, source)...)

		return ast.WalkContinue, nil
	})

	return runs
}

func collectChildren(parent ast.Node, source []byte) []*Run {
	var (
		runs    []*Run
		current *Run
		sb      strings.Builder
	)

	flush := func() {
		if current != nil {
			current.Value = sb.String()
			runs = append(runs, current)
		}
		current = nil
		sb.Reset()
	}

	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		value, ok := plainValue(c, source)
		if !ok {
			flush()
			continue
		}

		if current == nil {
			current = &Run{Parent: parent}
		}
		current.Nodes = append(current.Nodes, c)
		current.last = c
		sb.WriteString(value)

		if t, ok := c.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			flush()
		}
	}
	flush()

	return runs
}

func plainValue(n ast.Node, source []byte) (string, bool) {
	switch t := n.(type) {
	case *ast.Text:
		if t.IsRaw() {
			return "", false
		}
		return string(t.Segment.Value(source)), true
	case *ast.String:
		if t.IsCode() || t.IsRaw() {
			return "", false
		}
		return string(t.Value), true
	}

	return "", false
}

// Replace substitutes nodes for the run. Line breaks ending the run are
// kept.
func (r *Run) Replace(nodes []ast.Node) {
	if len(r.Nodes) == 0 {
		return
	}

	first := r.Nodes[0]
	for _, n := range nodes {
		r.Parent.InsertBefore(r.Parent, first, n)
	}

	if t, ok := r.last.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
		brk := ast.NewTextSegment(text.NewSegment(t.Segment.Stop, t.Segment.Stop))
		brk.SetSoftLineBreak(t.SoftLineBreak())
		brk.SetHardLineBreak(t.HardLineBreak())
		r.Parent.InsertBefore(r.Parent, first, brk)
	}

	for _, n := range r.Nodes {
		r.Parent.RemoveChild(r.Parent, n)
	}

	r.Nodes = nil
}

// Text returns a plain inline node for s.
func Text(s string) ast.Node {
	return ast.NewString([]byte(s))
}
