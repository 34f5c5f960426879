package boolquery

// rewrite applies the algebraic rewrites once, bottom-up:
// double negation (NOT(NOT(x)) -> x) and De Morgan for an OR whose every
// child is a NOT (Or(NOT x1, ..., NOT xn) -> Not(And(x1, ..., xn))).
func rewrite(n Node) Node {
	switch t := n.(type) {
	case *notNode:
		child := rewrite(t.child)
		if inner, ok := child.(*notNode); ok {
			return inner.child
		}
		return &notNode{child: child, allDocs: t.allDocs}
	case *andNode:
		children := make([]Node, len(t.children))
		for i, c := range t.children {
			children[i] = rewrite(c)
		}
		return &andNode{children: children}
	case *orNode:
		children := make([]Node, len(t.children))
		allNot := len(t.children) > 0
		for i, c := range t.children {
			children[i] = rewrite(c)
			if _, ok := children[i].(*notNode); !ok {
				allNot = false
			}
		}
		if allNot {
			inner := make([]Node, len(children))
			var allDocs = children[0].(*notNode).allDocs
			for i, c := range children {
				inner[i] = c.(*notNode).child
			}
			return &notNode{child: &andNode{children: inner}, allDocs: allDocs}
		}
		return &orNode{children: children}
	default:
		return n
	}
}
