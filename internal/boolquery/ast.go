package boolquery

import (
	"strings"
	"sync"

	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/normalize"
)

// Node is a boolean-query AST node: Keyword, Not, And, or Or.
type Node interface {
	// count is an upper-bound/exact document-count estimate used by the
	// planner to choose evaluation order; it never triggers a postings
	// load for a bare Keyword.
	count() int
}

type keywordNode struct {
	reader *index.Reader
	term   string

	once     sync.Once
	postings index.BooleanPostingList
}

// newKeyword runs term through the same normalizer the indexer used, so the
// keyword is looked up by its case-folded, stemmed form.
func newKeyword(reader *index.Reader, term string) *keywordNode {
	norm := strings.ToLower(term)
	if terms := normalize.Terms(term); len(terms) == 1 {
		norm = terms[0]
	}
	return &keywordNode{reader: reader, term: norm}
}

func (k *keywordNode) count() int {
	df, _, ok := k.reader.Lookup(k.term)
	if !ok {
		return 0
	}
	return df
}

// load lazily fetches this keyword's posting list (and any skip pointers
// that come with it) on first access.
func (k *keywordNode) load() index.BooleanPostingList {
	k.once.Do(func() {
		k.postings = k.reader.BooleanPostings(k.term)
	})
	return k.postings
}

type notNode struct {
	child   Node
	allDocs index.DocIDs
}

func (n *notNode) count() int { return len(n.allDocs) - n.child.count() }

type andNode struct {
	children []Node
}

func (a *andNode) count() int {
	min := a.children[0].count()
	for _, c := range a.children[1:] {
		if c.count() < min {
			min = c.count()
		}
	}
	return min
}

type orNode struct {
	children []Node
}

func (o *orNode) count() int {
	sum := 0
	for _, c := range o.children {
		sum += c.count()
	}
	return sum
}

// newAnd builds an And node, flattening any child that is itself an And
// (associative splicing).
func newAnd(a, b Node) Node {
	var children []Node
	for _, n := range []Node{a, b} {
		if and, ok := n.(*andNode); ok {
			children = append(children, and.children...)
		} else {
			children = append(children, n)
		}
	}
	return &andNode{children: children}
}

// newOr builds an Or node, flattening any child that is itself an Or.
func newOr(a, b Node) Node {
	var children []Node
	for _, n := range []Node{a, b} {
		if or, ok := n.(*orNode); ok {
			children = append(children, or.children...)
		} else {
			children = append(children, n)
		}
	}
	return &orNode{children: children}
}

// buildAST consumes an RPN token stream onto a stack, producing a Node.
func buildAST(rpn []token, reader *index.Reader, allDocs index.DocIDs) (Node, error) {
	var stack []Node

	pop := func() (Node, error) {
		if len(stack) == 0 {
			return nil, errEmptyOperandStack
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, tok := range rpn {
		switch tok.kind {
		case tokKeyword:
			stack = append(stack, newKeyword(reader, tok.text))
		case tokNot:
			child, err := pop()
			if err != nil {
				return nil, parseErrorf("NOT with no operand")
			}
			stack = append(stack, &notNode{child: child, allDocs: allDocs})
		case tokAnd, tokOr:
			right, err := pop()
			if err != nil {
				return nil, parseErrorf("%s with missing operand", opName(tok.kind))
			}
			left, err := pop()
			if err != nil {
				return nil, parseErrorf("%s with missing operand", opName(tok.kind))
			}
			if tok.kind == tokAnd {
				stack = append(stack, newAnd(left, right))
			} else {
				stack = append(stack, newOr(left, right))
			}
		}
	}

	if len(stack) != 1 {
		return nil, parseErrorf("malformed query: %d dangling operands", len(stack))
	}
	return stack[0], nil
}

func opName(k tokenKind) string {
	if k == tokAnd {
		return "AND"
	}
	return "OR"
}
