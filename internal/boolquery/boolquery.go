// Package boolquery implements the boolean query parser and planner of
// lexing, shunting-yard to RPN, AST construction with
// flattening, algebraic rewrites, and cost-driven evaluation.
package boolquery

import "github.com/billstark/retriever/internal/index"

// Eval parses and evaluates a boolean query against reader, returning the
// full, ascending, duplicate-free set of matching DocIds. A malformed query
// (unmatched parens, empty operand stack, wrong arity) returns a
// *ParseError and a nil result; callers (the driver) should emit a blank
// result line and continue.
func Eval(query string, reader *index.Reader) (index.DocIDs, error) {
	tokens := lex(query)
	if len(tokens) == 0 {
		return index.DocIDs{}, nil
	}

	rpn, err := toRPN(tokens)
	if err != nil {
		return nil, err
	}

	ast, err := buildAST(rpn, reader, reader.AllDocs())
	if err != nil {
		return nil, err
	}

	ast = rewrite(ast)
	return collapse(ast), nil
}
