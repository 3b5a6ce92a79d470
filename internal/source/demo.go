// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     source
// Description: Built-in sample program used when no document is given
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package source

import "github.com/msto63/astview/foundation/ast"

// DemoName is shown in place of a file name for the built-in program
const DemoName = "demo"

// Demo returns the AST of this program:
//
//	var greeting = "hello";
//	fun add(a, b) { return a + b; }
//	print add(1, 2);
//	if (greeting == "hello") print "hi"; else print "bye";
//	var i = 0;
//	while (i < 3) { i = i + 1; }
func Demo() []ast.Node {
	t := func(tt ast.TokenType, lexeme string, line int) ast.Token {
		return ast.NewToken(tt, lexeme, line)
	}
	ident := func(name string, line int) ast.Token {
		return t(ast.TokenIdentifier, name, line)
	}
	variable := func(name string, line int) ast.Node {
		return &ast.Variable{Name: ident(name, line)}
	}

	return []ast.Node{
		&ast.Var{
			Name:        ident("greeting", 1),
			Initializer: &ast.Literal{Value: "hello"},
		},
		&ast.Function{
			Name:   ident("add", 2),
			Params: []ast.Token{ident("a", 2), ident("b", 2)},
			Body: []ast.Node{
				&ast.Return{
					Keyword: t(ast.TokenReturn, "return", 2),
					Value: &ast.Binary{
						Left:     variable("a", 2),
						Operator: t(ast.TokenPlus, "+", 2),
						Right:    variable("b", 2),
					},
				},
			},
		},
		&ast.Print{
			Expression: &ast.Call{
				Callee:    variable("add", 3),
				Paren:     t(ast.TokenRightParen, ")", 3),
				Arguments: []ast.Node{&ast.Literal{Value: 1.0}, &ast.Literal{Value: 2.0}},
			},
		},
		&ast.If{
			Condition: &ast.Binary{
				Left:     variable("greeting", 4),
				Operator: t(ast.TokenEqualEqual, "==", 4),
				Right:    &ast.Literal{Value: "hello"},
			},
			Then: &ast.Print{Expression: &ast.Literal{Value: "hi"}},
			Else: &ast.Print{Expression: &ast.Literal{Value: "bye"}},
		},
		&ast.Var{
			Name:        ident("i", 5),
			Initializer: &ast.Literal{Value: 0.0},
		},
		&ast.While{
			Condition: &ast.Binary{
				Left:     variable("i", 6),
				Operator: t(ast.TokenLess, "<", 6),
				Right:    &ast.Literal{Value: 3.0},
			},
			Body: &ast.Block{
				Statements: []ast.Node{
					&ast.Expression{
						Expression: &ast.Assign{
							Name: ident("i", 6),
							Value: &ast.Binary{
								Left:     variable("i", 6),
								Operator: t(ast.TokenPlus, "+", 6),
								Right:    &ast.Literal{Value: 1.0},
							},
						},
					},
				},
			},
		},
	}
}
