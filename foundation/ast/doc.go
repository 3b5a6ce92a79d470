// File: doc.go
// Title: AST Package Documentation
// Description: Documents the AST data model consumed by the tree renderers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2026-10-18 v0.2.0: Renderer data model, classification and decoding

/*
Package ast defines the data model the tree renderers consume.

Values handed to a renderer are one of:
  - an ordered sequence ([]Node, []Token, []interface{} or any slice)
  - a Token, displayed as its quoted lexeme
  - a primitive (nil, string, bool or a number)
  - a Node: the Literal and Variable variants render as leaves, every
    other node as a section of its display fields

Classify is the single dispatch point shared by all renderers, and
Stringify, TokenText, LiteralText, VariableText and NodeLabel produce the
texts they show. Nodes never expose the hidden field names type, token
and paren.

AST values are not built here. DecodeDocument reads the JSON or YAML
documents an external parser writes:

	tree, err := ast.DecodeDocument(data)
	if err != nil {
		return err
	}
	for _, err := range ast.Validate(tree) {
		logger.Warn(err.Error())
	}
*/
package ast
