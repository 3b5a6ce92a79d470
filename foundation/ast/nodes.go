// File: nodes.go
// Title: AST Node Definitions
// Description: Defines the expression and statement node variants of the
//              scripting language AST and the Generic node used for shapes
//              without a typed variant. Every node exposes its display fields
//              in a fixed order, never including type, token or paren.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-18 v0.2.0: Expression/statement variants with ordered display fields
// - 2026-10-18 v0.2.0: Show the return keyword unless it was given as token

package ast

import (
	"reflect"

	mdwerror "github.com/msto63/astview/foundation/core/error"
	mdwstringx "github.com/msto63/astview/foundation/utils/stringx"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// Type returns the discriminator shown as the section label
	Type() string

	// Fields returns the display fields in order
	Fields() []Field

	// Validate performs basic validation of the node itself
	Validate() error
}

// Field is one named member of a node
type Field struct {
	Name  string
	Value interface{}
}

// Expression nodes

// Literal represents a literal value
type Literal struct {
	Value interface{}
}

// Variable represents a reference to a named variable
type Variable struct {
	Name Token
}

// Binary represents an arithmetic or comparison expression
type Binary struct {
	Left     Node
	Operator Token
	Right    Node
}

// Logical represents an and/or expression
type Logical struct {
	Left     Node
	Operator Token
	Right    Node
}

// Unary represents a prefix operator expression
type Unary struct {
	Operator Token
	Right    Node
}

// Grouping represents a parenthesized expression
type Grouping struct {
	Expression Node
}

// Call represents a function call; Paren is the closing parenthesis
type Call struct {
	Callee    Node
	Paren     Token
	Arguments []Node
}

// Assign represents an assignment to a variable
type Assign struct {
	Name  Token
	Value Node
}

// Get represents a property access
type Get struct {
	Object Node
	Name   Token
}

// Set represents a property assignment
type Set struct {
	Object Node
	Name   Token
	Value  Node
}

// Statement nodes

// Expression represents an expression statement
type Expression struct {
	Expression Node
}

// Print represents a print statement
type Print struct {
	Expression Node
}

// Var represents a variable declaration; Initializer may be nil
type Var struct {
	Name        Token
	Initializer Node
}

// Block represents a braced statement list
type Block struct {
	Statements []Node
}

// If represents a conditional statement; Else may be nil
type If struct {
	Condition Node
	Then      Node
	Else      Node
}

// While represents a loop statement
type While struct {
	Condition Node
	Body      Node
}

// Function represents a function declaration
type Function struct {
	Name   Token
	Params []Token
	Body   []Node
}

// Return represents a return statement. KeywordField names the field the
// return token was read from; empty means keyword.
type Return struct {
	Keyword      Token
	Value        Node
	KeywordField string
}

// Generic represents a node shape that has no typed variant. Entries keep
// their source order and may include hidden names.
type Generic struct {
	Kind    string
	Entries []Field
}

// Node type discriminators
const (
	TypeBinary     = "ExprBinary"
	TypeLogical    = "ExprLogical"
	TypeUnary      = "ExprUnary"
	TypeGrouping   = "ExprGrouping"
	TypeLiteral    = "ExprLiteral"
	TypeVariable   = "ExprVariable"
	TypeCall       = "ExprCall"
	TypeAssign     = "ExprAssign"
	TypeGet        = "ExprGet"
	TypeSet        = "ExprSet"
	TypeExpression = "StmtExpression"
	TypePrint      = "StmtPrint"
	TypeVar        = "StmtVar"
	TypeBlock      = "StmtBlock"
	TypeIf         = "StmtIf"
	TypeWhile      = "StmtWhile"
	TypeFunction   = "StmtFunction"
	TypeReturn     = "StmtReturn"
)

func (n *Literal) Type() string    { return TypeLiteral }
func (n *Variable) Type() string   { return TypeVariable }
func (n *Binary) Type() string     { return TypeBinary }
func (n *Logical) Type() string    { return TypeLogical }
func (n *Unary) Type() string      { return TypeUnary }
func (n *Grouping) Type() string   { return TypeGrouping }
func (n *Call) Type() string       { return TypeCall }
func (n *Assign) Type() string     { return TypeAssign }
func (n *Get) Type() string        { return TypeGet }
func (n *Set) Type() string        { return TypeSet }
func (n *Expression) Type() string { return TypeExpression }
func (n *Print) Type() string      { return TypePrint }
func (n *Var) Type() string        { return TypeVar }
func (n *Block) Type() string      { return TypeBlock }
func (n *If) Type() string         { return TypeIf }
func (n *While) Type() string      { return TypeWhile }
func (n *Function) Type() string   { return TypeFunction }
func (n *Return) Type() string     { return TypeReturn }

// Type returns the generic node's kind as given by the document
func (n *Generic) Type() string { return n.Kind }

// Display fields

func (n *Literal) Fields() []Field  { return []Field{{"value", n.Value}} }
func (n *Variable) Fields() []Field { return []Field{{"name", n.Name}} }

func (n *Binary) Fields() []Field {
	return []Field{{"left", n.Left}, {"operator", n.Operator}, {"right", n.Right}}
}

func (n *Logical) Fields() []Field {
	return []Field{{"left", n.Left}, {"operator", n.Operator}, {"right", n.Right}}
}

func (n *Unary) Fields() []Field {
	return []Field{{"operator", n.Operator}, {"right", n.Right}}
}

func (n *Grouping) Fields() []Field { return []Field{{"expression", n.Expression}} }

func (n *Call) Fields() []Field {
	return []Field{{"callee", n.Callee}, {"arguments", n.Arguments}}
}

func (n *Assign) Fields() []Field { return []Field{{"name", n.Name}, {"value", n.Value}} }
func (n *Get) Fields() []Field    { return []Field{{"object", n.Object}, {"name", n.Name}} }

func (n *Set) Fields() []Field {
	return []Field{{"object", n.Object}, {"name", n.Name}, {"value", n.Value}}
}

func (n *Expression) Fields() []Field { return []Field{{"expression", n.Expression}} }
func (n *Print) Fields() []Field      { return []Field{{"expression", n.Expression}} }

func (n *Var) Fields() []Field {
	return []Field{{"name", n.Name}, {"initializer", n.Initializer}}
}

func (n *Block) Fields() []Field { return []Field{{"statements", n.Statements}} }

func (n *If) Fields() []Field {
	return []Field{{"condition", n.Condition}, {"thenBranch", n.Then}, {"elseBranch", n.Else}}
}

func (n *While) Fields() []Field {
	return []Field{{"condition", n.Condition}, {"body", n.Body}}
}

func (n *Function) Fields() []Field {
	return []Field{{"name", n.Name}, {"params", n.Params}, {"body", n.Body}}
}

func (n *Return) Fields() []Field {
	name := n.KeywordField
	if name == "" {
		name = "keyword"
	}
	if IsHidden(name) {
		return []Field{{"value", n.Value}}
	}
	return []Field{{name, n.Keyword}, {"value", n.Value}}
}

// Fields returns the entries in order, without hidden names
func (n *Generic) Fields() []Field {
	fields := make([]Field, 0, len(n.Entries))
	for _, e := range n.Entries {
		if IsHidden(e.Name) {
			continue
		}
		fields = append(fields, e)
	}
	return fields
}

// Get returns the value of the first entry with the given name
func (n *Generic) Get(name string) (interface{}, bool) {
	for _, e := range n.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Validation

func invalid(nodeType, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeValidationFailed).
		WithDetail("node", nodeType)
}

func requireNode(nodeType, field string, n Node) error {
	if IsNil(n) {
		return invalid(nodeType, field+" is required")
	}
	return nil
}

func requireName(nodeType, field string, t Token) error {
	if mdwstringx.IsBlank(t.Lexeme) {
		return invalid(nodeType, field+" lexeme is required")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *Literal) Validate() error {
	if Classify(n.Value) != KindPrimitive {
		return invalid(TypeLiteral, "literal value must be a primitive")
	}
	return nil
}

func (n *Variable) Validate() error { return requireName(TypeVariable, "name", n.Name) }

func (n *Binary) Validate() error {
	return firstError(
		requireNode(TypeBinary, "left", n.Left),
		requireName(TypeBinary, "operator", n.Operator),
		requireNode(TypeBinary, "right", n.Right),
	)
}

func (n *Logical) Validate() error {
	return firstError(
		requireNode(TypeLogical, "left", n.Left),
		requireName(TypeLogical, "operator", n.Operator),
		requireNode(TypeLogical, "right", n.Right),
	)
}

func (n *Unary) Validate() error {
	return firstError(
		requireName(TypeUnary, "operator", n.Operator),
		requireNode(TypeUnary, "right", n.Right),
	)
}

func (n *Grouping) Validate() error {
	return requireNode(TypeGrouping, "expression", n.Expression)
}

func (n *Call) Validate() error { return requireNode(TypeCall, "callee", n.Callee) }

func (n *Assign) Validate() error {
	return firstError(
		requireName(TypeAssign, "name", n.Name),
		requireNode(TypeAssign, "value", n.Value),
	)
}

func (n *Get) Validate() error {
	return firstError(
		requireNode(TypeGet, "object", n.Object),
		requireName(TypeGet, "name", n.Name),
	)
}

func (n *Set) Validate() error {
	return firstError(
		requireNode(TypeSet, "object", n.Object),
		requireName(TypeSet, "name", n.Name),
		requireNode(TypeSet, "value", n.Value),
	)
}

func (n *Expression) Validate() error {
	return requireNode(TypeExpression, "expression", n.Expression)
}

func (n *Print) Validate() error { return requireNode(TypePrint, "expression", n.Expression) }
func (n *Var) Validate() error   { return requireName(TypeVar, "name", n.Name) }
func (n *Block) Validate() error { return nil }

func (n *If) Validate() error {
	return firstError(
		requireNode(TypeIf, "condition", n.Condition),
		requireNode(TypeIf, "thenBranch", n.Then),
	)
}

func (n *While) Validate() error {
	return firstError(
		requireNode(TypeWhile, "condition", n.Condition),
		requireNode(TypeWhile, "body", n.Body),
	)
}

func (n *Function) Validate() error { return requireName(TypeFunction, "name", n.Name) }
func (n *Return) Validate() error   { return nil }

func (n *Generic) Validate() error {
	if mdwstringx.IsBlank(n.Kind) {
		return invalid(UntypedLabel, "node type is required")
	}
	for _, e := range n.Entries {
		if mdwstringx.IsBlank(e.Name) {
			return invalid(n.Kind, "field name cannot be empty")
		}
	}
	return nil
}

// IsNil reports whether v is nil or a nil pointer, map, slice or interface
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
