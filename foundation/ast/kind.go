// File: kind.go
// Title: Value Classification
// Description: Classifies renderable values into the closed set of kinds
//              the renderers dispatch on and provides the shared leaf and
//              label texts so every renderer formats values identically.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial classification and display texts
// - 2026-10-18 v0.2.0: Exponent form for very large and small numbers

package ast

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the dispatch category of a renderable value
type Kind int

const (
	KindInvalid Kind = iota
	KindSequence
	KindToken
	KindPrimitive
	KindLiteral
	KindVariable
	KindNode
)

// UntypedLabel is shown for nodes whose type discriminator is empty
const UntypedLabel = "(untyped)"

// String returns string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindToken:
		return "token"
	case KindPrimitive:
		return "primitive"
	case KindLiteral:
		return "literal"
	case KindVariable:
		return "variable"
	case KindNode:
		return "node"
	default:
		return "invalid"
	}
}

// IsComposite reports whether values of this kind render as sections
func (k Kind) IsComposite() bool {
	return k == KindSequence || k == KindNode
}

// Classify returns the kind of v, checking sequence, token, primitive,
// literal, variable and node in that order.
func Classify(v interface{}) Kind {
	if v == nil {
		return KindPrimitive
	}

	switch t := v.(type) {
	case Token:
		return KindToken
	case *Token:
		if t == nil {
			return KindPrimitive
		}
		return KindToken
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindPrimitive
	}

	if IsNil(v) {
		return KindPrimitive
	}

	switch v.(type) {
	case *Literal:
		return KindLiteral
	case *Variable:
		return KindVariable
	case Node:
		return KindNode
	}

	return KindInvalid
}

// Elements returns the elements of a sequence value in order. It returns
// nil for values that are not sequences.
func Elements(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []Node:
		out := make([]interface{}, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out
	case []Token:
		out := make([]interface{}, len(s))
		for i, t := range s {
			out[i] = t
		}
		return out
	}

	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// IsHidden reports whether a field name is excluded from display
func IsHidden(name string) bool {
	switch name {
	case "type", "token", "paren":
		return true
	}
	return false
}

// Stringify returns the display text of a primitive value: strings are
// wrapped in double quotes, nil becomes null and numbers carry no
// trailing zeros.
func Stringify(v interface{}) string {
	if IsNil(v) {
		return "null"
	}

	switch t := v.(type) {
	case string:
		return `"` + t + `"`
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatFloat(t, 64)
	case float32:
		return formatFloat(float64(t), 32)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return `"` + rv.String() + `"`
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}

	return fmt.Sprint(v)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	// exponent form outside [1e-6, 1e21), with the exponent unpadded
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// TokenText returns the leaf text of a token
func TokenText(t Token) string {
	return "'" + t.Lexeme + "'"
}

// LiteralText returns the leaf text of a literal node
func LiteralText(n *Literal) string {
	return TypeLiteral + " " + Stringify(n.Value)
}

// VariableText returns the leaf text of a variable node
func VariableText(n *Variable) string {
	return TypeVariable + " '" + n.Name.Lexeme + "'"
}

// SequenceLabel returns the section label of a sequence with n elements
func SequenceLabel(n int) string {
	return "[" + strconv.Itoa(n) + "]"
}

// NodeLabel returns the section label of a node
func NodeLabel(n Node) string {
	if t := n.Type(); t != "" {
		return t
	}
	return UntypedLabel
}

// LeafText returns the text of a value that renders as a leaf. Values of
// an invalid kind are shown with their default formatting.
func LeafText(v interface{}) string {
	switch Classify(v) {
	case KindToken:
		if t, ok := v.(*Token); ok {
			return TokenText(*t)
		}
		return TokenText(v.(Token))
	case KindLiteral:
		return LiteralText(v.(*Literal))
	case KindVariable:
		return VariableText(v.(*Variable))
	case KindPrimitive:
		return Stringify(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
