// File: document.go
// Title: AST Document Decoding
// Description: Decodes AST documents written by an external parser as JSON
//              or YAML into tokens, typed nodes, generic nodes, sequences and
//              primitives. The yaml.v3 node API keeps mapping key order so
//              generic nodes show their fields as written.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial document decoder
// - 2026-10-18 v0.2.0: Reject self-referencing aliases
// - 2026-10-18 v0.2.0: Keep unknown and partially modeled shapes generic

package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/astview/foundation/core/error"
)

const decodeOperation = "ast.DecodeDocument"

// DecodeDocument decodes a JSON or YAML AST document. Mappings with a
// lexeme key become tokens, mappings with a type key become nodes, and
// sequences become []interface{}. A node becomes a typed variant only when
// its type is a full discriminator such as ExprBinary and every key fits
// that variant; all other nodes stay Generic with their own type as label.
func DecodeDocument(data []byte) (interface{}, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, mdwerror.Wrap(err, "document is not valid JSON or YAML").
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation(decodeOperation)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, mdwerror.New("document is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(decodeOperation)
	}

	d := &decoder{aliases: make(map[*yaml.Node]bool)}
	return d.decode(root.Content[0])
}

// decoder tracks aliases being expanded so that self-referencing anchors
// are rejected instead of recursing forever
type decoder struct {
	aliases map[*yaml.Node]bool
}

// documentTypes maps type discriminators to their typed decoders
var documentTypes = map[string]func(*mapping) (Node, error){}

func init() {
	register := func(name string, fn func(*mapping) (Node, error)) {
		documentTypes[name] = fn
	}

	register(TypeLiteral, func(m *mapping) (Node, error) {
		v, err := m.primitive("value")
		return &Literal{Value: v}, err
	})
	register(TypeVariable, func(m *mapping) (Node, error) {
		name, err := m.token("name")
		return &Variable{Name: name}, err
	})
	register(TypeBinary, func(m *mapping) (Node, error) {
		n := &Binary{}
		return n, m.each(m.nodeInto("left", &n.Left), m.tokenInto("operator", &n.Operator), m.nodeInto("right", &n.Right))
	})
	register(TypeLogical, func(m *mapping) (Node, error) {
		n := &Logical{}
		return n, m.each(m.nodeInto("left", &n.Left), m.tokenInto("operator", &n.Operator), m.nodeInto("right", &n.Right))
	})
	register(TypeUnary, func(m *mapping) (Node, error) {
		n := &Unary{}
		return n, m.each(m.tokenInto("operator", &n.Operator), m.nodeInto("right", &n.Right))
	})
	register(TypeGrouping, func(m *mapping) (Node, error) {
		n := &Grouping{}
		return n, m.each(m.nodeInto("expression", &n.Expression))
	})
	register(TypeCall, func(m *mapping) (Node, error) {
		n := &Call{}
		return n, m.each(m.nodeInto("callee", &n.Callee), m.tokenInto("paren", &n.Paren), m.nodesInto("arguments", &n.Arguments))
	})
	register(TypeAssign, func(m *mapping) (Node, error) {
		n := &Assign{}
		return n, m.each(m.tokenInto("name", &n.Name), m.nodeInto("value", &n.Value))
	})
	register(TypeGet, func(m *mapping) (Node, error) {
		n := &Get{}
		return n, m.each(m.nodeInto("object", &n.Object), m.tokenInto("name", &n.Name))
	})
	register(TypeSet, func(m *mapping) (Node, error) {
		n := &Set{}
		return n, m.each(m.nodeInto("object", &n.Object), m.tokenInto("name", &n.Name), m.nodeInto("value", &n.Value))
	})
	register(TypeExpression, func(m *mapping) (Node, error) {
		n := &Expression{}
		return n, m.each(m.nodeInto("expression", &n.Expression))
	})
	register(TypePrint, func(m *mapping) (Node, error) {
		n := &Print{}
		return n, m.each(m.nodeInto("expression", &n.Expression))
	})
	register(TypeVar, func(m *mapping) (Node, error) {
		n := &Var{}
		return n, m.each(m.tokenInto("name", &n.Name), m.nodeInto("initializer", &n.Initializer))
	})
	register(TypeBlock, func(m *mapping) (Node, error) {
		n := &Block{}
		return n, m.each(m.nodesInto("statements", &n.Statements))
	})
	register(TypeIf, func(m *mapping) (Node, error) {
		n := &If{}
		return n, m.each(m.nodeInto("condition", &n.Condition), m.nodeInto("thenBranch", &n.Then), m.nodeInto("elseBranch", &n.Else))
	})
	register(TypeWhile, func(m *mapping) (Node, error) {
		n := &While{}
		return n, m.each(m.nodeInto("condition", &n.Condition), m.nodeInto("body", &n.Body))
	})
	register(TypeFunction, func(m *mapping) (Node, error) {
		n := &Function{}
		return n, m.each(m.tokenInto("name", &n.Name), m.tokensInto("params", &n.Params), m.nodesInto("body", &n.Body))
	})
	register(TypeReturn, func(m *mapping) (Node, error) {
		n := &Return{KeywordField: "keyword"}
		if _, ok := m.values["token"]; ok {
			n.KeywordField = "token"
		}
		return n, m.each(m.tokenInto(n.KeywordField, &n.Keyword), m.nodeInto("value", &n.Value))
	})
}

func (d *decoder) decode(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil || d.aliases[n.Alias] {
			return nil, formatError(n, fmt.Sprintf("alias %q refers to itself", n.Value))
		}
		d.aliases[n.Alias] = true
		defer delete(d.aliases, n.Alias)
		return d.decode(n.Alias)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := d.decode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return d.decodeMapping(n)
	default:
		return nil, formatError(n, "unexpected document node")
	}
}

func decodeScalar(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, wrapFormatError(n, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return nil, wrapFormatError(n, err)
			}
			return f, nil
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, wrapFormatError(n, err)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

func (d *decoder) decodeMapping(n *yaml.Node) (interface{}, error) {
	m := &mapping{
		d:       d,
		pos:     n,
		values:  make(map[string]*yaml.Node, len(n.Content)/2),
		decoded: make(map[string]decodedField, len(n.Content)/2),
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		m.keys = append(m.keys, key)
		m.values[key] = n.Content[i+1]
	}

	if _, ok := m.values["lexeme"]; ok {
		return m.asToken()
	}

	typeNode, ok := m.values["type"]
	if !ok {
		return nil, formatError(n, "mapping has neither a type nor a lexeme key")
	}

	kind := ""
	if typeNode.Kind == yaml.ScalarNode && typeNode.ShortTag() != "!!null" {
		kind = typeNode.Value
	}

	if typed, ok := documentTypes[kind]; ok {
		node, err := typed(m)
		if err == nil && m.modeled() {
			return node, nil
		}
	}

	generic := &Generic{Kind: kind}
	for _, key := range m.keys {
		if key == "type" {
			continue
		}
		v, _, err := m.field(key)
		if err != nil {
			return nil, err
		}
		generic.Entries = append(generic.Entries, Field{Name: key, Value: v})
	}
	return generic, nil
}

// mapping is a decoded YAML mapping with its keys in document order.
// Field values are decoded once and reused when a typed decode falls back
// to a generic node.
type mapping struct {
	d       *decoder
	pos     *yaml.Node
	keys    []string
	values  map[string]*yaml.Node
	decoded map[string]decodedField
}

type decodedField struct {
	value interface{}
	err   error
}

func (m *mapping) asToken() (Token, error) {
	t := Token{Lexeme: m.values["lexeme"].Value}

	typeNode, ok := m.values["tokenType"]
	if !ok {
		typeNode = m.values["type"]
	}
	if typeNode != nil {
		var number int
		if typeNode.ShortTag() == "!!int" && typeNode.Decode(&number) == nil && TokenType(number).IsValid() {
			t.Type = TokenType(number)
		} else if parsed, ok := ParseTokenType(typeNode.Value); ok {
			t.Type = parsed
		} else {
			return Token{}, formatError(typeNode, fmt.Sprintf("unknown token type %q", typeNode.Value))
		}
	}

	if lit, ok := m.values["literal"]; ok {
		v, err := m.d.decode(lit)
		if err != nil {
			return Token{}, err
		}
		t.Literal = v
	}

	if line, ok := m.values["line"]; ok {
		if err := line.Decode(&t.Line); err != nil {
			return Token{}, wrapFormatError(line, err)
		}
	}

	return t, nil
}

func (m *mapping) each(steps ...error) error {
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *mapping) field(name string) (interface{}, *yaml.Node, error) {
	n, ok := m.values[name]
	if !ok {
		return nil, m.pos, nil
	}
	f, ok := m.decoded[name]
	if !ok {
		f.value, f.err = m.d.decode(n)
		m.decoded[name] = f
	}
	return f.value, n, f.err
}

// modeled reports whether a typed decode read every key besides type
func (m *mapping) modeled() bool {
	for _, key := range m.keys {
		if key == "type" {
			continue
		}
		if _, ok := m.decoded[key]; !ok {
			return false
		}
	}
	return true
}

func (m *mapping) primitive(name string) (interface{}, error) {
	v, n, err := m.field(name)
	if err != nil {
		return nil, err
	}
	if Classify(v) != KindPrimitive {
		return nil, formatError(n, fmt.Sprintf("field %q must be a primitive value", name))
	}
	return v, nil
}

func (m *mapping) token(name string) (Token, error) {
	v, n, err := m.field(name)
	if err != nil || v == nil {
		return Token{}, err
	}
	t, ok := v.(Token)
	if !ok {
		return Token{}, formatError(n, fmt.Sprintf("field %q must be a token", name))
	}
	return t, nil
}

func (m *mapping) node(name string) (Node, error) {
	v, n, err := m.field(name)
	if err != nil || v == nil {
		return nil, err
	}
	node, ok := v.(Node)
	if !ok {
		return nil, formatError(n, fmt.Sprintf("field %q must be a node", name))
	}
	return node, nil
}

func (m *mapping) tokenInto(name string, dst *Token) error {
	t, err := m.token(name)
	*dst = t
	return err
}

func (m *mapping) nodeInto(name string, dst *Node) error {
	n, err := m.node(name)
	*dst = n
	return err
}

func (m *mapping) nodesInto(name string, dst *[]Node) error {
	v, n, err := m.field(name)
	if err != nil || v == nil {
		return err
	}
	elems, ok := v.([]interface{})
	if !ok {
		return formatError(n, fmt.Sprintf("field %q must be a sequence of nodes", name))
	}
	out := make([]Node, 0, len(elems))
	for i, elem := range elems {
		node, ok := elem.(Node)
		if !ok {
			return formatError(elementNode(n, i), fmt.Sprintf("element %d of %q must be a node", i, name))
		}
		out = append(out, node)
	}
	*dst = out
	return nil
}

func (m *mapping) tokensInto(name string, dst *[]Token) error {
	v, n, err := m.field(name)
	if err != nil || v == nil {
		return err
	}
	elems, ok := v.([]interface{})
	if !ok {
		return formatError(n, fmt.Sprintf("field %q must be a sequence of tokens", name))
	}
	out := make([]Token, 0, len(elems))
	for i, elem := range elems {
		t, ok := elem.(Token)
		if !ok {
			return formatError(elementNode(n, i), fmt.Sprintf("element %d of %q must be a token", i, name))
		}
		out = append(out, t)
	}
	*dst = out
	return nil
}

// elementNode returns the i-th element of a sequence node for error positions
func elementNode(n *yaml.Node, i int) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if i < len(n.Content) {
		return n.Content[i]
	}
	return n
}

func formatError(n *yaml.Node, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeInvalidFormat).
		WithOperation(decodeOperation).
		WithDetail("line", n.Line).
		WithDetail("column", n.Column)
}

func wrapFormatError(n *yaml.Node, err error) error {
	return mdwerror.Wrap(err, "invalid scalar").
		WithCode(mdwerror.CodeInvalidFormat).
		WithOperation(decodeOperation).
		WithDetail("line", n.Line).
		WithDetail("column", n.Column)
}
