// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     render
// Description: TreeRenderer turning AST values into collapsible HTML trees
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/msto63/astview/foundation/ast"
	mdwerror "github.com/msto63/astview/foundation/core/error"
	"github.com/msto63/astview/foundation/utils/stringx"
	"github.com/msto63/astview/pkg/core/logging"
)

// Renderer converts AST values into HTML fragments. A Renderer tracks the
// current nesting depth and must not be shared between concurrent render
// passes; create one per pass.
type Renderer struct {
	logger *logging.Logger
	indent int
}

// New creates a renderer logging to logger. A nil logger discards output.
func New(logger *logging.Logger) *Renderer {
	return &Renderer{logger: logging.OrDiscard(logger)}
}

// Depth returns the current nesting depth
func (r *Renderer) Depth() int {
	return r.indent
}

// Indents returns the indentation text for the current depth
func (r *Renderer) Indents() string {
	return stringx.Indent(r.indent)
}

// Render converts v into a text node or an expandable <details> section.
// Sequences and nodes other than literals and variables become sections,
// everything else a text leaf.
func (r *Renderer) Render(v interface{}) *html.Node {
	kind := ast.Classify(v)
	r.logger.Debug("render node", "kind", kind.String(), "type", fmt.Sprintf("%T", v), "depth", r.indent)

	switch kind {
	case ast.KindSequence:
		return r.renderSequence(ast.Elements(v))
	case ast.KindNode:
		return r.renderNode(v.(ast.Node))
	case ast.KindInvalid:
		r.logger.Warn("unsupported value rendered as text", "type", fmt.Sprintf("%T", v),
			"code", mdwerror.CodeUnsupportedType.String())
	}

	return text(ast.LeafText(v))
}

// enter increments the depth and returns the matching exit
func (r *Renderer) enter() func() {
	r.indent++
	return func() { r.indent-- }
}

func (r *Renderer) renderSequence(elems []interface{}) *html.Node {
	defer r.enter()()

	details, table := section(ast.SequenceLabel(len(elems)))
	for i, elem := range elems {
		table.AppendChild(row(strconv.Itoa(i), r.Render(elem)))
	}
	return details
}

func (r *Renderer) renderNode(n ast.Node) *html.Node {
	defer r.enter()()

	label := ast.NodeLabel(n)
	details, table := section(label)

	rows := 0
	for _, f := range n.Fields() {
		if ast.IsHidden(f.Name) {
			continue
		}
		table.AppendChild(row(f.Name, r.Render(f.Value)))
		rows++
	}

	r.logger.Debug("render section", "label", label, "rows", rows, "depth", r.indent)
	return details
}

// section builds <details><summary>label</summary><table></table></details>
// and returns the details element and its table
func section(label string) (*html.Node, *html.Node) {
	details := element(atom.Details)
	summary := element(atom.Summary)
	summary.AppendChild(text(label))
	details.AppendChild(summary)

	table := element(atom.Table)
	details.AppendChild(table)
	return details, table
}

// row builds <tr><th>key</th><td>child</td></tr>
func row(key string, child *html.Node) *html.Node {
	tr := element(atom.Tr)

	th := element(atom.Th)
	th.AppendChild(text(key))
	tr.AppendChild(th)

	td := element(atom.Td)
	td.AppendChild(child)
	tr.AppendChild(td)

	return tr
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Stringify returns the display text of a primitive value
func Stringify(v interface{}) string {
	return ast.Stringify(v)
}

// RenderHTML renders v with a fresh renderer and writes the HTML fragment
func RenderHTML(w io.Writer, v interface{}, logger *logging.Logger) error {
	if err := html.Render(w, New(logger).Render(v)); err != nil {
		return mdwerror.Wrap(err, "failed to write HTML fragment").
			WithCode(mdwerror.CodeRenderFailed).
			WithOperation("render.RenderHTML")
	}
	return nil
}
