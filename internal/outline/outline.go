// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     outline
// Description: Plain outline tree of an AST value and its text rendering
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package outline

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/astview/foundation/ast"
	mdwerror "github.com/msto63/astview/foundation/core/error"
	"github.com/msto63/astview/foundation/utils/stringx"
)

// Entry is one display unit: a leaf with text or a section with rows
type Entry struct {
	Label string
	Leaf  bool
	Kind  ast.Kind
	Rows  []Row
}

// Row is a keyed child of a section
type Row struct {
	Key   string
	Entry *Entry
}

// Build converts v into an outline using the same dispatch and labels as
// the HTML renderer
func Build(v interface{}) *Entry {
	kind := ast.Classify(v)

	switch kind {
	case ast.KindSequence:
		elems := ast.Elements(v)
		e := &Entry{Label: ast.SequenceLabel(len(elems)), Kind: kind, Rows: make([]Row, 0, len(elems))}
		for i, elem := range elems {
			e.Rows = append(e.Rows, Row{Key: strconv.Itoa(i), Entry: Build(elem)})
		}
		return e

	case ast.KindNode:
		n := v.(ast.Node)
		fields := n.Fields()
		e := &Entry{Label: ast.NodeLabel(n), Kind: kind, Rows: make([]Row, 0, len(fields))}
		for _, f := range fields {
			if ast.IsHidden(f.Name) {
				continue
			}
			e.Rows = append(e.Rows, Row{Key: f.Name, Entry: Build(f.Value)})
		}
		return e
	}

	return &Entry{Label: ast.LeafText(v), Leaf: true, Kind: kind}
}

// Count returns the number of sections and leaves below and including e
func Count(e *Entry) (sections, leaves int) {
	if e == nil {
		return 0, 0
	}
	if e.Leaf {
		return 0, 1
	}
	sections = 1
	for _, r := range e.Rows {
		s, l := Count(r.Entry)
		sections += s
		leaves += l
	}
	return sections, leaves
}

// Styles colors the text form
type Styles struct {
	Label lipgloss.Style
	Key   lipgloss.Style
	Leaf  lipgloss.Style
	Brace lipgloss.Style
}

// DefaultStyles returns the colored text styles
func DefaultStyles() *Styles {
	return &Styles{
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true),
		Key:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		Leaf:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC")),
		Brace: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// TextOptions controls Write
type TextOptions struct {
	// Styles colors labels, keys and leaves; nil writes plain text
	Styles *Styles
}

// Write writes the text form of e:
//
//	label {
//	  key: value
//	}
//
// Empty sections are written as "label {}".
func Write(w io.Writer, e *Entry, opts TextOptions) error {
	tw := &textWriter{w: w, styles: opts.Styles}
	tw.entry(e, 0)
	tw.write("\n")

	if tw.err != nil {
		return mdwerror.Wrap(tw.err, "failed to write outline").
			WithCode(mdwerror.CodeRenderFailed).
			WithOperation("outline.Write")
	}
	return nil
}

// Text returns the plain text form of v
func Text(v interface{}) string {
	var sb strings.Builder
	Write(&sb, Build(v), TextOptions{})
	return sb.String()
}

// textWriter keeps the first write error
type textWriter struct {
	w      io.Writer
	styles *Styles
	err    error
}

func (tw *textWriter) write(s string) {
	if tw.err != nil {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
}

func (tw *textWriter) styled(style func(*Styles) lipgloss.Style, s string) {
	if tw.styles != nil {
		s = style(tw.styles).Render(s)
	}
	tw.write(s)
}

func (tw *textWriter) entry(e *Entry, depth int) {
	if e == nil {
		tw.styled(leafStyle, "null")
		return
	}
	if e.Leaf {
		tw.styled(leafStyle, e.Label)
		return
	}

	tw.styled(labelStyle, e.Label)
	if len(e.Rows) == 0 {
		tw.styled(braceStyle, " {}")
		return
	}

	tw.styled(braceStyle, " {")
	for _, r := range e.Rows {
		tw.write("\n" + stringx.Indent(depth+1))
		tw.styled(keyStyle, r.Key+":")
		tw.write(" ")
		tw.entry(r.Entry, depth+1)
	}
	tw.write("\n" + stringx.Indent(depth))
	tw.styled(braceStyle, "}")
}

func labelStyle(s *Styles) lipgloss.Style { return s.Label }
func keyStyle(s *Styles) lipgloss.Style   { return s.Key }
func leafStyle(s *Styles) lipgloss.Style  { return s.Leaf }
func braceStyle(s *Styles) lipgloss.Style { return s.Brace }
