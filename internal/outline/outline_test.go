package outline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/msto63/astview/foundation/ast"
	mdwerror "github.com/msto63/astview/foundation/core/error"
)

func ident(name string) ast.Token { return ast.NewToken(ast.TokenIdentifier, name, 1) }

func TestBuild_MatchesRendererLabels(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		label string
		leaf  bool
		rows  []string
	}{
		{"token", ident("foo"), "'foo'", true, nil},
		{"literal", &ast.Literal{Value: "hi"}, `ExprLiteral "hi"`, true, nil},
		{"variable", &ast.Variable{Name: ident("x")}, "ExprVariable 'x'", true, nil},
		{"primitive", 3, "3", true, nil},
		{"empty sequence", []ast.Node{}, "[0]", false, []string{}},
		{"sequence", []interface{}{1, "a"}, "[2]", false, []string{"0", "1"}},
		{"generic", &ast.Generic{Kind: "Binary", Entries: []ast.Field{
			{Name: "left", Value: 1}, {Name: "paren", Value: ")"}, {Name: "right", Value: 2},
		}}, "Binary", false, []string{"left", "right"}},
		{"untyped", &ast.Generic{}, ast.UntypedLabel, false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Build(tt.input)
			if e.Label != tt.label || e.Leaf != tt.leaf {
				t.Errorf("Build() = %q leaf=%v, want %q leaf=%v", e.Label, e.Leaf, tt.label, tt.leaf)
			}
			if tt.leaf {
				return
			}
			if len(e.Rows) != len(tt.rows) {
				t.Fatalf("rows = %d, want %d", len(e.Rows), len(tt.rows))
			}
			for i, key := range tt.rows {
				if e.Rows[i].Key != key {
					t.Errorf("row %d = %q, want %q", i, e.Rows[i].Key, key)
				}
			}
		})
	}
}

func TestWrite(t *testing.T) {
	tree := []ast.Node{
		&ast.Var{Name: ident("a"), Initializer: &ast.Literal{Value: 1}},
		&ast.Block{},
	}

	want := `[2] {
  0: StmtVar {
    name: 'a'
    initializer: ExprLiteral 1
  }
  1: StmtBlock {
    statements: [0] {}
  }
}
`
	if got := Text(tree); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_Leaf(t *testing.T) {
	if got := Text("x"); got != "\"x\"\n" {
		t.Errorf("Text(leaf) = %q", got)
	}
}

func TestWrite_Styled(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(&ast.Print{Expression: &ast.Literal{Value: true}}), TextOptions{Styles: DefaultStyles()}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, want := range []string{"StmtPrint", "expression:", "ExprLiteral true"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("styled output missing %q: %q", want, buf.String())
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_Error(t *testing.T) {
	err := Write(failingWriter{}, Build([]int{1}), TextOptions{})
	if !mdwerror.HasCode(err, mdwerror.CodeRenderFailed) {
		t.Errorf("Write() error = %v, want RENDER_FAILED", err)
	}
}

func TestCount(t *testing.T) {
	tree := Build([]ast.Node{
		&ast.Print{Expression: &ast.Binary{
			Left:     &ast.Literal{Value: 1},
			Operator: ast.NewToken(ast.TokenPlus, "+", 1),
			Right:    &ast.Variable{Name: ident("x")},
		}},
	})

	sections, leaves := Count(tree)
	if sections != 3 || leaves != 3 {
		t.Errorf("Count() = %d, %d, want 3, 3", sections, leaves)
	}
	if s, l := Count(nil); s != 0 || l != 0 {
		t.Errorf("Count(nil) = %d, %d", s, l)
	}
}
