package parse

import (
	"errors"
	"regexp"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func mustParse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	tree, err := Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree
}

func findNode(root *sitter.Node, nodeType string) *sitter.Node {
	var found *sitter.Node
	Walk(root, func(n *sitter.Node) {
		if found == nil && n.Type() == nodeType {
			found = n
		}
	})
	return found
}

func TestParseValid(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "class Counter:\n    pass\n")
	if tree.RootNode().Type() != "module" {
		t.Errorf("root type = %q, want module", tree.RootNode().Type())
	}
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("def broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if serr.Line < 1 || serr.Column < 1 {
		t.Errorf("position = %d:%d, want 1-based", serr.Line, serr.Column)
	}

	msgRe := regexp.MustCompile(`^invalid syntax at line \d+, column \d+$`)
	if !msgRe.MatchString(err.Error()) {
		t.Errorf("message = %q", err.Error())
	}
}

func TestParseUnbalancedParens(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("class C:\n    def f(self:\n        pass\n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestDottedName(t *testing.T) {
	t.Parallel()
	source := "algopy.arc4.abimethod(readonly=True)\n"
	tree := mustParse(t, source)

	call := findNode(tree.RootNode(), "call")
	if call == nil {
		t.Fatal("no call node found")
	}
	if got := DottedName(call, []byte(source)); got != "algopy.arc4.abimethod" {
		t.Errorf("DottedName = %q", got)
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source   string
		nodeType string
		want     any
	}{
		{"x = True\n", "true", true},
		{"x = False\n", "false", false},
		{"x = None\n", "none", nil},
		{"x = 42\n", "integer", int64(42)},
		{"x = 1_000\n", "integer", int64(1000)},
		{"x = 2.5\n", "float", 2.5},
		{`x = "hello"` + "\n", "string", "hello"},
		{"x = 'NoOp'\n", "string", "NoOp"},
	}

	for _, tt := range tests {
		tree := mustParse(t, tt.source)
		node := findNode(tree.RootNode(), tt.nodeType)
		if node == nil {
			t.Errorf("%s: no %s node", tt.source, tt.nodeType)
			continue
		}
		got, ok := Literal(node, []byte(tt.source))
		if !ok {
			t.Errorf("%s: Literal not ok", tt.source)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Literal = %v (%T), want %v (%T)", tt.source, got, got, tt.want, tt.want)
		}
	}
}

func TestLiteralList(t *testing.T) {
	t.Parallel()
	source := `x = ["NoOp", "OptIn"]` + "\n"
	tree := mustParse(t, source)

	list := findNode(tree.RootNode(), "list")
	if list == nil {
		t.Fatal("no list node")
	}
	got, ok := Literal(list, []byte(source))
	if !ok {
		t.Fatal("Literal not ok")
	}
	items, ok := got.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("Literal = %#v", got)
	}
	if items[0] != "NoOp" || items[1] != "OptIn" {
		t.Errorf("items = %#v", items)
	}
}

func TestLiteralRejectsNames(t *testing.T) {
	t.Parallel()
	source := "x = some_name\n"
	tree := mustParse(t, source)

	ident := findNode(tree.RootNode(), "assignment").ChildByFieldName("right")
	if _, ok := Literal(ident, []byte(source)); ok {
		t.Error("Literal should reject identifier expressions")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	if got := CollapseWhitespace("  arc4.DynamicArray[\n    arc4.UInt64\n  ]  "); got != "arc4.DynamicArray[ arc4.UInt64 ]" {
		t.Errorf("CollapseWhitespace = %q", got)
	}
}

func TestLine(t *testing.T) {
	t.Parallel()
	source := "x = 1\ny = 2\n"
	tree := mustParse(t, source)

	root := tree.RootNode()
	if root.NamedChildCount() < 2 {
		t.Fatalf("expected 2 statements, got %d", root.NamedChildCount())
	}
	if got := Line(root.NamedChild(1)); got != 2 {
		t.Errorf("Line = %d, want 2", got)
	}
}
