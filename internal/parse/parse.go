// Package parse wraps the tree-sitter Python grammar for the algopy dialect.
//
// It turns raw contract source into a syntax tree, reports structured syntax
// errors, and provides the node helpers shared by the analyzer passes:
// text extraction, dotted-name resolution, and a restricted literal
// evaluator for decorator arguments.
package parse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SyntaxError reports the position of the first malformed construct found in
// the source. Positions are 1-based.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax at line %d, column %d", e.Line, e.Column)
}

// NewParser creates a fresh parser for the algopy dialect.
// Each goroutine must use its own parser (not thread-safe).
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return p
}

// Parse parses algopy source into a syntax tree. If the tree contains any
// ERROR or missing node the tree is discarded and a *SyntaxError is returned,
// so a malformed contract never reaches the extraction passes. The caller
// owns the returned tree and must Close it.
func Parse(source []byte) (*sitter.Tree, error) {
	p := NewParser()
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		serr := firstSyntaxError(root)
		tree.Close()
		return nil, serr
	}
	return tree, nil
}

// firstSyntaxError locates the first ERROR or missing node in document order.
func firstSyntaxError(root *sitter.Node) *SyntaxError {
	var found *sitter.Node
	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return true
		}
		if !n.HasError() {
			return false
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if walk(n.Child(i)) {
				return true
			}
		}
		return false
	}
	walk(root)

	if found == nil {
		found = root
	}
	return &SyntaxError{
		Line:   int(found.StartPoint().Row) + 1,
		Column: int(found.StartPoint().Column) + 1,
	}
}

// NodeText returns the source text of a node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Line returns the 1-based source line of a node.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// Walk visits node and every named descendant in document order.
func Walk(node *sitter.Node, fn func(*sitter.Node)) {
	fn(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		Walk(node.NamedChild(i), fn)
	}
}

// NamedChildren returns all named children of a node.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, node.NamedChild(i))
	}
	return out
}

// DottedName resolves a decorator or callee expression to its dotted name:
// identifier, attribute chains (algopy.arc4.abimethod), or the callee of a
// call. Anything else falls back to its source text.
func DottedName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "identifier":
		return NodeText(node, source)
	case "attribute":
		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		if obj != nil && attr != nil {
			return DottedName(obj, source) + "." + NodeText(attr, source)
		}
	case "call":
		if fn := node.ChildByFieldName("function"); fn != nil {
			return DottedName(fn, source)
		}
	}
	return NodeText(node, source)
}

// Literal evaluates a restricted literal expression: booleans, None, numbers,
// strings, and lists/tuples/sets of literals. It never evaluates names,
// calls, or operators: analysis input is untrusted, so anything beyond a
// plain literal reports ok=false and the caller keeps the source text
// instead.
func Literal(node *sitter.Node, source []byte) (any, bool) {
	switch node.Type() {
	case "true":
		return true, true
	case "false":
		return false, true
	case "none":
		return nil, true
	case "integer":
		text := strings.ReplaceAll(NodeText(node, source), "_", "")
		if v, err := strconv.ParseInt(text, 0, 64); err == nil {
			return v, true
		}
		return nil, false
	case "float":
		text := strings.ReplaceAll(NodeText(node, source), "_", "")
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v, true
		}
		return nil, false
	case "string":
		return stringLiteral(node, source), true
	case "list", "tuple", "set":
		items := make([]any, 0, node.NamedChildCount())
		for _, child := range NamedChildren(node) {
			if child.Type() == "comment" {
				continue
			}
			v, ok := Literal(child, source)
			if !ok {
				return nil, false
			}
			items = append(items, v)
		}
		return items, true
	case "parenthesized_expression":
		if node.NamedChildCount() == 1 {
			return Literal(node.NamedChild(0), source)
		}
	}
	return nil, false
}

// stringLiteral returns the unquoted content of a string node.
func stringLiteral(node *sitter.Node, source []byte) string {
	var parts []string
	for _, child := range NamedChildren(node) {
		if child.Type() == "string_content" {
			parts = append(parts, NodeText(child, source))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "")
	}
	return trimQuotes(NodeText(node, source))
}

func trimQuotes(s string) string {
	// Skip prefix letters (r, b, f, u) before the opening quote.
	start := 0
	for start < len(s) && s[start] != '\'' && s[start] != '"' {
		start++
	}
	s = s[start:]
	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
