package analyzer

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SamyaDeb/AlgoMint/internal/model"
	"github.com/SamyaDeb/AlgoMint/internal/parse"
)

// extractMembers classifies every callable member of the contract class
// (excluding __init__) and runs the behavior scanner over each body.
// Returns ABI/bare methods and subroutines (including undecorated helpers)
// separately, both in source order.
func extractMembers(class *sitter.Node, source []byte, stateVars []string) (methods, subroutines []model.Method) {
	methods = []model.Method{}
	subroutines = []model.Method{}

	body := class.ChildByFieldName("body")
	if body == nil {
		return methods, subroutines
	}

	matchers := compileAccessRules(stateVars)
	varSet := make(map[string]struct{}, len(stateVars))
	for _, v := range stateVars {
		varSet[v] = struct{}{}
	}

	for _, stmt := range parse.NamedChildren(body) {
		fn := functionNode(stmt)
		if fn == nil {
			continue
		}
		name := functionName(fn, source)
		if name == "" || name == "__init__" {
			continue
		}

		decNames, kwargs := decorators(stmt, source)

		isABI := anyContains(decNames, "abimethod")
		isBare := anyContains(decNames, "baremethod")
		isSubroutine := anyContains(decNames, "subroutine")

		entry := model.Method{
			Name:           name,
			Params:         extractParams(fn, source),
			ReturnType:     annotationText(fn.ChildByFieldName("return_type"), source),
			AllowedActions: []string{},
			LineNumber:     parse.Line(fn),
		}

		facts := scanBody(fn.ChildByFieldName("body"), source, matchers)
		entry.GuardsCount = facts.guards
		entry.ReadsState = facts.reads
		entry.WritesState = facts.writes
		entry.InnerTxns = facts.innerTxns
		entry.EmitsEvents = facts.events

		// Self-calls that name a state variable are storage access, not
		// method calls.
		entry.CallsMethods = []string{}
		for _, callee := range facts.calls {
			if _, isVar := varSet[callee]; isVar || callee == "__init__" {
				continue
			}
			entry.CallsMethods = append(entry.CallsMethods, callee)
		}

		switch {
		case isABI || isBare:
			entry.Decorator = model.DecoratorABIMethod
			if !isABI {
				entry.Decorator = model.DecoratorBareMethod
			}
			entry.IsReadonly = readonlyKwarg(kwargs)
			entry.IsCreate = createKwarg(kwargs)
			entry.AllowedActions = allowedActions(kwargs)
			methods = append(methods, entry)
		case isSubroutine:
			entry.Decorator = model.DecoratorSubroutine
			subroutines = append(subroutines, entry)
		default:
			// No recognised decorator: a private helper, not an error.
			entry.Decorator = model.DecoratorHelper
			subroutines = append(subroutines, entry)
		}
	}

	return methods, subroutines
}

// decorators collects the dotted names of every decorator on a member and
// merges their keyword arguments. Values come from the restricted literal
// evaluator; non-literal expressions are kept as source text rather than
// evaluated.
func decorators(stmt *sitter.Node, source []byte) ([]string, map[string]any) {
	var names []string
	kwargs := map[string]any{}

	if stmt.Type() != "decorated_definition" {
		return names, kwargs
	}

	for _, child := range parse.NamedChildren(stmt) {
		if child.Type() != "decorator" || child.NamedChildCount() == 0 {
			continue
		}
		expr := child.NamedChild(0)
		names = append(names, parse.DottedName(expr, source))

		if expr.Type() != "call" {
			continue
		}
		args := expr.ChildByFieldName("arguments")
		if args == nil {
			continue
		}
		for _, arg := range parse.NamedChildren(args) {
			if arg.Type() != "keyword_argument" {
				continue
			}
			name := arg.ChildByFieldName("name")
			value := arg.ChildByFieldName("value")
			if name == nil || value == nil {
				continue
			}
			if v, ok := parse.Literal(value, source); ok {
				kwargs[parse.NodeText(name, source)] = v
			} else {
				kwargs[parse.NodeText(name, source)] = parse.NodeText(value, source)
			}
		}
	}

	return names, kwargs
}

// extractParams returns the member's parameters, excluding the implicit
// self receiver. Unannotated parameters get type "None", mirroring how the
// explorer renders a missing annotation.
func extractParams(fn *sitter.Node, source []byte) []model.Param {
	out := []model.Param{}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return out
	}

	for _, p := range parse.NamedChildren(params) {
		var name, typ string
		switch p.Type() {
		case "identifier":
			name, typ = parse.NodeText(p, source), "None"
		case "typed_parameter":
			if p.NamedChildCount() == 0 || p.NamedChild(0).Type() != "identifier" {
				continue
			}
			name = parse.NodeText(p.NamedChild(0), source)
			typ = annotationText(p.ChildByFieldName("type"), source)
		case "default_parameter":
			name = annotationText(p.ChildByFieldName("name"), source)
			typ = "None"
		case "typed_default_parameter":
			name = annotationText(p.ChildByFieldName("name"), source)
			typ = annotationText(p.ChildByFieldName("type"), source)
		default:
			// *args / **kwargs and positional markers are not ABI-visible.
			continue
		}
		if name == "" || name == "None" || name == "self" {
			continue
		}
		out = append(out, model.Param{Name: name, Type: typ})
	}
	return out
}

// annotationText renders a type annotation node, or "None" when absent.
func annotationText(node *sitter.Node, source []byte) string {
	if node == nil {
		return "None"
	}
	return parse.CollapseWhitespace(parse.NodeText(node, source))
}

func anyContains(names []string, substr string) bool {
	for _, n := range names {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

// readonlyKwarg reports whether the decorator marks the method read-only,
// accepting both readonly= and read_only= spellings.
func readonlyKwarg(kwargs map[string]any) bool {
	v, ok := kwargs["readonly"]
	if !ok {
		v, ok = kwargs["read_only"]
	}
	if !ok {
		return false
	}
	return truthy(v)
}

// createKwarg reports whether the decorator requires creation, spelled
// either create=True or create="require".
func createKwarg(kwargs map[string]any) bool {
	switch v := kwargs["create"].(type) {
	case bool:
		return v
	case string:
		return v == "require"
	}
	return false
}

// allowedActions normalises the allow_actions kwarg to a string list.
func allowedActions(kwargs map[string]any) []string {
	out := []string{}
	switch v := kwargs["allow_actions"].(type) {
	case []any:
		for _, item := range v {
			out = append(out, stringify(item))
		}
	case string:
		out = append(out, v)
	}
	return out
}

// truthy mirrors Python truthiness for the literal values the evaluator
// can produce.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	}
	return true
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
