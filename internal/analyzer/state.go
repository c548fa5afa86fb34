package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SamyaDeb/AlgoMint/internal/model"
	"github.com/SamyaDeb/AlgoMint/internal/parse"
)

// storageConstructors maps recognised storage constructor names to the
// storage type they declare.
var storageConstructors = map[string]string{
	"GlobalState": model.StorageGlobal,
	"LocalState":  model.StorageLocal,
	"Box":         model.StorageBox,
	"BoxMap":      model.StorageBoxMap,
	"BoxRef":      model.StorageBoxRef,
}

// annotationKinds is checked against class-level annotations, most specific
// name first so BoxMap[...] is not classified as Box.
var annotationKinds = []struct {
	keyword string
	storage string
}{
	{"GlobalState", model.StorageGlobal},
	{"LocalState", model.StorageLocal},
	{"BoxMap", model.StorageBoxMap},
	{"BoxRef", model.StorageBoxRef},
	{"Box", model.StorageBox},
}

// directTypes maps primitive type constructors to the data type they imply.
// A direct assignment like self.count = UInt64(0) stores in global state.
var directTypes = map[string]string{
	"UInt64":       "UInt64",
	"Bytes":        "Bytes",
	"Account":      "Account",
	"Bool":         "Bool",
	"String":       "String",
	"BigUInt":      "BigUInt",
	"arc4.UInt64":  "arc4.UInt64",
	"arc4.Bool":    "arc4.Bool",
	"arc4.String":  "arc4.String",
	"arc4.Address": "arc4.Address",
	"arc4.Byte":    "arc4.Byte",
}

// extractStateVariables walks the contract's __init__ assignments and its
// class-level annotated declarations, in source order. Repeated assignment
// to the same attribute overwrites the earlier record, matching how the
// Python runtime treats repeated attribute assignment.
func extractStateVariables(class *sitter.Node, source []byte) []model.StateVariable {
	vars := []model.StateVariable{}
	index := map[string]int{}

	add := func(v model.StateVariable) {
		if i, ok := index[v.Name]; ok {
			vars[i] = v
			return
		}
		index[v.Name] = len(vars)
		vars = append(vars, v)
	}

	body := class.ChildByFieldName("body")
	if body == nil {
		return vars
	}

	for _, stmt := range parse.NamedChildren(body) {
		if fn := functionNode(stmt); fn != nil {
			if functionName(fn, source) == "__init__" {
				extractInitAssignments(fn, source, add)
			}
			continue
		}
		extractAnnotatedDeclaration(stmt, source, add)
	}

	return vars
}

// extractInitAssignments records every top-level self.<name> = <value>
// statement in __init__ as a state variable. Assignments nested inside
// conditionals are conditional initialisation, not declarations, and are
// left to the behavior scanner.
func extractInitAssignments(fn *sitter.Node, source []byte, add func(model.StateVariable)) {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return
	}

	for _, stmt := range parse.NamedChildren(body) {
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}
		n := stmt.NamedChild(0)
		if n.Type() != "assignment" {
			continue
		}
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left == nil || right == nil {
			continue
		}
		name, ok := selfAttribute(left, source)
		if !ok {
			continue
		}

		if sv, ok := detectStorageCall(right, source); ok {
			sv.Name = name
			add(sv)
			continue
		}

		// Direct assignment of something unrecognised: keep it as state
		// rather than silently dropping it.
		add(model.StateVariable{
			Name:        name,
			StorageType: model.StorageUnknown,
			DataType:    parse.NodeText(right, source),
		})
	}
}

// extractAnnotatedDeclaration handles class-level declarations such as
// counter: GlobalState[UInt64]. The grammar represents these as an
// assignment with a type child and an optional right-hand side.
func extractAnnotatedDeclaration(stmt *sitter.Node, source []byte, add func(model.StateVariable)) {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != "assignment" {
		return
	}
	left := assign.ChildByFieldName("left")
	ann := assign.ChildByFieldName("type")
	if left == nil || ann == nil || left.Type() != "identifier" {
		return
	}

	annText := parse.NodeText(ann, source)
	for _, kind := range annotationKinds {
		if !strings.Contains(annText, kind.keyword) {
			continue
		}
		sv := model.StateVariable{
			Name:        parse.NodeText(left, source),
			StorageType: kind.storage,
			DataType:    annText,
		}
		if right := assign.ChildByFieldName("right"); right != nil {
			value := parse.NodeText(right, source)
			sv.DefaultValue = &value
		}
		add(sv)
		return
	}
}

// detectStorageCall classifies the right-hand side of a state assignment.
// GlobalState(UInt64, default=UInt64(0)) yields the declared storage type;
// a bare primitive constructor like UInt64(0) implies global storage with
// the call text as default.
func detectStorageCall(value *sitter.Node, source []byte) (model.StateVariable, bool) {
	if value.Type() != "call" {
		return model.StateVariable{}, false
	}

	callee := value.ChildByFieldName("function")
	if callee == nil {
		return model.StateVariable{}, false
	}
	funcName := parse.DottedName(callee, source)
	short := funcName
	if i := strings.LastIndex(funcName, "."); i >= 0 {
		short = funcName[i+1:]
	}

	if storage, ok := storageConstructors[short]; ok {
		sv := model.StateVariable{StorageType: storage, DataType: "Unknown"}
		args := value.ChildByFieldName("arguments")
		if args == nil {
			return sv, true
		}
		for _, arg := range parse.NamedChildren(args) {
			switch arg.Type() {
			case "comment":
			case "keyword_argument":
				name := arg.ChildByFieldName("name")
				val := arg.ChildByFieldName("value")
				if name != nil && val != nil && parse.NodeText(name, source) == "default" {
					text := parse.NodeText(val, source)
					sv.DefaultValue = &text
				}
			default:
				// First positional argument is the element type.
				if sv.DataType == "Unknown" {
					sv.DataType = parse.NodeText(arg, source)
				}
			}
		}
		return sv, true
	}

	dataType, ok := directTypes[funcName]
	if !ok {
		dataType, ok = directTypes[short]
	}
	if !ok {
		return model.StateVariable{}, false
	}

	sv := model.StateVariable{StorageType: model.StorageGlobal, DataType: dataType}
	if args := value.ChildByFieldName("arguments"); args != nil && hasPositionalArg(args) {
		text := parse.NodeText(value, source)
		sv.DefaultValue = &text
	}
	return sv, true
}

func hasPositionalArg(args *sitter.Node) bool {
	for _, arg := range parse.NamedChildren(args) {
		switch arg.Type() {
		case "keyword_argument", "comment":
		default:
			return true
		}
	}
	return false
}

// selfAttribute returns the attribute name when node is self.<name>.
func selfAttribute(node *sitter.Node, source []byte) (string, bool) {
	if node.Type() != "attribute" {
		return "", false
	}
	obj := node.ChildByFieldName("object")
	attr := node.ChildByFieldName("attribute")
	if obj == nil || attr == nil {
		return "", false
	}
	if obj.Type() != "identifier" || parse.NodeText(obj, source) != "self" {
		return "", false
	}
	return parse.NodeText(attr, source), true
}
