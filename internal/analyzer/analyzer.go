// Package analyzer reconstructs the architecture of an Algorand Python
// (algopy) contract: state variables, ABI methods, subroutines, call graph,
// storage access, inner transactions, events, and heuristic security notes.
//
// Analysis is best-effort over untrusted source. It never panics past its
// boundary: a malformed contract yields a degraded result with the failure
// recorded in Errors and all structural lists empty, so an interactive
// caller keeps working while the user types invalid intermediate code.
package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SamyaDeb/AlgoMint/internal/arc32"
	"github.com/SamyaDeb/AlgoMint/internal/graph"
	"github.com/SamyaDeb/AlgoMint/internal/model"
	"github.com/SamyaDeb/AlgoMint/internal/parse"
)

// Options carries the optional inputs for a single-contract analysis.
type Options struct {
	// AppSpec is an ARC-32 application spec produced by the Puya compiler.
	// When present, matching ABI methods gain a signature and description.
	AppSpec *arc32.AppSpec

	// SolidityCode is the original pre-conversion Solidity source. When
	// present, the result includes a Solidity-to-Algorand concept mapping.
	SolidityCode string
}

// contractBases marks a class as a contract when its superclass list
// mentions one of these names.
var contractBases = []string{"ARC4Contract", "Contract", "ARC4Client"}

// Analyze analyses one algopy contract. It is pure and synchronous: the
// result depends only on the arguments, and concurrent calls need no
// coordination.
func Analyze(source string, opts Options) *model.ContractAnalysis {
	result := model.NewContractAnalysis("Unknown")
	src := []byte(source)

	tree, err := parse.Parse(src)
	if err != nil {
		result.Errors = append(result.Errors, "Syntax error: "+err.Error())
		return result
	}
	defer tree.Close()

	class := findContractClass(tree.RootNode(), src)
	if class == nil {
		result.Errors = append(result.Errors, "No contract class found in the code.")
		return result
	}

	if name := class.ChildByFieldName("name"); name != nil {
		result.ContractName = parse.NodeText(name, src)
	}

	result.StateVariables = extractStateVariables(class, src)

	varNames := make([]string, len(result.StateVariables))
	for i, sv := range result.StateVariables {
		varNames[i] = sv.Name
	}

	result.Methods, result.Subroutines = extractMembers(class, src, varNames)

	members := make([]model.Method, 0, len(result.Methods)+len(result.Subroutines))
	members = append(members, result.Methods...)
	members = append(members, result.Subroutines...)

	result.CallGraph = graph.BuildCallGraph(members)
	result.StorageAccessMap = graph.BuildStorageAccessMap(members, varNames)
	result.InnerTxnMap = graph.BuildInnerTxnMap(members)
	result.Events = graph.BuildEvents(members)

	if opts.AppSpec != nil {
		applyAppSpec(result.Methods, opts.AppSpec)
	}

	result.SecurityNotes = securityNotes(result.Methods)

	if opts.SolidityCode != "" {
		result.SolidityMapping = solidityMapping(opts.SolidityCode, source)
	}

	return result
}

// findContractClass returns the primary contract class: the first class in
// source order whose superclass list names a known contract base, falling
// back to the first class of any kind.
func findContractClass(root *sitter.Node, source []byte) *sitter.Node {
	var first, matched *sitter.Node
	parse.Walk(root, func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}
		if first == nil {
			first = n
		}
		if matched != nil {
			return
		}
		supers := n.ChildByFieldName("superclasses")
		if supers == nil {
			return
		}
		bases := parse.NodeText(supers, source)
		for _, kw := range contractBases {
			if strings.Contains(bases, kw) {
				matched = n
				return
			}
		}
	})

	if matched != nil {
		return matched
	}
	return first
}

// functionNode unwraps a class-body statement to the function it defines,
// looking through decorated_definition. Returns nil for non-functions.
func functionNode(stmt *sitter.Node) *sitter.Node {
	switch stmt.Type() {
	case "function_definition":
		return stmt
	case "decorated_definition":
		def := stmt.ChildByFieldName("definition")
		if def != nil && def.Type() == "function_definition" {
			return def
		}
	}
	return nil
}

// functionName returns the declared name of a function_definition.
func functionName(fn *sitter.Node, source []byte) string {
	if name := fn.ChildByFieldName("name"); name != nil {
		return parse.NodeText(name, source)
	}
	return ""
}
