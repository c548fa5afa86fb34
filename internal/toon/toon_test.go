package toon

import (
	"strings"
	"testing"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

func sampleAnalysis() *model.ContractAnalysis {
	def := "UInt64(0)"
	a := model.NewContractAnalysis("Counter")
	a.StateVariables = []model.StateVariable{
		{Name: "count", StorageType: model.StorageGlobal, DataType: "UInt64", DefaultValue: &def},
	}
	a.Methods = []model.Method{
		{
			Name:        "increment",
			Decorator:   model.DecoratorABIMethod,
			ReadsState:  []string{"count"},
			WritesState: []string{"count"},
			LineNumber:  8,
		},
	}
	a.StorageAccessMap = []model.StorageAccess{
		{Method: "increment", Variable: "count", AccessType: model.AccessRead},
		{Method: "increment", Variable: "count", AccessType: model.AccessWrite},
	}
	a.SecurityNotes = []model.SecurityNote{
		{Type: model.NoteWarning, Method: "increment", Message: "Method 'increment' has no assertion guards - consider adding sender/state checks."},
	}
	return a
}

func TestEncode(t *testing.T) {
	t.Parallel()
	out := Encode(sampleAnalysis())

	if !strings.HasPrefix(out, "contract: Counter\n") {
		t.Errorf("output starts with %q", out[:min(len(out), 40)])
	}
	if !strings.Contains(out, "state_variables[1]{name,storage,type,default}:") {
		t.Error("missing state_variables header")
	}
	if !strings.Contains(out, "\n  count,GlobalState,UInt64,UInt64(0)") {
		t.Errorf("missing state variable row:\n%s", out)
	}
	if !strings.Contains(out, "methods[1]{name,decorator,line,guards,readonly,reads,writes}:") {
		t.Error("missing methods header")
	}
	if !strings.Contains(out, "storage_access[2]{method,variable,access}:") {
		t.Error("missing storage_access header")
	}
	if !strings.Contains(out, "security_notes[1]{type,method,message}:") {
		t.Error("missing security_notes header")
	}

	// No errors: the errors table is omitted entirely.
	if strings.Contains(out, "errors[") {
		t.Error("unexpected errors table")
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	a := model.NewContractAnalysis("Unknown")
	a.Errors = []string{"Syntax error: invalid syntax at line 1, column 14"}

	out := Encode(a)
	if !strings.Contains(out, "errors[1]{message}:") {
		t.Errorf("missing errors table:\n%s", out)
	}
	if !strings.Contains(out, `"Syntax error: invalid syntax at line 1, column 14"`) {
		t.Errorf("error message should be quoted (contains a colon):\n%s", out)
	}
}

func TestEncodeMulti(t *testing.T) {
	t.Parallel()
	ma := &model.MultiContractAnalysis{
		Contracts: []*model.ContractAnalysis{
			model.NewContractAnalysis("Vault"),
			model.NewContractAnalysis("Caller"),
		},
		InterContractEdges: []model.InterContractEdge{
			{FromContract: "Caller", ToContract: "Vault", RelationshipType: model.RelApplicationCall, ViaMethod: "forward"},
		},
		DeploymentOrder: []string{"Vault", "Caller"},
	}

	out := EncodeMulti(ma)
	if !strings.Contains(out, "contract: Vault") || !strings.Contains(out, "contract: Caller") {
		t.Error("missing per-contract sections")
	}
	if !strings.Contains(out, "inter_contract_edges[1]{from,to,relationship,via}:") {
		t.Error("missing edges header")
	}
	if !strings.Contains(out, "\n  Caller,Vault,ApplicationCall,forward") {
		t.Errorf("missing edge row:\n%s", out)
	}
	if !strings.Contains(out, "deployment_order: Vault Caller") {
		t.Errorf("missing deployment order:\n%s", out)
	}
}

func TestEncodeValue(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":            `""`,
		"plain":       "plain",
		"42":          "42",
		"-3":          "-3",
		"-flag":       `"-flag"`,
		"true":        `"true"`,
		"a,b":         `"a,b"`,
		"x: y":        `"x: y"`,
		"tab\there":   `"tab\there"`,
		` padded `:    `" padded "`,
		`quo"te`:      `"quo\"te"`,
		"UInt64(0)":   "UInt64(0)",
		"BoxMap[a,b]": `"BoxMap[a,b]"`,
	}
	for in, want := range tests {
		if got := encodeValue(in); got != want {
			t.Errorf("encodeValue(%q) = %q, want %q", in, got, want)
		}
	}
}
