// Package model defines the contract analysis data model.
//
// JSON field names match the payload consumed by the AlgoMint visual
// explorer, so the encoded output of an analysis can be fed to it directly.
package model

// Storage types recognised by the state-variable extractor.
const (
	StorageGlobal  = "GlobalState"
	StorageLocal   = "LocalState"
	StorageBox     = "Box"
	StorageBoxMap  = "BoxMap"
	StorageBoxRef  = "BoxRef"
	StorageUnknown = "Unknown"
)

// Decorator classifications for contract members.
const (
	DecoratorABIMethod  = "abimethod"
	DecoratorBareMethod = "baremethod"
	DecoratorSubroutine = "subroutine"
	DecoratorHelper     = "helper"
)

// Access types for storage-access edges.
const (
	AccessRead  = "read"
	AccessWrite = "write"
)

// Severities for security notes.
const (
	NoteInfo    = "info"
	NoteSafe    = "safe"
	NoteWarning = "warning"
	NoteDanger  = "danger"
)

// Inter-contract relationship types.
const (
	RelReferences      = "references"
	RelApplicationCall = "ApplicationCall"
)

// StateVariable is a persisted contract field discovered in __init__ or in a
// class-level annotated declaration.
type StateVariable struct {
	Name         string  `json:"name"`
	StorageType  string  `json:"storage_type"`
	DataType     string  `json:"data_type"`
	DefaultValue *string `json:"default_value"`
}

// Param is a single method parameter.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method describes one callable contract member (ABI method, bare method,
// subroutine, or undecorated helper) together with the facts the behavior
// scanner collected from its body.
type Method struct {
	Name           string   `json:"name"`
	Decorator      string   `json:"decorator"`
	Params         []Param  `json:"params"`
	ReturnType     string   `json:"return_type"`
	IsReadonly     bool     `json:"is_readonly"`
	IsCreate       bool     `json:"is_create"`
	AllowedActions []string `json:"allowed_actions"`
	ReadsState     []string `json:"reads_state"`
	WritesState    []string `json:"writes_state"`
	CallsMethods   []string `json:"calls_methods"`
	InnerTxns      []string `json:"inner_txns"`
	EmitsEvents    []string `json:"emits_events"`
	GuardsCount    int      `json:"guards_count"`
	LineNumber     int      `json:"line_number"`

	// Populated by the ARC-32 cross-referencer when an app spec is supplied.
	ABISignature string `json:"abi_signature,omitempty"`
	Description  string `json:"description,omitempty"`
}

// CallEdge is an intra-contract call graph edge. To always names a known
// member of the same contract.
type CallEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StorageAccess records that a member reads or writes a state variable.
type StorageAccess struct {
	Method     string `json:"method"`
	Variable   string `json:"variable"`
	AccessType string `json:"access_type"`
}

// InnerTxn records that a member issues an inner transaction of some type.
type InnerTxn struct {
	Method  string `json:"method"`
	TxnType string `json:"txn_type"`
}

// Event is an ARC-4 event together with the members that emit it.
type Event struct {
	Name      string   `json:"name"`
	EmittedBy []string `json:"emitted_by"`
}

// SecurityNote is an advisory observation produced by the heuristics pass.
// Method is empty for contract-wide notes.
type SecurityNote struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
}

// ConceptMapping links a Solidity construct to its Algorand equivalent in the
// converted code.
type ConceptMapping struct {
	SolidityElement string `json:"solidity_element"`
	AlgorandElement string `json:"algorand_element"`
	MappingType     string `json:"mapping_type"`
}

// ContractAnalysis is the complete analysis of one contract. All list fields
// are non-nil so the JSON encoding always carries explicit empty arrays.
// Errors is non-empty only when analysis degraded (syntax error, no contract
// class); the structural lists are then empty.
type ContractAnalysis struct {
	ContractName     string           `json:"contract_name"`
	StateVariables   []StateVariable  `json:"state_variables"`
	Methods          []Method         `json:"methods"`
	Subroutines      []Method         `json:"subroutines"`
	CallGraph        []CallEdge       `json:"call_graph"`
	StorageAccessMap []StorageAccess  `json:"storage_access_map"`
	InnerTxnMap      []InnerTxn       `json:"inner_txn_map"`
	Events           []Event          `json:"events"`
	SecurityNotes    []SecurityNote   `json:"security_notes"`
	SolidityMapping  []ConceptMapping `json:"solidity_mapping"`
	Errors           []string         `json:"errors"`
}

// NewContractAnalysis returns an analysis with every list initialised empty.
func NewContractAnalysis(name string) *ContractAnalysis {
	return &ContractAnalysis{
		ContractName:     name,
		StateVariables:   []StateVariable{},
		Methods:          []Method{},
		Subroutines:      []Method{},
		CallGraph:        []CallEdge{},
		StorageAccessMap: []StorageAccess{},
		InnerTxnMap:      []InnerTxn{},
		Events:           []Event{},
		SecurityNotes:    []SecurityNote{},
		SolidityMapping:  []ConceptMapping{},
		Errors:           []string{},
	}
}

// InterContractEdge records a relationship between two analysed contracts.
type InterContractEdge struct {
	FromContract     string `json:"from_contract"`
	ToContract       string `json:"to_contract"`
	RelationshipType string `json:"relationship_type"`
	ViaMethod        string `json:"via_method,omitempty"`
}

// MultiContractAnalysis aggregates per-contract analyses with the inferred
// relationships between them and a dependency-respecting deployment order.
type MultiContractAnalysis struct {
	Contracts          []*ContractAnalysis `json:"contracts"`
	InterContractEdges []InterContractEdge `json:"inter_contract_edges"`
	DeploymentOrder    []string            `json:"deployment_order"`
}
