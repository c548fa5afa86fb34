package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

// The concept-mapping table links constructs found in the original Solidity
// source to their Algorand equivalents in the converted code. It is driven
// by fixed lookup rules over the Solidity text, conditioned where relevant
// on what the algopy code actually uses.

var (
	solMappingRe  = regexp.MustCompile(`mapping\s*\(([^)]+)\)`)
	solStateVarRe = regexp.MustCompile(`\b(uint\d*|int\d*|bool|string|address|bytes\d*)\s+(?:public\s+|private\s+|internal\s+)?(\w+)\s*[;=]`)
	solEventRe    = regexp.MustCompile(`\bevent\s+(\w+)`)
	solModifierRe = regexp.MustCompile(`\bmodifier\s+(\w+)`)
	solPublicRe   = regexp.MustCompile(`\b(public|external)\b`)
	solInternalRe = regexp.MustCompile(`\b(internal|private)\s+function\b`)
)

func solidityMapping(solidityCode, algopyCode string) []model.ConceptMapping {
	mappings := []model.ConceptMapping{}

	add := func(sol, algo, kind string) {
		mappings = append(mappings, model.ConceptMapping{
			SolidityElement: sol,
			AlgorandElement: algo,
			MappingType:     kind,
		})
	}

	// Keyed collections: mapping(...) lands in BoxMap when the converter
	// used one, otherwise global state.
	for _, m := range solMappingRe.FindAllString(solidityCode, -1) {
		if strings.Contains(algopyCode, "BoxMap") {
			add(m, "BoxMap(...)", "storage")
		} else {
			add(m, "GlobalState(...)", "storage")
		}
	}

	for _, m := range solStateVarRe.FindAllStringSubmatch(solidityCode, -1) {
		solType, solName := m[1], m[2]
		add(fmt.Sprintf("%s %s", solType, solName),
			fmt.Sprintf("GlobalState(%s)", algopyTypeFor(solType)), "storage")
	}

	if strings.Contains(solidityCode, "msg.sender") {
		add("msg.sender", "Txn.sender", "context")
	}
	if strings.Contains(solidityCode, "require(") {
		add("require(...)", "assert ...", "control_flow")
	}

	for _, m := range solEventRe.FindAllStringSubmatch(solidityCode, -1) {
		add(fmt.Sprintf("event %s", m[1]), fmt.Sprintf("arc4.emit(%s(...))", m[1]), "event")
	}

	for _, m := range solModifierRe.FindAllStringSubmatch(solidityCode, -1) {
		add(fmt.Sprintf("modifier %s", m[1]), fmt.Sprintf("@subroutine %s()", m[1]), "access_control")
	}

	if strings.Contains(solidityCode, "payable") {
		add("payable", "itxn.Payment / PaymentTxn", "payment")
	}
	if strings.Contains(solidityCode, "constructor") {
		add("constructor(...)", "@arc4.baremethod(create='require')", "lifecycle")
	}
	if solPublicRe.MatchString(solidityCode) {
		add("public / external function", "@arc4.abimethod", "visibility")
	}
	if solInternalRe.MatchString(solidityCode) {
		add("internal / private function", "@subroutine", "visibility")
	}
	if strings.Contains(solidityCode, "block.timestamp") {
		add("block.timestamp", "Global.latest_timestamp", "context")
	}
	if strings.Contains(solidityCode, "msg.value") {
		add("msg.value", "PaymentTxn.amount (grouped txn)", "context")
	}

	return mappings
}

// algopyTypeFor picks the algopy storage element type for a Solidity
// state-variable type.
func algopyTypeFor(solType string) string {
	switch {
	case strings.Contains(solType, "uint") || strings.Contains(solType, "int"):
		return "UInt64"
	case strings.Contains(solType, "bytes"):
		return "Bytes"
	case solType == "bool":
		return "arc4.Bool"
	case solType == "string":
		return "arc4.String"
	case solType == "address":
		return "Account"
	}
	return solType
}
