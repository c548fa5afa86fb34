// Package toon implements TOON (Token-Oriented Object Notation) encoding of
// analysis results, a compact tabular form for terminals and LLM context.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a contract analysis into TOON format.
func Encode(a *model.ContractAnalysis) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("contract: %s", encodeValue(a.ContractName)))

	var varRows [][]string
	for i := range a.StateVariables {
		sv := &a.StateVariables[i]
		def := ""
		if sv.DefaultValue != nil {
			def = *sv.DefaultValue
		}
		varRows = append(varRows, []string{sv.Name, sv.StorageType, sv.DataType, def})
	}
	parts = append(parts, formatTabular("state_variables", []string{"name", "storage", "type", "default"}, varRows))

	parts = append(parts, formatTabular("methods", methodColumns, methodRows(a.Methods)))
	parts = append(parts, formatTabular("subroutines", methodColumns, methodRows(a.Subroutines)))

	var callRows [][]string
	for _, e := range a.CallGraph {
		callRows = append(callRows, []string{e.From, e.To})
	}
	parts = append(parts, formatTabular("calls", []string{"from", "to"}, callRows))

	var accessRows [][]string
	for _, e := range a.StorageAccessMap {
		accessRows = append(accessRows, []string{e.Method, e.Variable, e.AccessType})
	}
	parts = append(parts, formatTabular("storage_access", []string{"method", "variable", "access"}, accessRows))

	var txnRows [][]string
	for _, e := range a.InnerTxnMap {
		txnRows = append(txnRows, []string{e.Method, e.TxnType})
	}
	parts = append(parts, formatTabular("inner_txns", []string{"method", "type"}, txnRows))

	var eventRows [][]string
	for _, ev := range a.Events {
		eventRows = append(eventRows, []string{ev.Name, strings.Join(ev.EmittedBy, " ")})
	}
	parts = append(parts, formatTabular("events", []string{"name", "emitted_by"}, eventRows))

	var noteRows [][]string
	for _, n := range a.SecurityNotes {
		noteRows = append(noteRows, []string{n.Type, n.Method, n.Message})
	}
	parts = append(parts, formatTabular("security_notes", []string{"type", "method", "message"}, noteRows))

	if len(a.Errors) > 0 {
		var errRows [][]string
		for _, e := range a.Errors {
			errRows = append(errRows, []string{e})
		}
		parts = append(parts, formatTabular("errors", []string{"message"}, errRows))
	}

	return strings.Join(parts, "\n")
}

// EncodeMulti converts a multi-contract analysis into TOON format: each
// contract's tables followed by the relationship and deployment sections.
func EncodeMulti(ma *model.MultiContractAnalysis) string {
	var parts []string

	for _, a := range ma.Contracts {
		parts = append(parts, Encode(a))
	}

	var edgeRows [][]string
	for _, e := range ma.InterContractEdges {
		edgeRows = append(edgeRows, []string{e.FromContract, e.ToContract, e.RelationshipType, e.ViaMethod})
	}
	parts = append(parts, formatTabular("inter_contract_edges", []string{"from", "to", "relationship", "via"}, edgeRows))

	parts = append(parts, fmt.Sprintf("deployment_order: %s", encodeValue(strings.Join(ma.DeploymentOrder, " "))))

	return strings.Join(parts, "\n")
}

var methodColumns = []string{"name", "decorator", "line", "guards", "readonly", "reads", "writes"}

func methodRows(methods []model.Method) [][]string {
	var rows [][]string
	for i := range methods {
		m := &methods[i]
		rows = append(rows, []string{
			m.Name,
			m.Decorator,
			fmt.Sprintf("%d", m.LineNumber),
			fmt.Sprintf("%d", m.GuardsCount),
			fmt.Sprintf("%t", m.IsReadonly),
			strings.Join(m.ReadsState, " "),
			strings.Join(m.WritesState, " "),
		})
	}
	return rows
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
