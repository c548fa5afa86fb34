// Package graph aggregates per-member behavior facts into the contract's
// derived views: call graph, storage-access map, inner-transaction map, and
// event list.
//
// Aggregation adds no new facts. Edges whose target does not resolve to a
// member or state variable discovered in the same analysis are dropped,
// never fabricated, so the views stay referentially consistent. All
// accumulation is local to the call: nothing is cached across analyses.
package graph

import "github.com/SamyaDeb/AlgoMint/internal/model"

// BuildCallGraph flattens the members' sibling calls into edges, keeping
// only callees that are themselves known members.
func BuildCallGraph(members []model.Method) []model.CallEdge {
	known := make(map[string]struct{}, len(members))
	for _, m := range members {
		known[m.Name] = struct{}{}
	}

	edges := []model.CallEdge{}
	for _, m := range members {
		for _, callee := range m.CallsMethods {
			if _, ok := known[callee]; !ok {
				continue
			}
			edges = append(edges, model.CallEdge{From: m.Name, To: callee})
		}
	}
	return edges
}

// BuildStorageAccessMap flattens each member's reads and writes into access
// edges, filtered to known state variables.
func BuildStorageAccessMap(members []model.Method, stateVars []string) []model.StorageAccess {
	known := make(map[string]struct{}, len(stateVars))
	for _, v := range stateVars {
		known[v] = struct{}{}
	}

	edges := []model.StorageAccess{}
	for _, m := range members {
		for _, v := range m.ReadsState {
			if _, ok := known[v]; !ok {
				continue
			}
			edges = append(edges, model.StorageAccess{Method: m.Name, Variable: v, AccessType: model.AccessRead})
		}
		for _, v := range m.WritesState {
			if _, ok := known[v]; !ok {
				continue
			}
			edges = append(edges, model.StorageAccess{Method: m.Name, Variable: v, AccessType: model.AccessWrite})
		}
	}
	return edges
}

// BuildInnerTxnMap flattens the inner-transaction types each member issues.
func BuildInnerTxnMap(members []model.Method) []model.InnerTxn {
	edges := []model.InnerTxn{}
	for _, m := range members {
		for _, txnType := range m.InnerTxns {
			edges = append(edges, model.InnerTxn{Method: m.Name, TxnType: txnType})
		}
	}
	return edges
}

// BuildEvents groups emitted events by name with their emitters, in
// first-emission order.
func BuildEvents(members []model.Method) []model.Event {
	events := []model.Event{}
	index := map[string]int{}

	for _, m := range members {
		for _, name := range m.EmitsEvents {
			i, ok := index[name]
			if !ok {
				i = len(events)
				index[name] = i
				events = append(events, model.Event{Name: name, EmittedBy: []string{}})
			}
			events[i].EmittedBy = append(events[i].EmittedBy, m.Name)
		}
	}
	return events
}
