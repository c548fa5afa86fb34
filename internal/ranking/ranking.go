// Package ranking computes the deployment order for a set of analysed
// contracts.
package ranking

import (
	"sort"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

// DeploymentOrder sorts contracts so that referenced contracts deploy
// before the contracts that reference them: every edge increments its
// source contract's dependency count, and contracts are ordered by
// ascending count, stable on input order for ties.
//
// This is a weight-based approximation, not a topological sort. A genuine
// reference cycle still yields some total order, with no validity
// guarantee.
func DeploymentOrder(names []string, edges []model.InterContractEdge) []string {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] = 0
	}

	for _, e := range edges {
		if _, ok := counts[e.ToContract]; !ok {
			continue
		}
		if _, ok := counts[e.FromContract]; ok {
			counts[e.FromContract]++
		}
	}

	order := make([]string, len(names))
	copy(order, names)
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] < counts[order[j]]
	})
	return order
}
