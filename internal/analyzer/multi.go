package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/SamyaDeb/AlgoMint/internal/arc32"
	"github.com/SamyaDeb/AlgoMint/internal/model"
	"github.com/SamyaDeb/AlgoMint/internal/ranking"
)

// MaxContracts bounds a multi-contract request. Enforced by callers, not by
// AnalyzeMulti itself.
const MaxContracts = 20

// ContractInput is one contract in a multi-contract analysis request.
type ContractInput struct {
	Name         string
	Source       string
	AppSpec      *arc32.AppSpec
	SolidityCode string
}

// AnalyzeMulti runs the single-contract pipeline once per input, then infers
// inter-contract relationships and a deployment order over the aggregate.
// Sub-analyses are independent and run concurrently; results keep input
// order, so the output is deterministic.
func AnalyzeMulti(inputs []ContractInput) *model.MultiContractAnalysis {
	analyses := make([]*model.ContractAnalysis, len(inputs))

	var g errgroup.Group
	for i, c := range inputs {
		i, c := i, c
		g.Go(func() error {
			res := Analyze(c.Source, Options{AppSpec: c.AppSpec, SolidityCode: c.SolidityCode})
			if c.Name != "" {
				res.ContractName = c.Name
			}
			analyses[i] = res
			return nil
		})
	}
	_ = g.Wait() // sub-analyses never fail; degradation lives in Errors

	names := make([]string, len(analyses))
	for i, a := range analyses {
		names[i] = a.ContractName
	}

	edges := detectRelationships(inputs, analyses, names)

	return &model.MultiContractAnalysis{
		Contracts:          analyses,
		InterContractEdges: edges,
		DeploymentOrder:    ranking.DeploymentOrder(names, edges),
	}
}

// detectRelationships tests every ordered contract pair with three
// strategies, stopping at the first that matches:
//
//  1. the other contract's declared name appears verbatim in the source;
//  2. a naming-convention variant (token, my_token, token_app_id, ...)
//     appears in the source, strengthened to ApplicationCall when a member
//     both issues an app call and touches matching state;
//  3. an app-calling ABI method has a parameter named after the other
//     contract.
func detectRelationships(inputs []ContractInput, analyses []*model.ContractAnalysis, names []string) []model.InterContractEdge {
	edges := []model.InterContractEdge{}

	variants := make(map[string][]string, len(names))
	for _, name := range names {
		variants[name] = nameVariants(name)
	}

	for i, analysis := range analyses {
		code := inputs[i].Source
		codeLower := strings.ToLower(code)

		members := make([]model.Method, 0, len(analysis.Methods)+len(analysis.Subroutines))
		members = append(members, analysis.Methods...)
		members = append(members, analysis.Subroutines...)

		for j, other := range names {
			if i == j {
				continue
			}

			if strings.Contains(code, other) {
				rel := model.RelReferences
				if strings.Contains(code, "itxn.ApplicationCall") {
					rel = model.RelApplicationCall
				}
				edges = append(edges, model.InterContractEdge{
					FromContract:     analysis.ContractName,
					ToContract:       other,
					RelationshipType: rel,
				})
				continue
			}

			if edge, ok := matchByNamingConvention(analysis.ContractName, other, codeLower, variants[other], members); ok {
				edges = append(edges, edge)
				continue
			}

			if edge, ok := matchByParamName(analysis.ContractName, other, variants[other], analysis.Methods); ok {
				edges = append(edges, edge)
			}
		}
	}

	return edges
}

// matchByNamingConvention looks for a name variant of other in the source,
// e.g. self.token_app_id for a contract named Token.
func matchByNamingConvention(from, other, codeLower string, variants []string, members []model.Method) (model.InterContractEdge, bool) {
	for _, variant := range variants {
		if !strings.Contains(codeLower, variant) {
			continue
		}

		edge := model.InterContractEdge{
			FromContract:     from,
			ToContract:       other,
			RelationshipType: model.RelReferences,
		}

		// Strongest evidence: a member issues an app call and accesses a
		// state variable whose name contains the matched variant.
	search:
		for _, m := range members {
			if !containsString(m.InnerTxns, "ApplicationCall") {
				continue
			}
			accessed := append(append([]string{}, m.ReadsState...), m.WritesState...)
			for _, sv := range accessed {
				if strings.Contains(strings.ToLower(sv), variant) {
					edge.RelationshipType = model.RelApplicationCall
					edge.ViaMethod = m.Name
					break search
				}
			}
		}

		// Weaker: any member issuing an app call at all.
		if edge.RelationshipType != model.RelApplicationCall {
			for _, m := range members {
				if containsString(m.InnerTxns, "ApplicationCall") {
					edge.RelationshipType = model.RelApplicationCall
					edge.ViaMethod = m.Name
					break
				}
			}
		}

		return edge, true
	}
	return model.InterContractEdge{}, false
}

// matchByParamName looks for an app-calling ABI method whose parameter name
// contains a variant of the other contract's name (e.g. token_app_id).
func matchByParamName(from, other string, variants []string, methods []model.Method) (model.InterContractEdge, bool) {
	for _, m := range methods {
		if !containsString(m.InnerTxns, "ApplicationCall") {
			continue
		}
		for _, p := range m.Params {
			pName := strings.ToLower(p.Name)
			for _, variant := range variants {
				if strings.Contains(pName, variant) {
					return model.InterContractEdge{
						FromContract:     from,
						ToContract:       other,
						RelationshipType: model.RelApplicationCall,
						ViaMethod:        m.Name,
					}, true
				}
			}
		}
	}
	return model.InterContractEdge{}, false
}

// nameVariants derives the lookup variants for a contract name: lowercase
// and snake_case forms plus the app-id naming conventions. Order is fixed
// so the first matching variant is deterministic.
func nameVariants(name string) []string {
	lower := strings.ToLower(name)
	snake := toSnakeCase(name)

	candidates := []string{
		lower, snake,
		lower + "_app_id", snake + "_app_id",
		lower + "_app", snake + "_app",
		lower + "_id", snake + "_id",
	}

	variants := make([]string, 0, len(candidates))
	seen := map[string]struct{}{}
	for _, v := range candidates {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}
	return variants
}

// toSnakeCase converts CamelCase to snake_case: MyToken -> my_token.
func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(name[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
