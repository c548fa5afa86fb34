package analyzer

import (
	"fmt"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

// securityNotes runs the rule-based heuristics over the classified methods.
// Notes are advisory: they never block or alter the rest of the analysis.
func securityNotes(methods []model.Method) []model.SecurityNote {
	notes := []model.SecurityNote{}

	for _, m := range methods {
		if m.GuardsCount == 0 && !m.IsReadonly {
			notes = append(notes, model.SecurityNote{
				Type:    model.NoteWarning,
				Message: fmt.Sprintf("Method '%s' has no assertion guards - consider adding sender/state checks.", m.Name),
				Method:  m.Name,
			})
		}
	}

	// An unguarded method issuing inner transactions escalates the warning.
	for _, m := range methods {
		if len(m.InnerTxns) > 0 && m.GuardsCount == 0 {
			notes = append(notes, model.SecurityNote{
				Type:    model.NoteDanger,
				Message: fmt.Sprintf("Method '%s' makes inner transactions without any assertion guards!", m.Name),
				Method:  m.Name,
			})
		}
	}

	var stateChanging, guarded int
	for _, m := range methods {
		if m.IsReadonly {
			continue
		}
		stateChanging++
		if m.GuardsCount > 0 {
			guarded++
		}
	}
	if stateChanging > 0 && guarded == stateChanging {
		notes = append(notes, model.SecurityNote{
			Type:    model.NoteSafe,
			Message: "All state-changing methods have assertion guards.",
		})
	}

	hasCreate := false
	for _, m := range methods {
		if m.IsCreate {
			hasCreate = true
			break
		}
	}
	if !hasCreate {
		notes = append(notes, model.SecurityNote{
			Type:    model.NoteInfo,
			Message: "No explicit create method found - contract may use a bare 'create' method.",
		})
	}

	return notes
}
