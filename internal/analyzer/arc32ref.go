package analyzer

import (
	"fmt"
	"strings"

	"github.com/SamyaDeb/AlgoMint/internal/arc32"
	"github.com/SamyaDeb/AlgoMint/internal/model"
)

// applyAppSpec cross-references a compiler-produced ARC-32 app spec into the
// classified methods, matched by name. A matched method gains the canonical
// ABI selector signature and, when present, the spec description. Methods
// without a spec entry are left untouched; a missing spec is not an error.
func applyAppSpec(methods []model.Method, spec *arc32.AppSpec) {
	byName := map[string]arc32.Method{}
	for _, sm := range spec.AllMethods() {
		if sm.Name != "" {
			byName[sm.Name] = sm
		}
	}

	for i := range methods {
		sm, ok := byName[methods[i].Name]
		if !ok {
			continue
		}

		argTypes := make([]string, len(sm.Args))
		for j, a := range sm.Args {
			argTypes[j] = a.Type
			if a.Type == "" {
				argTypes[j] = "?"
			}
		}
		ret := sm.Returns.Type
		if ret == "" {
			ret = "void"
		}
		methods[i].ABISignature = fmt.Sprintf("%s(%s)%s", sm.Name, strings.Join(argTypes, ","), ret)
		if sm.Desc != "" {
			methods[i].Description = sm.Desc
		}
	}
}
