package arc32

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

const generator = "AlgoMint v1.0.0"

// algopyToARC4 maps algopy type expressions to ARC-4 ABI types. The AVM is
// 64-bit natively, so wider integers stay uint64 except BigUInt.
var algopyToARC4 = map[string]string{
	"UInt64":            "uint64",
	"arc4.UInt64":       "uint64",
	"arc4.UInt8":        "uint8",
	"arc4.UInt16":       "uint16",
	"arc4.UInt32":       "uint32",
	"BigUInt":           "uint512",
	"arc4.UInt512":      "uint512",
	"Bool":              "bool",
	"arc4.Bool":         "bool",
	"String":            "string",
	"arc4.String":       "string",
	"Account":           "address",
	"arc4.Address":      "address",
	"Bytes":             "byte[]",
	"arc4.DynamicBytes": "byte[]",
	"arc4.Byte":         "byte",
	"Asset":             "asset",
	"Application":       "application",
	"None":              "void",
}

var arrayAnnotationRe = regexp.MustCompile(`^arc4\.DynamicArray\[(.+)\]$`)

// ABIType maps an algopy type expression to its ARC-4 ABI type, falling
// back to byte[] for anything unrecognised.
func ABIType(algopyType string) string {
	t := strings.TrimSpace(algopyType)
	if mapped, ok := algopyToARC4[t]; ok {
		return mapped
	}
	if m := arrayAnnotationRe.FindStringSubmatch(t); m != nil {
		return ABIType(m[1]) + "[]"
	}
	return "byte[]"
}

// Generate builds an ARC-32 application spec from a completed analysis.
// Creation methods come first; bare methods and subroutines have no ABI
// selector and are excluded. The compiled-source and network sections are
// left empty for the compiler to fill in.
func Generate(a *model.ContractAnalysis) *AppSpec {
	warnings := []string{}

	methods := []Method{}
	for _, m := range a.Methods {
		if m.Decorator != model.DecoratorABIMethod {
			continue
		}
		sm := Method{
			Name:     m.Name,
			Args:     make([]Arg, 0, len(m.Params)),
			Returns:  Returns{Type: ABIType(m.ReturnType)},
			Desc:     m.Description,
			Readonly: m.IsReadonly,
		}
		for _, p := range m.Params {
			sm.Args = append(sm.Args, Arg{Name: p.Name, Type: ABIType(p.Type)})
		}
		if sm.Desc == "" {
			kind := "function"
			if m.IsReadonly {
				kind = "view function"
			}
			sm.Desc = fmt.Sprintf("Generated from algopy %s %s", kind, m.Name)
		}
		if m.IsCreate {
			methods = append([]Method{sm}, methods...)
		} else {
			methods = append(methods, sm)
		}
	}

	state := &State{}
	for _, sv := range a.StateVariables {
		switch sv.StorageType {
		case model.StorageGlobal:
			countSlot(&state.Global, sv.DataType)
		case model.StorageLocal:
			countSlot(&state.Local, sv.DataType)
		case model.StorageBoxMap:
			warnings = append(warnings, fmt.Sprintf("State variable '%s' uses BoxMap - not directly ABI-callable", sv.Name))
		case model.StorageUnknown:
			warnings = append(warnings, fmt.Sprintf("State variable '%s' has an unrecognised storage type", sv.Name))
		}
	}

	eventNames := make([]string, 0, len(a.Events))
	for _, ev := range a.Events {
		eventNames = append(eventNames, ev.Name)
	}

	readonly := 0
	for _, m := range methods {
		if m.Readonly {
			readonly++
		}
	}

	return &AppSpec{
		Name:     a.ContractName,
		Desc:     fmt.Sprintf("ARC-32 application spec for %s - auto-generated by AlgoMint", a.ContractName),
		Methods:  methods,
		Networks: map[string]any{},
		Source:   &Source{},
		State:    state,
		Contract: &Contract{
			Name:    a.ContractName,
			Desc:    "Generated by AlgoMint",
			Methods: methods,
		},
		Metadata: &Metadata{
			TotalMethods:    len(methods),
			ReadonlyMethods: readonly,
			Events:          eventNames,
			Warnings:        warnings,
			Generator:       generator,
		},
	}
}

// countSlot tallies a storage slot as a uint or byte slice per the AVM
// state schema rules.
func countSlot(schema *StateSchema, dataType string) {
	switch ABIType(dataType) {
	case "uint8", "uint16", "uint32", "uint64", "bool":
		schema.NumUints++
	default:
		schema.NumByteSlices++
	}
}
