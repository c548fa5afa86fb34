// Package arc32 models ARC-32 application specs: decoding the JSON the Puya
// compiler emits, and generating a spec from a completed contract analysis.
//
// References:
//   - ARC-4:  https://github.com/algorandfoundation/ARCs/blob/main/ARCs/arc-0004.md
//   - ARC-32: https://github.com/algorandfoundation/ARCs/blob/main/ARCs/arc-0032.md
package arc32

import (
	"encoding/json"
	"fmt"
)

// Arg is one ABI method argument.
type Arg struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Returns is an ABI method return descriptor.
type Returns struct {
	Type string `json:"type"`
}

// Method is one ARC-4 method descriptor.
type Method struct {
	Name     string  `json:"name"`
	Args     []Arg   `json:"args"`
	Returns  Returns `json:"returns"`
	Desc     string  `json:"desc,omitempty"`
	Readonly bool    `json:"readonly,omitempty"`
}

// Contract is the nested contract section some toolchains emit instead of a
// top-level methods list.
type Contract struct {
	Name    string   `json:"name"`
	Desc    string   `json:"desc,omitempty"`
	Methods []Method `json:"methods"`
}

// StateSchema counts one scope's storage slots.
type StateSchema struct {
	NumUints      int `json:"num_uints"`
	NumByteSlices int `json:"num_byte_slices"`
}

// State is the global/local schema block of an app spec.
type State struct {
	Global StateSchema `json:"global"`
	Local  StateSchema `json:"local"`
}

// Source carries compiled TEAL, when present.
type Source struct {
	Approval string `json:"approval"`
	Clear    string `json:"clear"`
}

// Metadata is the non-standard informational block AlgoMint attaches to
// generated specs.
type Metadata struct {
	TotalMethods    int      `json:"total_methods"`
	ReadonlyMethods int      `json:"readonly_methods"`
	Events          []string `json:"events"`
	Warnings        []string `json:"warnings"`
	Generator       string   `json:"generator"`
}

// AppSpec is an ARC-32 application.json document.
type AppSpec struct {
	Name     string         `json:"name"`
	Desc     string         `json:"desc,omitempty"`
	Methods  []Method       `json:"methods"`
	Networks map[string]any `json:"networks"`
	Source   *Source        `json:"source,omitempty"`
	State    *State         `json:"state,omitempty"`
	Contract *Contract      `json:"contract,omitempty"`
	Metadata *Metadata      `json:"algomint_metadata,omitempty"`
}

// Decode parses an ARC-32 application spec.
func Decode(data []byte) (*AppSpec, error) {
	var spec AppSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decoding app spec: %w", err)
	}
	return &spec, nil
}

// AllMethods returns the spec's method descriptors, looking under the
// nested contract section when the top-level list is empty.
func (s *AppSpec) AllMethods() []Method {
	if len(s.Methods) > 0 {
		return s.Methods
	}
	if s.Contract != nil {
		return s.Contract.Methods
	}
	return nil
}
