package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "contracts/token.py", "class Token(ARC4Contract):\n    pass\n")
	writeFile(t, dir, "specs/token.json", "{}")
	path := writeFile(t, dir, "algomint.yaml", `contracts:
  - name: Token
    source: contracts/token.py
    app_spec: specs/token.json
  - source: contracts/vault.py
    solidity: vault.sol
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Contracts) != 2 {
		t.Fatalf("contracts = %+v", m.Contracts)
	}

	token := m.Contracts[0]
	if token.Name != "Token" {
		t.Errorf("name = %q", token.Name)
	}
	if token.Source != filepath.Join(dir, "contracts", "token.py") {
		t.Errorf("source = %q", token.Source)
	}
	if token.AppSpec != filepath.Join(dir, "specs", "token.json") {
		t.Errorf("app_spec = %q", token.AppSpec)
	}

	// Unnamed entries stay unnamed so the class name can take over.
	vault := m.Contracts[1]
	if vault.Name != "" {
		t.Errorf("name = %q, want empty", vault.Name)
	}
	if vault.Solidity != filepath.Join(dir, "vault.sol") {
		t.Errorf("solidity = %q", vault.Solidity)
	}
}

func TestLoadAbsolutePathsKept(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "token.py")
	path := writeFile(t, dir, "algomint.yaml", "contracts:\n  - source: "+abs+"\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Contracts[0].Source != abs {
		t.Errorf("source = %q", m.Contracts[0].Source)
	}
}

func TestLoadNoContracts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "algomint.yaml", "contracts: []\n")

	if _, err := Load(path); err == nil {
		t.Error("expected an error")
	}
}

func TestLoadMissingSource(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "algomint.yaml", "contracts:\n  - name: Token\n")

	if _, err := Load(path); err == nil {
		t.Error("expected an error")
	}
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "algomint.yaml", "contracts: [broken\n")

	if _, err := Load(path); err == nil {
		t.Error("expected an error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error")
	}
}
