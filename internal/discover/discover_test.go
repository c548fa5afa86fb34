package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func paths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestContracts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "token.py", "class Token: pass\n")
	writeFile(t, dir, "vault/vault.py", "class Vault: pass\n")
	writeFile(t, dir, "README.md", "docs\n")
	writeFile(t, dir, "test_token.py", "def test(): pass\n")
	writeFile(t, dir, "vault/vault_test.py", "def test(): pass\n")
	writeFile(t, dir, "conftest.py", "\n")
	writeFile(t, dir, "__pycache__/token.cpython-312.py", "\n")
	writeFile(t, dir, ".hidden/secret.py", "\n")

	entries, err := Contracts(dir)
	if err != nil {
		t.Fatalf("Contracts: %v", err)
	}

	want := []string{"token.py", filepath.Join("vault", "vault.py")}
	if !reflect.DeepEqual(paths(entries), want) {
		t.Errorf("entries = %v, want %v", paths(entries), want)
	}
}

func TestContractsGitignore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "token.py", "class Token: pass\n")
	writeFile(t, dir, "generated/out.py", "class Out: pass\n")

	entries, err := Contracts(dir)
	if err != nil {
		t.Fatalf("Contracts: %v", err)
	}
	if !reflect.DeepEqual(paths(entries), []string{"token.py"}) {
		t.Errorf("entries = %v", paths(entries))
	}
}

func TestContractsEmptyDir(t *testing.T) {
	t.Parallel()
	entries, err := Contracts(t.TempDir())
	if err != nil {
		t.Fatalf("Contracts: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v", paths(entries))
	}
}
