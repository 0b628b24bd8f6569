package integrity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMonitor_DetectsChanges(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	keep := write("keep.yaml", "a: 1\n")
	modify := write("modify.yaml", "b: 2\n")
	remove := write("remove.yaml", "c: 3\n")

	m := NewMonitor(dir, ".yaml")
	if err := m.BuildBaseline(); err != nil {
		t.Fatal(err)
	}

	// Clean tree: no findings.
	findings, err := m.Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(findings) != 0 {
		t.Fatalf("findings = %v, want none", findings)
	}

	write("modify.yaml", "b: changed\n")
	write("new.yaml", "d: 4\n")
	if err := os.Remove(remove); err != nil {
		t.Fatal(err)
	}

	findings, err = m.Check()
	if err != nil {
		t.Fatal(err)
	}
	byPath := map[string]string{}
	for _, f := range findings {
		byPath[f.Path] = f.Status
	}
	if byPath[modify] != StatusModified {
		t.Errorf("modify.yaml status = %q, want MODIFIED", byPath[modify])
	}
	if byPath[filepath.Join(dir, "new.yaml")] != StatusNewFile {
		t.Errorf("new.yaml status = %q, want NEW_FILE", byPath[filepath.Join(dir, "new.yaml")])
	}
	if byPath[remove] != StatusDeleted {
		t.Errorf("remove.yaml status = %q, want DELETED", byPath[remove])
	}
	if _, flagged := byPath[keep]; flagged {
		t.Errorf("keep.yaml flagged: %v", byPath[keep])
	}
}

func TestMonitor_SuffixFilter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewMonitor(dir, ".yaml")
	if err := m.BuildBaseline(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "also-ignored.txt"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	findings, err := m.Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none for non-matching suffixes", findings)
	}
}
