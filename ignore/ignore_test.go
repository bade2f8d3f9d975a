// ignore_test.go
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultWithNoPatternsAcceptsEverything(t *testing.T) {
	p, err := Default(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d := p.Test("anything/at/all", false); d != Accept {
		t.Fatalf("got %v, want Accept", d)
	}
}

func TestDefaultPrunesMatchingPatterns(t *testing.T) {
	p, err := Default(t.TempDir(), []string{"*.log", "build/"})
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d := p.Test("debug.log", false); d != Prune {
		t.Fatalf("debug.log: got %v, want Prune", d)
	}
	if d := p.Test("build/output.bin", false); d != Prune {
		t.Fatalf("build/output.bin: got %v, want Prune", d)
	}
	if d := p.Test("src/main.go", false); d != Accept {
		t.Fatalf("src/main.go: got %v, want Accept", d)
	}
}

func TestDefaultHonorsNegation(t *testing.T) {
	p, err := Default(t.TempDir(), []string{"*.log", "!keep.log"})
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d := p.Test("keep.log", false); d != Accept {
		t.Fatalf("keep.log: got %v, want Accept", d)
	}
	if d := p.Test("debug.log", false); d != Prune {
		t.Fatalf("debug.log: got %v, want Prune", d)
	}
}

func TestDefaultReadsXcpignoreAtRoot(t *testing.T) {
	root := t.TempDir()
	content := "# comment\n*.tmp\n\nbuild/\n"
	if err := os.WriteFile(filepath.Join(root, ignoreFile), []byte(content), 0644); err != nil {
		t.Fatalf("write .xcpignore: %v", err)
	}

	p, err := Default(root, nil)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d := p.Test("scratch.tmp", false); d != Prune {
		t.Fatalf("scratch.tmp: got %v, want Prune", d)
	}
	if d := p.Test("main.go", false); d != Accept {
		t.Fatalf("main.go: got %v, want Accept", d)
	}
}

func TestDefaultWithMissingXcpignoreIsFine(t *testing.T) {
	p, err := Default(t.TempDir(), []string{"*.log"})
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d := p.Test("x.log", false); d != Prune {
		t.Fatalf("x.log: got %v, want Prune", d)
	}
}
