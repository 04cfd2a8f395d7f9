package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eljojo/riscpad/internal/asm"
	"github.com/eljojo/riscpad/internal/editor"
	"github.com/eljojo/riscpad/internal/pdf"
	"github.com/eljojo/riscpad/internal/project"
)

// TestFullWorkflow tests the complete init -> load -> assemble -> save pipeline
func TestFullWorkflow(t *testing.T) {
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "test-workspace")

	// Step 1: Create workspace (simulating 'riscpad init')
	p, err := project.New(projectDir, "test-workspace")
	if err != nil {
		t.Fatalf("creating workspace: %v", err)
	}
	data := project.TemplateData{ProjectName: p.Name, Created: p.Created}
	if err := project.WriteSource(p.SourcePath(), data); err != nil {
		t.Fatalf("writing starter program: %v", err)
	}

	// Step 2: Load the starter program
	ctrl := editor.NewController(asm.New(), editor.WithLoadPolicy(p.Policy()))
	if got := ctrl.Snapshot().Input; got != editor.DefaultSource {
		t.Fatalf("initial input: got %q", got)
	}

	task, err := ctrl.Load(context.Background(), editor.OSFile(p.SourcePath()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := task.Wait(); err != nil {
		t.Fatalf("loading %s: %v", task.Name(), err)
	}
	if !strings.Contains(ctrl.Snapshot().Input, "test-workspace") {
		t.Error("loaded input should be the rendered template")
	}

	// Step 3: Assemble
	if !ctrl.Assemble() {
		t.Fatalf("assembling starter program: %s", ctrl.Snapshot().Output)
	}
	st := ctrl.Snapshot()
	lines := strings.Split(strings.TrimSuffix(st.Output, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("listing lines: got %d, want 7", len(lines))
	}
	// The loop's branch jumps back two words.
	if want := "Addr 05: "; !strings.HasPrefix(lines[5], want) {
		t.Errorf("line 5: got %q", lines[5])
	}
	if !strings.HasSuffix(lines[5], "(0x8FFFFFF8)") {
		t.Errorf("bgt loop: got %q", lines[5])
	}

	// Step 4: Save into the workspace
	path, err := p.WriteExport(ctrl.Save())
	if err != nil {
		t.Fatalf("saving: %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != st.Input {
		t.Error("saved file should equal the input surface")
	}

	reloaded, err := project.Load(projectDir)
	if err != nil {
		t.Fatalf("reloading workspace: %v", err)
	}
	if len(reloaded.Saved) != 1 {
		t.Fatalf("saved records: got %d", len(reloaded.Saved))
	}
	sum, err := reloaded.CheckSaved(reloaded.Saved[0])
	if err != nil {
		t.Fatal(err)
	}
	if sum != reloaded.Saved[0].Checksum {
		t.Errorf("recorded checksum %s does not match file %s", reloaded.Saved[0].Checksum, sum)
	}

	// Step 5: Print the listing
	words, err := asm.Assemble(st.Input)
	if err != nil {
		t.Fatal(err)
	}
	if got := editor.FormatListing(words); got != st.Output {
		t.Error("package-level Assemble should match the editor output")
	}
	pdfBytes, err := pdf.GenerateListing(pdf.ListingData{
		SourceName: filepath.Base(p.SourcePath()),
		Source:     st.Input,
		Words:      words,
		Checksum:   project.Checksum([]byte(st.Input)),
		Version:    "test",
		Created:    time.Now(),
		Language:   p.Language,
	})
	if err != nil {
		t.Fatalf("GenerateListing: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		t.Error("listing is not a PDF")
	}
}

// TestErrorDoesNotLeaveListing assembles a good program, then a bad one.
func TestErrorDoesNotLeaveListing(t *testing.T) {
	ctrl := editor.NewController(asm.New())
	if !ctrl.Assemble() {
		t.Fatalf("default program: %s", ctrl.Snapshot().Output)
	}

	ctrl.SetInput("mov r1, #1\nb nowhere\n")
	if ctrl.Assemble() {
		t.Fatal("expected failure")
	}
	out := ctrl.Snapshot().Output
	if out != "Assembly Error: line 2: Undefined label: nowhere" {
		t.Errorf("output: got %q", out)
	}
}

// TestLoadFailureKeepsSurfaces checks a failed load against a real file system.
func TestLoadFailureKeepsSurfaces(t *testing.T) {
	ctrl := editor.NewController(asm.New(), editor.WithInput("nop"))
	ctrl.Assemble()
	before := ctrl.Snapshot()

	task, err := ctrl.Load(context.Background(), editor.OSFile(filepath.Join(t.TempDir(), "gone.asm")))
	if err != nil {
		t.Fatal(err)
	}
	if err := task.Wait(); err == nil {
		t.Fatal("expected load error")
	}

	after := ctrl.Snapshot()
	if after.Input != before.Input || after.Output != before.Output {
		t.Errorf("surfaces changed: before %+v after %+v", before, after)
	}
	if !strings.HasPrefix(after.Status, "Load Error: gone.asm: ") {
		t.Errorf("status: got %q", after.Status)
	}
}
