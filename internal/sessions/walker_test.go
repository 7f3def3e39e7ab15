package sessions

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSessionFixture writes a two-line session log spanning [start, end].
// Padding keeps the file above the minimum size threshold.
func writeSessionFixture(t *testing.T, path string, start, end time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	content := fmt.Sprintf(
		`{"type":"user","timestamp":%q,"message":{"role":"user","content":"hi"}}`+"\n"+
			`{"type":"assistant","timestamp":%q,"message":{"role":"assistant","content":"done"}}`+"\n",
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestDiscoverSessionFiles(t *testing.T) {
	root := t.TempDir()
	now := time.Now()

	projDir := filepath.Join(root, "-home-alice-projects-alpha")
	writeSessionFixture(t, filepath.Join(projDir, "s1.jsonl"), now.Add(-time.Hour), now)
	writeSessionFixture(t, filepath.Join(projDir, "s2.jsonl"), now.Add(-time.Hour), now)

	// Only *.jsonl files count.
	if err := os.WriteFile(filepath.Join(projDir, "notes.txt"), []byte("not a session"), 0644); err != nil {
		t.Fatal(err)
	}

	// Sub-agent transcripts under a session UUID directory.
	uuidDir := filepath.Join(projDir, "3f2a1b4c-5d6e-4f70-8a9b-0c1d2e3f4a5b")
	writeSessionFixture(t, filepath.Join(uuidDir, "subagents", "agent1.jsonl"), now.Add(-time.Hour), now)

	// A non-UUID subdirectory is ignored, even with the marker inside.
	writeSessionFixture(t, filepath.Join(projDir, "backup", "subagents", "stale.jsonl"), now.Add(-time.Hour), now)

	// Stray file at the root level is ignored.
	if err := os.WriteFile(filepath.Join(root, "stray.jsonl"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverSessionFiles(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var human, autonomous int
	for _, f := range files {
		if f.Project != "alpha" {
			t.Errorf("Project = %q, want %q", f.Project, "alpha")
		}
		if f.Size == 0 {
			t.Errorf("Size not populated for %s", f.Path)
		}
		if f.Autonomous {
			autonomous++
		} else {
			human++
		}
	}
	if human != 2 {
		t.Errorf("human files = %d, want 2", human)
	}
	if autonomous != 1 {
		t.Errorf("autonomous files = %d, want 1", autonomous)
	}
}

func TestDiscoverSessionFilesUnreadableRoot(t *testing.T) {
	if _, err := DiscoverSessionFiles(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("expected error for unreadable root")
	}
}

func TestScanEndToEnd(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	// Project "alpha": two direct one-hour sessions (2.0 human hours).
	alphaDir := filepath.Join(root, "-home-alice-projects-alpha")
	writeSessionFixture(t, filepath.Join(alphaDir, "s1.jsonl"), base, base.Add(time.Hour))
	writeSessionFixture(t, filepath.Join(alphaDir, "s2.jsonl"), base.Add(2*time.Hour), base.Add(3*time.Hour))

	// Project "beta": one three-hour sub-agent session (3.0 autonomous hours).
	betaSub := filepath.Join(root, "-home-alice-projects-beta",
		"a81bc81b-dead-4e5d-abff-90865d1e13b1", "subagents")
	writeSessionFixture(t, filepath.Join(betaSub, "agent.jsonl"), base, base.Add(3*time.Hour))

	rep, err := Scan(root, NewFilters(7, true, time.Now()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(rep.Projects))
	}

	top := rep.Projects[0]
	if top.Name != "beta" {
		t.Errorf("top project = %q, want %q", top.Name, "beta")
	}
	if top.HumanHours != 0 {
		t.Errorf("beta HumanHours = %v, want 0", top.HumanHours)
	}
	if math.Abs(top.AutonomousHours-3.0) > 1e-9 {
		t.Errorf("beta AutonomousHours = %v, want 3.0", top.AutonomousHours)
	}
	if top.TotalSessions() != 1 {
		t.Errorf("beta sessions = %d, want 1", top.TotalSessions())
	}

	second := rep.Projects[1]
	if second.Name != "alpha" {
		t.Errorf("second project = %q, want %q", second.Name, "alpha")
	}
	if math.Abs(second.HumanHours-2.0) > 1e-9 {
		t.Errorf("alpha HumanHours = %v, want 2.0", second.HumanHours)
	}

	grand := 0.0
	for _, p := range rep.Projects {
		grand += p.TotalHours()
	}
	if math.Abs(grand-5.0) > 1e-9 {
		t.Errorf("grand total = %v, want 5.0", grand)
	}
}

func TestScanMergesEncodedDirsWithSameDisplayName(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	// Both encodings normalize to "alpha" and must share one bucket.
	writeSessionFixture(t, filepath.Join(root, "-home-alice-projects-alpha", "s1.jsonl"), base, base.Add(time.Hour))
	writeSessionFixture(t, filepath.Join(root, "-home-bob-projects-alpha", "s1.jsonl"), base, base.Add(time.Hour))

	rep, err := Scan(root, NewFilters(7, true, time.Now()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Projects) != 1 {
		t.Fatalf("got %d projects, want 1 merged bucket", len(rep.Projects))
	}
	if math.Abs(rep.Projects[0].HumanHours-2.0) > 1e-9 {
		t.Errorf("merged HumanHours = %v, want 2.0", rep.Projects[0].HumanHours)
	}
}
