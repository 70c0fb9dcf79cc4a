package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subgen/internal/services"
)

var testExtensions = map[string]struct{}{
	".mp4": {},
	".wav": {},
	".mkv": {},
}

func writeInput(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestDiscoverFiltersAndMirrors(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeInput(t, inputRoot, filepath.Join("lectures", "week1", "lec.mp4"))
	writeInput(t, inputRoot, "talk.MP4") // mixed case still qualifies
	writeInput(t, inputRoot, "notes.txt")

	tasks, err := Discover(inputRoot, outputRoot, testExtensions)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d: %+v", len(tasks), tasks)
	}

	byRel := make(map[string]Task, len(tasks))
	for _, task := range tasks {
		byRel[task.Rel] = task
	}
	lec, ok := byRel[filepath.Join("lectures", "week1", "lec.mp4")]
	if !ok {
		t.Fatalf("nested lecture not discovered: %v", byRel)
	}
	wantDest := filepath.Join(outputRoot, "lectures", "week1", "lec.srt")
	if lec.Dest != wantDest {
		t.Fatalf("dest %q, want %q", lec.Dest, wantDest)
	}
	wantTemp := filepath.Join(outputRoot, "lectures", "week1", "lec_temp.wav")
	if lec.TempWAV != wantTemp {
		t.Fatalf("temp %q, want %q", lec.TempWAV, wantTemp)
	}
	if lec.ReuseSource {
		t.Fatal("mp4 input must not reuse source")
	}
	if _, ok := byRel["talk.MP4"]; !ok {
		t.Fatal("mixed-case extension not discovered")
	}
}

func TestDiscoverSkipsExistingDestinations(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeInput(t, inputRoot, "done.mp4")
	writeInput(t, inputRoot, "pending.mp4")

	existing := filepath.Join(outputRoot, "done.srt")
	if err := os.WriteFile(existing, []byte("subtitle"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}

	tasks, err := Discover(inputRoot, outputRoot, testExtensions)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Rel != "pending.mp4" {
		t.Fatalf("expected only pending.mp4, got %+v", tasks)
	}

	// Running again without changing the output tree is idempotent.
	again, err := Discover(inputRoot, outputRoot, testExtensions)
	if err != nil {
		t.Fatalf("second Discover returned error: %v", err)
	}
	if len(again) != 1 || again[0].Rel != tasks[0].Rel {
		t.Fatalf("expected identical second scan, got %+v", again)
	}
}

func TestDiscoverMarksWaveformReuse(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeInput(t, inputRoot, "recorded.wav")

	tasks, err := Discover(inputRoot, outputRoot, testExtensions)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if !tasks[0].ReuseSource {
		t.Fatal("wav input should bypass normalization")
	}
}

func TestDiscoverMissingInputRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), t.TempDir(), testExtensions)
	if err == nil {
		t.Fatal("expected error for missing input root")
	}
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency marker, got %v", err)
	}
}
