package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"subgen/internal/services"
)

const (
	// SubtitleExt is the extension of every published subtitle.
	SubtitleExt = ".srt"
	// tempSuffix distinguishes the intermediate waveform from real inputs.
	tempSuffix = "_temp.wav"
	// wavExt marks inputs that are already waveforms and skip normalization.
	wavExt = ".wav"
)

// Task is one unit of work: a discovered input file plus its derived
// temporary and destination paths. Tasks are independent of each other.
type Task struct {
	// Source is the absolute input file path.
	Source string
	// Rel is the path relative to the input root; it preserves the
	// directory structure under the output root.
	Rel string
	// Dest is the mirrored destination subtitle path.
	Dest string
	// TempWAV is the task-owned intermediate waveform path. Derived from
	// the task's own stem, so tasks never collide.
	TempWAV string
	// ReuseSource marks waveform inputs that are fed to the engine
	// directly, bypassing normalization. Such a source is never deleted.
	ReuseSource bool
}

// NewTask derives the destination and temporary paths for a source file.
func NewTask(inputRoot, outputRoot, source string) (Task, error) {
	rel, err := filepath.Rel(inputRoot, source)
	if err != nil {
		return Task{}, fmt.Errorf("relativize %q: %w", source, err)
	}
	ext := strings.ToLower(filepath.Ext(source))
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	destDir := filepath.Join(outputRoot, filepath.Dir(rel))
	return Task{
		Source:      source,
		Rel:         rel,
		Dest:        filepath.Join(destDir, stem+SubtitleExt),
		TempWAV:     filepath.Join(destDir, stem+tempSuffix),
		ReuseSource: ext == wavExt,
	}, nil
}

// Discover enumerates every regular file under inputRoot whose extension is
// in the qualifying set (lowercase, dot-prefixed; see config.ExtensionSet)
// and whose mirrored subtitle does not yet exist. The result is materialized
// so the total is known up front; traversal order is filesystem-dependent.
func Discover(inputRoot, outputRoot string, qualifying map[string]struct{}) ([]Task, error) {
	info, err := os.Stat(inputRoot)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(
			services.ErrMissingDependency,
			"discovery", "scan",
			fmt.Sprintf("input directory %q not found", inputRoot),
			err,
		)
	}

	var tasks []Task
	walkErr := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := qualifying[ext]; !ok {
			return nil
		}
		task, err := NewTask(inputRoot, outputRoot, path)
		if err != nil {
			return err
		}
		// Dedup skip: an existing destination is the completion signal.
		if _, err := os.Stat(task.Dest); err == nil {
			return nil
		}
		tasks = append(tasks, task)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk input tree: %w", walkErr)
	}
	return tasks, nil
}
