package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"subgen/internal/config"
	"subgen/internal/services"
)

// Requirement defines an external dependency subgen relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Resolved carries the paths fixed for the whole run. The whisper path is
// resolved exactly once here and reused by every task.
type Resolved struct {
	FFmpeg  string
	Whisper string
	Model   string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// ResolveWhisper locates the transcription engine. PATH lookup runs first;
// on failure the working directory is probed, trying the platform executable
// suffix variant before the bare name.
func ResolveWhisper(command string) Status {
	name := strings.TrimSpace(command)
	status := Status{
		Name:        "whisper.cpp",
		Command:     name,
		Description: "speech-to-text engine",
	}
	if name == "" {
		status.Detail = "command not configured"
		return status
	}
	if resolved, err := exec.LookPath(name); err == nil {
		status.Command = resolved
		status.Available = true
		return status
	}
	for _, candidate := range siblingCandidates(name) {
		info, err := os.Stat(candidate)
		if err != nil || !isExecutable(info) {
			continue
		}
		absolute, err := filepath.Abs(candidate)
		if err != nil {
			absolute = candidate
		}
		status.Command = absolute
		status.Available = true
		return status
	}
	status.Detail = fmt.Sprintf("binary %q not found on PATH or in the working directory", name)
	return status
}

// CheckModel verifies the model weights exist as a regular file.
func CheckModel(path string) Status {
	status := Status{
		Name:        "Model",
		Command:     path,
		Description: "transcription model weights",
	}
	if strings.TrimSpace(path) == "" {
		status.Detail = "model path not configured"
		return status
	}
	info, err := os.Stat(path)
	if err != nil {
		status.Detail = fmt.Sprintf("model file %q not found", path)
		return status
	}
	if !info.Mode().IsRegular() {
		status.Detail = fmt.Sprintf("model path %q is not a regular file", path)
		return status
	}
	status.Available = true
	return status
}

// Check runs every dependency check and reports all statuses, available or
// not. Nothing short-circuits; callers get the full picture.
func Check(cfg *config.Config) []Status {
	statuses := CheckBinaries([]Requirement{
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "audio transcoder"},
	})
	statuses = append(statuses, ResolveWhisper(cfg.Tools.Whisper))
	statuses = append(statuses, CheckModel(cfg.Paths.ModelPath))
	return statuses
}

// Verify gates the run. Every failing check is aggregated into a single
// error so the operator sees the complete list at once.
func Verify(cfg *config.Config) (Resolved, error) {
	statuses := Check(cfg)

	var missing []string
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status.Detail)
		}
	}
	if len(missing) > 0 {
		return Resolved{}, services.Wrap(
			services.ErrMissingDependency,
			"deps", "verify",
			strings.Join(missing, "; "),
			nil,
		)
	}

	return Resolved{
		FFmpeg:  statuses[0].Command,
		Whisper: statuses[1].Command,
		Model:   statuses[2].Command,
	}, nil
}

func siblingCandidates(name string) []string {
	base := filepath.Base(name)
	var out []string
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		out = append(out, base+".exe")
	}
	return append(out, base)
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
