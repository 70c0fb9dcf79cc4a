package whispercpp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	langpkg "subgen/internal/language"
	"subgen/internal/services"
)

// SubtitleExt is appended by the engine to its input waveform path.
const SubtitleExt = ".srt"

// Service holds the per-run invocation parameters. The binary and model path
// come from the dependency verifier and stay fixed for the whole batch.
type Service struct {
	binary        string
	model         string
	language      string
	prompt        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper.cpp service with the given resolved paths.
// The language is normalized to its ISO 639-1 form once here; every form the
// configuration accepts ("zho", "zh-TW", "chinese") reaches the engine as the
// same -l argument.
func NewService(binary, model, language, prompt string) *Service {
	if normalized, err := langpkg.Normalize(language); err == nil {
		language = normalized
	} else {
		language = langpkg.ToISO2(language)
	}
	return &Service{
		binary:   binary,
		model:    model,
		language: language,
		prompt:   prompt,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// OutputPath returns where the engine writes its subtitle for a given
// waveform input.
func OutputPath(wavPath string) string {
	return wavPath + SubtitleExt
}

// OutputPath exposes the engine output convention on the service value so
// callers holding an interface can locate stray artifacts.
func (s *Service) OutputPath(wavPath string) string {
	return OutputPath(wavPath)
}

// Transcribe runs the engine against wavPath and returns the path of the
// generated subtitle. A zero exit with no subtitle on disk is a silent
// engine-side failure and is reported as a transcription error, distinct
// from a non-zero exit.
func (s *Service) Transcribe(ctx context.Context, wavPath string) (string, error) {
	if wavPath == "" {
		return "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "waveform path required", nil)
	}

	args := s.buildArgs(wavPath)
	if err := s.run(ctx, s.binary, args...); err != nil {
		return "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "", err)
	}

	generated := OutputPath(wavPath)
	info, err := os.Stat(generated)
	if err != nil || !info.Mode().IsRegular() {
		return "", services.Wrap(
			services.ErrTranscription,
			"whisper", "transcribe",
			fmt.Sprintf("engine exited cleanly but wrote no subtitle at %s", generated),
			nil,
		)
	}
	return generated, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *Service) buildArgs(wavPath string) []string {
	args := []string{
		"-m", s.model,
		"-f", wavPath,
	}
	if s.language != "" {
		args = append(args, "-l", s.language)
	}
	if s.prompt != "" {
		args = append(args, "--prompt", s.prompt)
	}
	return append(args, "-osrt")
}
