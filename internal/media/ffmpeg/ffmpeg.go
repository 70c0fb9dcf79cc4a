package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"subgen/internal/services"
)

// Normalization constants. The filter chain band-limits the signal to the
// speech-relevant range and levels loudness before recognition.
const (
	SampleRate  = "16000"
	Channels    = "1"
	Codec       = "pcm_s16le"
	FilterChain = "loudnorm,highpass=f=80,lowpass=f=8000"
)

// Normalizer drives the ffmpeg binary resolved at startup.
type Normalizer struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewNormalizer creates a Normalizer around the given ffmpeg binary.
func NewNormalizer(binary string) *Normalizer {
	return &Normalizer{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (n *Normalizer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	n.commandRunner = runner
}

// Normalize converts source into a mono 16 kHz 16-bit PCM waveform at dest,
// overwriting any existing file there. A non-zero exit wraps the captured
// tool output into an extraction error; nothing is raised past this boundary.
func (n *Normalizer) Normalize(ctx context.Context, source, dest string) error {
	args := buildNormalizeArgs(source, dest)
	if err := n.run(ctx, n.binary, args...); err != nil {
		return services.Wrap(services.ErrExtraction, "ffmpeg", "normalize", "", err)
	}
	return nil
}

func (n *Normalizer) run(ctx context.Context, name string, args ...string) error {
	if n.commandRunner != nil {
		return n.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildNormalizeArgs constructs the fixed argument list. Arguments are always
// handed to the process launcher as a list, never as a shell string.
func buildNormalizeArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-ac", Channels,
		"-ar", SampleRate,
		"-c:a", Codec,
		"-af", FilterChain,
		dest,
	}
}
