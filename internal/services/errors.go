package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDependency aborts the whole run; nothing is processed.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrExtraction marks an audio normalization failure. Task-level.
	ErrExtraction = errors.New("audio extraction error")
	// ErrTranscription marks an engine failure, including a clean exit that
	// produced no subtitle artifact. Task-level.
	ErrTranscription = errors.New("transcription error")
	// ErrPlacement marks a failure to publish a generated subtitle. Task-level.
	ErrPlacement = errors.New("placement error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTranscription
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error must abort the batch rather than a single
// task. Only dependency resolution failures qualify.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingDependency)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
