package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExtraction, "ffmpeg", "normalize", "bad stream", cause)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"ffmpeg", "normalize", "bad stream", "exit status 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message %q", want, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrTranscription, "whisper", "transcribe", "no subtitle written", nil)
	if !errors.Is(err, ErrTranscription) {
		t.Fatalf("expected transcription marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrPlacement, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrMissingDependency, "deps", "verify", "ffmpeg not found", nil)) {
		t.Fatal("expected missing dependency to be fatal")
	}
	if IsFatal(Wrap(ErrExtraction, "ffmpeg", "normalize", "", nil)) {
		t.Fatal("extraction failures must not abort the batch")
	}
}
