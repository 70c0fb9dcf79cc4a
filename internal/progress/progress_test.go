package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewFallsBackToPlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := New(&buf).(*plainReporter); !ok {
		t.Fatal("expected plain reporter for non-terminal writer")
	}
}

func TestPlainReporterSequentialLog(t *testing.T) {
	var buf bytes.Buffer
	r := &plainReporter{writer: &buf}

	r.Begin(2)
	r.StartTask("week1/lec.mp4")
	r.EndTask("week1/lec.mp4", "done", nil)
	r.StartTask("week2/lec.mp4")
	r.EndTask("week2/lec.mp4", "failed", errors.New("ffmpeg: exit status 1"))
	r.End()

	out := buf.String()
	for _, want := range []string{
		"processing 2 file(s)",
		"[1/2] week1/lec.mp4",
		"[1/2] week1/lec.mp4: done",
		"[2/2] week2/lec.mp4: failed: ffmpeg: exit status 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBarReporterDoesNotPanicWithoutBegin(t *testing.T) {
	var buf bytes.Buffer
	r := &barReporter{writer: &buf}
	r.StartTask("x")
	r.EndTask("x", "done", nil)
	r.End()
}
