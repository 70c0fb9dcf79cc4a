package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"subgen/internal/discovery"
	"subgen/internal/fileutil"
	"subgen/internal/logging"
	"subgen/internal/progress"
	"subgen/internal/services"
)

// Normalizer produces the intermediate waveform for a source file.
type Normalizer interface {
	Normalize(ctx context.Context, source, dest string) error
}

// Transcriber turns a waveform into a subtitle artifact placed at
// OutputPath(wavPath).
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
	OutputPath(wavPath string) string
}

// Status classifies a task outcome.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Outcome is the per-task result. Nothing is persisted; the subtitle file
// itself is the only durable artifact.
type Outcome struct {
	Task   discovery.Task
	Status Status
	Err    error
}

// Summary aggregates the batch.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Elapsed   time.Duration
	Outcomes  []Outcome
}

// Total returns the number of processed tasks.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

func (s *Summary) record(outcome Outcome) {
	switch outcome.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusFailed:
		s.Failed++
	case StatusSkipped:
		s.Skipped++
	}
	s.Outcomes = append(s.Outcomes, outcome)
}

// Runner drives the adapters sequentially over a task list.
type Runner struct {
	normalizer  Normalizer
	transcriber Transcriber
	reporter    progress.Reporter
	logger      *slog.Logger
}

// NewRunner wires the adapters, reporter, and logger into a batch runner.
func NewRunner(n Normalizer, t Transcriber, reporter progress.Reporter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		normalizer:  n,
		transcriber: t,
		reporter:    reporter,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run processes every task in order. The returned error is non-nil only when
// the context is cancelled; per-task failures are folded into the summary.
func (r *Runner) Run(ctx context.Context, tasks []discovery.Task) (Summary, error) {
	started := time.Now()
	summary := Summary{}

	r.reporter.Begin(len(tasks))
	defer r.reporter.End()

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			summary.Elapsed = time.Since(started)
			return summary, ctx.Err()
		default:
		}

		r.reporter.StartTask(task.Rel)

		// Defensive re-check: the destination may have appeared since
		// discovery. A skip, not an error.
		if _, err := os.Stat(task.Dest); err == nil {
			r.logger.Debug("destination already exists", logging.String("file", task.Rel))
			summary.record(Outcome{Task: task, Status: StatusSkipped})
			r.reporter.EndTask(task.Rel, string(StatusSkipped), nil)
			continue
		}

		if err := r.process(ctx, task); err != nil {
			r.logger.Error("task failed",
				logging.String("file", task.Rel),
				logging.Error(err),
			)
			summary.record(Outcome{Task: task, Status: StatusFailed, Err: err})
			r.reporter.EndTask(task.Rel, string(StatusFailed), err)
			// A fatal error means the environment broke mid-batch; the
			// remaining tasks would all fail the same way.
			if services.IsFatal(err) {
				summary.Elapsed = time.Since(started)
				return summary, err
			}
			continue
		}

		r.logger.Info("task completed",
			logging.String("file", task.Rel),
			logging.String("subtitle", task.Dest),
			logging.Bool("reused_source", task.ReuseSource),
		)
		summary.record(Outcome{Task: task, Status: StatusSucceeded})
		r.reporter.EndTask(task.Rel, string(StatusSucceeded), nil)
	}

	summary.Elapsed = time.Since(started)
	return summary, nil
}

// process runs one task through extract, transcribe, and place. Cleanup of
// the task's temporary artifacts is guaranteed on every exit path.
func (r *Runner) process(ctx context.Context, task discovery.Task) error {
	if err := os.MkdirAll(filepath.Dir(task.Dest), 0o755); err != nil {
		return services.Wrap(services.ErrPlacement, "pipeline", "prepare", "create destination directory", err)
	}

	wav := task.Source
	tempCreated := false
	defer func() {
		r.cleanup(task, wav, tempCreated)
	}()

	if !task.ReuseSource {
		if err := r.normalizer.Normalize(ctx, task.Source, task.TempWAV); err != nil {
			return err
		}
		tempCreated = true
		wav = task.TempWAV
	}

	generated, err := r.transcriber.Transcribe(ctx, wav)
	if err != nil {
		return err
	}

	return r.place(generated, task.Dest)
}

// place publishes the generated artifact at its mirrored destination. The
// destination is only ever populated by this move, after the artifact has
// been confirmed to exist.
func (r *Runner) place(generated, dest string) error {
	if err := fileutil.MoveFile(generated, dest); err != nil {
		return services.Wrap(services.ErrPlacement, "pipeline", "place", "", err)
	}
	return nil
}

// cleanup removes artifacts the task owns. An original input reused as the
// engine waveform is never touched. Failures here are logged and dropped; a
// stray temp file must never abort the batch.
func (r *Runner) cleanup(task discovery.Task, wav string, tempCreated bool) {
	if tempCreated {
		if err := os.Remove(task.TempWAV); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("could not remove temporary waveform",
				logging.String("path", task.TempWAV),
				logging.Error(err),
			)
		}
	}

	artifact := r.transcriber.OutputPath(wav)
	if artifact == task.Dest || artifact == task.Source {
		return
	}
	if _, err := os.Stat(artifact); err != nil {
		return
	}
	if err := os.Remove(artifact); err != nil {
		r.logger.Warn("could not remove stray engine artifact",
			logging.String("path", artifact),
			logging.Error(err),
		)
	}
}
