package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subgen/internal/config"
	"subgen/internal/deps"
	"subgen/internal/discovery"
	"subgen/internal/logging"
	"subgen/internal/media/ffmpeg"
	"subgen/internal/media/whispercpp"
	"subgen/internal/pipeline"
	"subgen/internal/progress"
)

const summaryRounding = 10 * time.Millisecond

func newRunCommand(configFlag *string) *cobra.Command {
	var inputFlag string
	var outputFlag string
	var modelFlag string
	var languageFlag string
	var promptFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transcribe every pending media file under the input tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := loadConfig(configFlag)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if err := applyRunOverrides(cfg, inputFlag, outputFlag, modelFlag, languageFlag, promptFlag); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			runID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldRunID, runID))

			resolved, err := deps.Verify(cfg)
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "subgen.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another subgen run is already active for this log directory")
			}
			defer func() { _ = lock.Unlock() }()

			tasks, err := discovery.Discover(cfg.Paths.InputDir, cfg.Paths.OutputDir, cfg.ExtensionSet())
			if err != nil {
				return err
			}
			logger.Info("scan complete",
				logging.String("input_dir", cfg.Paths.InputDir),
				logging.Int("pending", len(tasks)),
			)

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "Nothing to do; every input already has a subtitle.")
				return nil
			}

			runner := pipeline.NewRunner(
				ffmpeg.NewNormalizer(resolved.FFmpeg),
				whispercpp.NewService(resolved.Whisper, resolved.Model, cfg.Transcription.Language, cfg.Transcription.Prompt),
				progress.New(out),
				logger,
			)
			summary, err := runner.Run(cmd.Context(), tasks)
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			logger.Info("run complete",
				logging.Int("succeeded", summary.Succeeded),
				logging.Int("failed", summary.Failed),
				logging.Int("skipped", summary.Skipped),
				logging.Duration("elapsed", summary.Elapsed),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input directory to scan (overrides config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory for subtitles (overrides config)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Path to the transcription model weights (overrides config)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language of the inputs (overrides config)")
	cmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Engine prompt to bias vocabulary or script (overrides config)")

	return cmd
}

func applyRunOverrides(cfg *config.Config, input, output, model, language, prompt string) error {
	type pathOverride struct {
		value  string
		target *string
	}
	for _, o := range []pathOverride{
		{input, &cfg.Paths.InputDir},
		{output, &cfg.Paths.OutputDir},
		{model, &cfg.Paths.ModelPath},
	} {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		expanded, err := config.ExpandPath(o.value)
		if err != nil {
			return err
		}
		*o.target = expanded
	}
	if strings.TrimSpace(language) != "" {
		cfg.Transcription.Language = strings.TrimSpace(language)
	}
	if prompt != "" {
		cfg.Transcription.Prompt = prompt
	}
	return cfg.Validate()
}

func printSummary(cmd *cobra.Command, summary pipeline.Summary) {
	out := cmd.OutOrStdout()
	rows := [][]string{
		{"Succeeded", fmt.Sprintf("%d", summary.Succeeded)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
		{"Skipped", fmt.Sprintf("%d", summary.Skipped)},
		{"Total", fmt.Sprintf("%d", summary.Total())},
		{"Elapsed", summary.Elapsed.Round(summaryRounding).String()},
	}
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	if summary.Failed == 0 {
		return
	}
	fmt.Fprintln(out, "Failures:")
	for _, outcome := range summary.Outcomes {
		if outcome.Status != pipeline.StatusFailed {
			continue
		}
		fmt.Fprintf(out, "  %s: %v\n", outcome.Task.Rel, outcome.Err)
	}
}
