package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeTranscription()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.ModelPath == "" {
		if value, ok := os.LookupEnv("SUBGEN_MODEL_PATH"); ok {
			c.Paths.ModelPath = strings.TrimSpace(value)
		}
	}
	if c.Paths.ModelPath, err = expandPath(c.Paths.ModelPath); err != nil {
		return fmt.Errorf("paths.model_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.Whisper = strings.TrimSpace(c.Tools.Whisper)
	if c.Tools.Whisper == "" {
		c.Tools.Whisper = defaultWhisperBinary
	}
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if c.Transcription.Language == "" {
		c.Transcription.Language = defaultLanguage
	}
	if c.Transcription.Prompt == "" {
		if value, ok := os.LookupEnv("SUBGEN_PROMPT"); ok {
			c.Transcription.Prompt = value
		}
	}
	c.Transcription.Prompt = strings.TrimSpace(c.Transcription.Prompt)

	if len(c.Transcription.Extensions) == 0 {
		c.Transcription.Extensions = defaultExtensions()
		return
	}
	exts := make([]string, 0, len(c.Transcription.Extensions))
	seen := make(map[string]struct{}, len(c.Transcription.Extensions))
	for _, ext := range c.Transcription.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Transcription.Extensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
