package config

import (
	"errors"
	"fmt"

	"subgen/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	return c.validateTranscription()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.ModelPath == "" {
		return errors.New("paths.model_path must be set. Set SUBGEN_MODEL_PATH or edit the config (create with 'subgen config init')")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if c.Tools.Whisper == "" {
		return errors.New("tools.whisper must be set")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if _, err := language.Normalize(c.Transcription.Language); err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	if len(c.Transcription.Extensions) == 0 {
		return errors.New("transcription.extensions must include at least one extension")
	}
	return nil
}
