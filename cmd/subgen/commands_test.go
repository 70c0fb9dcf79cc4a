package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subgen/internal/services"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func writeStubTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func writeRunConfig(t *testing.T, inputDir, outputDir, modelPath, logDir string) string {
	t.Helper()
	content := strings.Join([]string{
		"[paths]",
		`input_dir = "` + inputDir + `"`,
		`output_dir = "` + outputDir + `"`,
		`model_path = "` + modelPath + `"`,
		`log_dir = "` + logDir + `"`,
		"",
		"[tools]",
		`ffmpeg = "ffmpeg"`,
		`whisper = "whisper-cli"`,
		"",
		"[transcription]",
		`language = "en"`,
		"",
		"[logging]",
		`level = "error"`,
	}, "\n") + "\n"

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	cfgPath := writeRunConfig(t, t.TempDir(), t.TempDir(), filepath.Join(t.TempDir(), "model.bin"), t.TempDir())

	out, err := runCLI(t, []string{"config", "show", "-c", cfgPath})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "whisper-cli")
}

func TestDepsReportsMissingTools(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	chdir(t, t.TempDir())
	cfgPath := writeRunConfig(t, t.TempDir(), t.TempDir(), filepath.Join(t.TempDir(), "absent.bin"), t.TempDir())

	out, err := runCLI(t, []string{"deps", "-c", cfgPath})
	if err == nil {
		t.Fatal("deps should fail when tools are missing")
	}
	requireContains(t, out, "missing")
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "whisper.cpp")
	requireContains(t, out, "Model")
}

func TestRunFailsFastWhenDependenciesMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	chdir(t, t.TempDir())
	inputDir := t.TempDir()
	cfgPath := writeRunConfig(t, inputDir, t.TempDir(), filepath.Join(t.TempDir(), "absent.bin"), t.TempDir())

	_, err := runCLI(t, []string{"run", "-c", cfgPath})
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing-dependency error, got %v", err)
	}
}

func TestRunEndToEndWithStubTools(t *testing.T) {
	binDir := t.TempDir()
	writeStubTool(t, binDir, "ffmpeg", `for last in "$@"; do :; done
printf 'RIFF' > "$last"
`)
	writeStubTool(t, binDir, "whisper-cli", `wav=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-f" ]; then wav="$a"; fi
  prev="$a"
done
printf '1\n00:00:00,000 --> 00:00:01,000\nhello\n' > "$wav.srt"
`)
	t.Setenv("PATH", binDir)

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	modelPath := filepath.Join(t.TempDir(), "model.bin")
	if err := os.WriteFile(modelPath, []byte("weights"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(inputDir, "week1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "week1", "lec.mp4"), []byte("media"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfgPath := writeRunConfig(t, inputDir, outputDir, modelPath, t.TempDir())

	out, err := runCLI(t, []string{"run", "-c", cfgPath})
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	dest := filepath.Join(outputDir, "week1", "lec.srt")
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected subtitle at %s: %v", dest, err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "week1", "lec_temp.wav")); !os.IsNotExist(err) {
		t.Fatalf("temporary waveform should be cleaned up, stat err: %v", err)
	}
	requireContains(t, out, "Succeeded")

	// A second run finds nothing pending.
	out, err = runCLI(t, []string{"run", "-c", cfgPath})
	if err != nil {
		t.Fatalf("second run: %v\n%s", err, out)
	}
	requireContains(t, out, "Nothing to do")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
