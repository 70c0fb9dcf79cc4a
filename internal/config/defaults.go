package config

const (
	defaultInputDir      = "video"
	defaultOutputDir     = "subtitle"
	defaultModelPath     = "ggml-large-v3.bin"
	defaultLogDir        = "~/.local/share/subgen/logs"
	defaultFFmpegBinary  = "ffmpeg"
	defaultWhisperBinary = "whisper-cli"
	defaultLanguage      = "en"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultExtensions() []string {
	return []string{".mp4", ".mov", ".m4a", ".mp3", ".mkv", ".wav", ".webm", ".flv"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			ModelPath: defaultModelPath,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			Whisper: defaultWhisperBinary,
		},
		Transcription: Transcription{
			Language:   defaultLanguage,
			Extensions: defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
