// Package ffmpeg invokes the external transcoder to produce the normalized
// waveform the transcription engine consumes.
package ffmpeg
