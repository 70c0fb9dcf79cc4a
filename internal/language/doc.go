// Package language normalizes language identifiers to the ISO 639-1 codes
// the transcription engine expects.
package language
