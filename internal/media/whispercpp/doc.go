// Package whispercpp invokes the whisper.cpp command-line engine and
// interprets its on-disk output convention.
package whispercpp
