// Package progress presents batch progress. Presentation mode is a
// capability concern decided once at startup and never affects processing.
package progress
