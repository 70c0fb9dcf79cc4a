// Package pipeline sequences the per-file conversion steps and enforces the
// cleanup discipline. One task's full pipeline completes before the next
// begins; per-task failures never abort the batch.
package pipeline
