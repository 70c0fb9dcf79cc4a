// Package services defines the shared error taxonomy used by the external
// tool adapters and the pipeline.
package services
