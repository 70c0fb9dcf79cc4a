// Package deps verifies that the external tools and the model artifact are
// resolvable before any work starts, and carries the resolved paths for the
// rest of the run.
package deps
