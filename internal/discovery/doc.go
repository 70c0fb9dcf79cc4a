// Package discovery walks the input tree and produces the task list for a
// run, skipping inputs whose mirrored subtitle already exists.
package discovery
