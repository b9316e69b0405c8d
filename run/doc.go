// Package run implements the core.Coordinator: the accumulator lifecycle
// around a single run, from per-worker allocation at StartRun through the
// merge and artifact write at EndRun.
//
// The package assumes the external engine enforces the run barrier; by the
// time EndRun is called no worker may still be emitting steps. Within that
// contract the merged result is independent of worker count and event
// ordering.
package run
