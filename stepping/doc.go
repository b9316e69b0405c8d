// Package stepping translates raw transport observations into accumulator
// updates. The Observer is the per-worker core.StepHandler implementation;
// ExitPolicy captures the geometry conventions for detecting escaping tracks.
package stepping
