// Package artifact contains concrete implementations of the core.ResultWriter.
//
// The canonical ResultWriter interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation packages
// like this one (filesystem, in-memory, cloud object stores, etc.) provide
// output backends that can be swapped without touching calling code.
//
// All writers render the same two text artifacts: the energy-deposition
// profile and the neutron exit spectrum. The rendering (column layout, unit
// conversion, float formatting) is shared so results are byte-identical
// across backends. Callers should depend on the core interface rather than
// concrete types so they can substitute alternative writers in tests or
// production.
package artifact
