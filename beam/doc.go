// Package beam provides a synthetic primary source for exercising the
// scoring pipeline without a transport engine. It drives a coordinator the
// same way a real engine integration would: one step handler per worker, a
// BeginEvent per primary, and a stream of step events per track.
package beam
