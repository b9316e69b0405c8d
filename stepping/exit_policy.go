package stepping

// ExitPolicy decides whether a step left the scored geometry. Transport
// front-ends use it to derive the Exited flag when translating raw step data
// into core.StepEvent values.
//
// Two conventions are supported, matching the two ways transport codes signal
// escape: the post-step volume is empty (the track left the world), or the
// track crossed into a material designated as an escape sink (a vacuum or
// blackhole region surrounding the geometry).
type ExitPolicy struct {
	// EscapeMaterials lists material names treated as escape sinks. A step
	// whose post-step material matches one of these counts as an exit even
	// when a volume is still present.
	EscapeMaterials []string
}

// Exited reports whether a step with the given post-step volume and material
// left the scored geometry.
func (p ExitPolicy) Exited(postVolume, postMaterial string) bool {
	if postVolume == "" {
		return true
	}
	for _, m := range p.EscapeMaterials {
		if m == postMaterial {
			return true
		}
	}
	return false
}
