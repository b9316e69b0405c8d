// Package compare reads run artifacts back from their text form and
// quantifies the agreement between two runs bin by bin. It is the read-side
// twin of the artifact package: the same grid that was written must parse
// back, and two runs over the same geometry can be ratioed against each
// other regardless of which engine produced them.
package compare
