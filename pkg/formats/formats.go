// Package formats reads and writes the sweep definition files used by
// sweepview and sweeptool.
//
// A sweep file is plain text: whitespace separated tokens holding the sweep
// kind, the span count for rotational sweeps, then each control point list
// as a count followed by x y z triples.
package formats
