// Package texpool implements the intermediate texture pool (spec component
// D): a set of renderable/sampleable/optionally-storable textures recycled
// by (width, height, format), selected by minimum orthogonal size
// difference with a penalty for format mismatch, and tracked per top-level
// call via a per-slot "used" bit.
package texpool
