// Package frameio holds the render planner's data model (spec §3): Frame,
// Plane, ColorRepr, ColorSpace, Img, and the per-call Pass-state scratch.
package frameio
