// Package framecache implements the per-signature cached intermediate RGB
// texture store (spec component F, §4.F), used by mixer to avoid
// re-rendering a source frame it has already color-mapped and scaled for
// a previous composite.
package framecache
