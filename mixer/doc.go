// Package mixer implements time-indexed frame mixing (spec component G,
// §4.G): blending several presentation-time-stamped input frames into one
// output frame, either by a caller-supplied filter kernel or by exact
// vsync-interval oversampling, reusing the frame cache (package
// framecache) so repeated inputs aren't re-rendered every call.
package mixer
