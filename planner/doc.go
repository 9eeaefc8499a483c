// Package planner implements the render pipeline planner (spec component E,
// "pass_state"): given a multi-plane source frame, a multi-plane target
// frame, and a parameter bundle, it plans and executes an ordered sequence
// of shader passes that read planes, merge compatible ones, apply per-stage
// user hooks, scale, color-map, dither, and write subsampled outputs.
//
// The individual image-processing algorithms this orchestrates — scalers,
// color decode/encode, debanding, ICC, dither, peak detection, cone
// simulation — remain black-box collaborators the caller supplies through
// Generators (spec §1 Non-goals: "the individual image-processing
// algorithms... are deliberately out of scope"); Planner's job is solely
// the phase ordering, hook firing, intermediate-texture management, and
// degradation bookkeeping spec §4.E describes.
package planner
