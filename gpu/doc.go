// Package gpu declares the narrow, backend-agnostic GPU surface that the
// dispatch engine and render planner consume.
//
// This is deliberately not a full WebGPU-shaped runtime: it has no bind group
// layouts, no pipeline layouts, no resource-id generations. It is the opaque
// texture/buffer/pass/timer vtable described in spec component A — a set of
// capability flags plus lifecycle methods. Concrete implementations (Vulkan,
// OpenGL ES, Metal, a software rasterizer) are external collaborators and are
// out of scope for this module; gpu/gpunoop provides an in-memory fake for
// tests.
package gpu
