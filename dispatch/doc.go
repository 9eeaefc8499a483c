// Package dispatch implements the shader dispatch engine (spec component C):
// it compiles a shader.Builder plus a target/blend/load policy into a
// gpu.Pass, decides where each declared variable lives (push constant,
// uniform buffer, or global uniform), generates complete GLSL source,
// caches compiled passes under a content signature, and supports
// saving/loading backend program binaries.
package dispatch
