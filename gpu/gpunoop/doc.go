// Package gpunoop is an in-memory fake implementation of gpu.Device, adapted
// from the teacher's hal/noop backend. It exists purely so dispatch, texpool,
// planner, and mixer can be exercised by tests without a real GPU: textures
// are backed by float32 host buffers so upload/download round trips are
// exact, passes record what they were run with instead of drawing anything,
// and no resource creation with valid arguments fails unless explicitly told
// to via Device.FailNext.
package gpunoop
