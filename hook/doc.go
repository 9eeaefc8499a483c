// Package hook defines the user-hook contract shared by the render planner's
// plane-read and main-scale phases: a named pipeline Stage, the Func
// signature a hook implements, and the abort-disables-latch dispatch
// discipline every hook call site shares (spec GLOSSARY "Hook": "a
// user-supplied transformation invoked at a named pipeline stage; may
// replace the current shader or texture").
package hook
