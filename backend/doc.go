// Package backend declares the capability contract the generator pipeline
// consumes from a target platform: variable declaration and allocation,
// parallel-group iteration, atomic add, RNG, push/pull between host and
// device, and the scaffolding emission helpers (kernel preamble/postamble,
// makefile rules, timers). A Backend is not responsible for the content of
// user snippets, only for the scaffolding around them — the generator
// invokes Backend methods with callbacks that receive a code stream and
// write the snippet-derived body into it.
//
// Three implementations are provided: CUDABackend (the reference
// implementation), CPUBackend (sequential dispatch, used by tests), and
// OpenCLBackend (a deliberate, documented stub).
package backend
