// Package core provides the fundamental value types shared by every stage of
// the GeNN code-generation pipeline: the floating-point Precision tag,
// variable storage/location bit sets, and the immutable Snippet record that
// describes one user-visible model fragment (a neuron, weight-update,
// postsynaptic or current-source model).
//
// Nothing in this package depends on model, substitution, backend, strategy
// or generator; it exists purely as the shared vocabulary those packages
// build on, the same role core/sublate.go played for the rest of the
// original Sublation tree.
package core
