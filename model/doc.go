// Package model is the network model registry: NeuronGroup, SynapseGroup
// and CurrentSource records owned exclusively by a Model, plus the
// finalization pass that materializes derived parameters, propagates delay
// and queue requirements, merges compatible postsynaptic models, and checks
// acyclicity.
//
// Groups are added pre-finalize through Model's Add* methods and hold weak
// references (by name, resolved through the owning Model) to each other;
// Model.Finalize freezes the model exactly once. Grounded on
// model/graph.go's ordered-registry-plus-Kahn's-algorithm shape, generalized
// from a flat node/payload graph to named neuron/synapse/current-source
// groups.
package model
