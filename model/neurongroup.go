package model

import "github.com/sbl8/sublation/core"

// NeuronGroup is a named population of Count identical neurons simulated by
// one neuron snippet. Delay and queue fields are computed facts, populated
// by Model.Finalize; before that NumDelaySlots reads 1, IsQueueRequired is
// empty and MergedInSyn is nil.
type NeuronGroup struct {
	Name    string
	Count   int
	Snippet *core.Snippet
	HostID  int

	Params             map[string]float64
	VarInits           []VarInit
	VarLocations       map[string]core.VarLocation
	VarImplementations map[string]core.VarImplementation
	DerivedParams      map[string]float64

	// OutgoingSynapses and IncomingSynapses hold synapse group names; the
	// Model resolves these weak references by lookup.
	OutgoingSynapses []string
	IncomingSynapses []string

	IncomingCurrentSources []string

	// NumDelaySlots is >= 1 always, widened during finalize to
	// max(delay_steps)+1 over every outgoing synapse group requiring
	// delayed access to a presynaptic variable.
	NumDelaySlots int

	// IsQueueRequired marks, per variable name, whether history across
	// delay slots must be preserved because some downstream synapse group
	// reads it with $(X_pre).
	IsQueueRequired map[string]bool

	// MergedInSyn lists the synapse group names whose postsynaptic models
	// have been folded into a single shared inSyn buffer.
	MergedInSyn []string
}

func newNeuronGroup(name string, count int, snippet *core.Snippet, hostID int) *NeuronGroup {
	return &NeuronGroup{
		Name:               name,
		Count:              count,
		Snippet:            snippet,
		HostID:             hostID,
		Params:             make(map[string]float64),
		VarLocations:       make(map[string]core.VarLocation),
		VarImplementations: make(map[string]core.VarImplementation),
		DerivedParams:      make(map[string]float64),
		IsQueueRequired:    make(map[string]bool),
		NumDelaySlots:      1,
	}
}

// VarLocation returns the group's location for var, falling back to def if
// none was set explicitly.
func (ng *NeuronGroup) VarLocation(varName string, def core.VarLocation) core.VarLocation {
	if loc, ok := ng.VarLocations[varName]; ok {
		return loc
	}
	return def
}
