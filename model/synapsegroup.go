package model

import "github.com/sbl8/sublation/core"

// SynapseGroup is a named directed edge between two neuron groups, carrying
// a weight-update snippet and a postsynaptic snippet. Src and Trg are weak
// references (neuron group names) resolved through the owning Model.
type SynapseGroup struct {
	Name string

	Connectivity MatrixConnectivity
	WeightRep    MatrixWeight

	DelaySteps         int
	BackPropDelaySteps int

	WUMSnippet *core.Snippet
	PSMSnippet *core.Snippet

	WUMParams      map[string]float64
	WUMVarInits    []VarInit
	WUMPreVarInits []VarInit
	WUMPostVarInits []VarInit

	PSMParams   map[string]float64
	PSMVarInits []VarInit

	ConnectivityInit *core.Snippet

	Src string
	Trg string

	MaxConnections  int
	Span            SpanType
	ThreadsPerSpike int

	// IsPSModelMerged is computed by Model.Finalize; the other two flags are
	// set by the caller and Finalize leaves them unchanged.
	IsDendriticDelayRequired       bool
	IsEventThresholdRetestRequired bool
	IsPSModelMerged                bool
}

func newSynapseGroup(name, src, trg string, connectivity MatrixConnectivity, delaySteps int) *SynapseGroup {
	return &SynapseGroup{
		Name:            name,
		Src:             src,
		Trg:             trg,
		Connectivity:    connectivity,
		WeightRep:       MatrixWeightIndividual,
		DelaySteps:      delaySteps,
		WUMParams:       make(map[string]float64),
		PSMParams:       make(map[string]float64),
		Span:            SpanPresynaptic,
		ThreadsPerSpike: 1,
	}
}

// IsProcedural reports whether this group's connectivity is regenerated on
// access rather than stored.
func (sg *SynapseGroup) IsProcedural() bool {
	return sg.Connectivity == MatrixConnectivityProcedural
}

// HasWeightSnippetRole reports whether the weight-update snippet defines
// code for role.
func (sg *SynapseGroup) HasWeightSnippetRole(role core.Role) bool {
	return sg.WUMSnippet != nil && sg.WUMSnippet.HasRole(role)
}
