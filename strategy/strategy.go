package strategy

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// DefaultBlockSize is the thread-block size strategies assume when deciding
// whether the small-population shared-accumulator optimization applies.
const DefaultBlockSize = 256

// Strategy is how a synapse group's update is parallelized: presynaptic
// span, postsynaptic span, or procedural connectivity. Every method is
// pure with respect to sg/m; strategies hold no state of their own.
type Strategy interface {
	Name() string
	IsCompatible(sg *model.SynapseGroup) bool
	NumThreads(m *model.Model, sg *model.SynapseGroup) int
	RowStride(sg *model.SynapseGroup) int

	// SharedMemoryPerThread returns 1 if the small-population optimization
	// applies (native shared atomics, no dendritic delay, target
	// population fits one block), else 0.
	SharedMemoryPerThread(m *model.Model, sg *model.SynapseGroup, be backend.Backend) int

	GenPreamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error
	GenUpdate(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend, subs *substitution.Substitutions) error
	GenPostamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error
}

// order is the fixed compatibility-test order spec.md §4.4 requires:
// PreSpanProcedural, then PreSpan, then PostSpan.
var order = []Strategy{
	PreSpanProcedural{},
	PreSpan{},
	PostSpan{},
}

// Select returns the first strategy in order compatible with sg.
func Select(sg *model.SynapseGroup, be backend.Backend) (Strategy, error) {
	for _, s := range order {
		if s.IsCompatible(sg) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("strategy: no compatible presynaptic update strategy for synapse group %q", sg.Name)
}

// smallPopulationApplies implements the "small population" optimization
// test shared by all three strategies: the device supports native shared
// atomics, no dendritic delay is required, and the target population fits
// within one thread block.
func smallPopulationApplies(m *model.Model, sg *model.SynapseGroup, be backend.Backend) bool {
	if !be.SupportsNativeSharedAtomics() || sg.IsDendriticDelayRequired {
		return false
	}
	trg, ok := m.NeuronGroup(sg.Trg)
	if !ok {
		return false
	}
	return trg.Count <= DefaultBlockSize
}
