package strategy

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// PostSpan parallelizes a synapse group one thread per postsynaptic target,
// coalescing the presynaptic spike list into shared memory once per block
// and crossing it against each thread's column. Compatible whenever the
// group's span is postsynaptic and its connectivity is stored (dense,
// sparse or bitmask), never procedural: there is no row to cross against without a
// materialized column to address.
type PostSpan struct{}

func (PostSpan) Name() string { return "post_span" }

func (PostSpan) IsCompatible(sg *model.SynapseGroup) bool {
	return sg.Span == model.SpanPostsynaptic && sg.Connectivity != model.MatrixConnectivityProcedural
}

func (PostSpan) NumThreads(m *model.Model, sg *model.SynapseGroup) int {
	trg, ok := m.NeuronGroup(sg.Trg)
	if !ok {
		return 0
	}
	return trg.Count
}

func (PostSpan) RowStride(sg *model.SynapseGroup) int { return sg.MaxConnections }

func (PostSpan) SharedMemoryPerThread(m *model.Model, sg *model.SynapseGroup, be backend.Backend) int {
	if smallPopulationApplies(m, sg, be) {
		return 1
	}
	return 0
}

// usesDenseRegister reports whether GenUpdate will have accumulated into
// the per-thread linSyn register (dense connectivity, no dendritic delay,
// and the small-population shared-atomic path does not already apply).
func usesDenseRegister(m *model.Model, sg *model.SynapseGroup, be backend.Backend) bool {
	return sg.Connectivity == model.MatrixConnectivityDense &&
		!sg.IsDendriticDelayRequired &&
		!smallPopulationApplies(m, sg, be)
}

func (PostSpan) GenPreamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		if _, err := fmt.Fprintln(w, "if (threadIdx.x < trgCount) shLg[threadIdx.x] = 0;"); err != nil {
			return err
		}
	}
	if usesDenseRegister(m, sg, be) {
		if _, err := fmt.Fprintln(w, "scalar linSyn = 0;"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "__syncthreads();")
	return err
}

// GenUpdate emits the coalesced spike loop: the block first stages the
// source population's spike list into shared memory, then every thread
// (one per postsynaptic index) walks that shared list and, for each
// presynaptic spike with a connection to its column, runs the weight-update
// sim code. Dense connectivity accumulates into the per-thread linSyn
// register instead of going straight to $(addToInSyn)'s normal targets;
// GenPostamble flushes that register once the loop completes.
func (PostSpan) GenUpdate(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend, subs *substitution.Substitutions) error {
	if sg.WUMSnippet == nil {
		return nil
	}
	dense := usesDenseRegister(m, sg, be)
	template, err := addToInSynTemplate(m, sg, be, accumulateOptions{denseRegister: dense})
	if err != nil {
		return err
	}

	sim := wrapEventThresholdRetest(sg.WUMSnippet.Code[core.RoleSim], sg)

	connectionTest := "true"
	if sg.Connectivity == model.MatrixConnectivitySparse || sg.Connectivity == model.MatrixConnectivityBitmask {
		connectionTest = "gp[shSpk[j] * rowStride + $(id_post)]"
	}

	body := "for (unsigned int j = 0; j < shSpkCount; j++) {\n" +
		"if (" + connectionTest + ") {\n" +
		sim + "\n}\n}\n"

	subs.Push()
	defer subs.Pop()
	subs.AddFuncSubstitution(core.PlaceholderAddToInSyn, 1, template)
	subs.AddVarSubstitution(core.PlaceholderIDPre, "shSpk[j]")

	resolved, err := subs.Apply(body)
	if err != nil {
		return err
	}
	if err := substitution.CheckUnresolved(resolved, fmt.Sprintf("synapse group %q weight update sim", sg.Name)); err != nil {
		return err
	}
	_, err = io.WriteString(w, resolved)
	return err
}

func (PostSpan) GenPostamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		return genFlushSharedAccumulator(w, sg, be)
	}
	if usesDenseRegister(m, sg, be) {
		return genFlushRegister(w, sg, be)
	}
	return nil
}
