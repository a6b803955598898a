package strategy

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// PreSpan parallelizes a synapse group update one thread per presynaptic
// spike, compatible when the group's span is presynaptic and its
// connectivity is sparse (stored row lengths and indices, not dense or
// procedural). Each thread reads rowLength[preIdx] and walks its row.
type PreSpan struct{}

func (PreSpan) Name() string { return "pre_span" }

func (PreSpan) IsCompatible(sg *model.SynapseGroup) bool {
	return sg.Span == model.SpanPresynaptic && sg.Connectivity == model.MatrixConnectivitySparse
}

func (PreSpan) NumThreads(m *model.Model, sg *model.SynapseGroup) int {
	src, ok := m.NeuronGroup(sg.Src)
	if !ok {
		return 0
	}
	threadsPerSpike := sg.ThreadsPerSpike
	if threadsPerSpike < 1 {
		threadsPerSpike = 1
	}
	return src.Count * threadsPerSpike
}

func (PreSpan) RowStride(sg *model.SynapseGroup) int { return sg.MaxConnections }

func (PreSpan) SharedMemoryPerThread(m *model.Model, sg *model.SynapseGroup, be backend.Backend) int {
	if smallPopulationApplies(m, sg, be) {
		return 1
	}
	return 0
}

func (PreSpan) GenPreamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		_, err := fmt.Fprintln(w, "if (threadIdx.x < trgCount) shLg[threadIdx.x] = 0;")
		return err
	}
	return nil
}

// GenUpdate emits the per-spike loop that reads rowLength[preIdx] and walks
// the sparse row, substituting the weight-update sim code's addToInSyn
// primitive per sg's accumulation class and, when required, wrapping it in
// an event-threshold re-test gated on $(id_pre).
func (s PreSpan) GenUpdate(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend, subs *substitution.Substitutions) error {
	if sg.WUMSnippet == nil {
		return nil
	}
	template, err := addToInSynTemplate(m, sg, be, accumulateOptions{})
	if err != nil {
		return err
	}

	sim := wrapEventThresholdRetest(sg.WUMSnippet.Code[core.RoleSim], sg)

	body := "for (unsigned int j = 0; j < rowLength[$(id_pre)]; j++) {\n" +
		"const unsigned int synAddress = $(id_pre) * rowStride + j;\n" +
		"const unsigned int ipost = ind[synAddress];\n" +
		sim + "\n}\n"

	subs.Push()
	defer subs.Pop()
	subs.AddFuncSubstitution(core.PlaceholderAddToInSyn, 1, template)
	subs.AddVarSubstitution(core.PlaceholderIDPost, "ipost")

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

func (PreSpan) GenPostamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		return genFlushSharedAccumulator(w, sg, be)
	}
	return nil
}

// wrapEventThresholdRetest wraps sim in an "if (<threshold>) { ... }" guard
// when sg requires re-testing the event threshold at update time (spec.md
// §4.4): a weight-update snippet driven by spike-like events, not true
// spikes, must re-check its threshold condition since the event may have
// gone stale by the time this synapse's update runs.
func wrapEventThresholdRetest(sim string, sg *model.SynapseGroup) string {
	if !sg.IsEventThresholdRetestRequired || sg.WUMSnippet == nil {
		return sim
	}
	cond, ok := sg.WUMSnippet.Code[core.RoleEventThreshold]
	if !ok || cond == "" {
		return sim
	}
	return fmt.Sprintf("if (%s) {\n%s\n}", cond, sim)
}
