package strategy

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// PreSpanProcedural parallelizes a synapse group one thread per presynaptic
// spike, the same as PreSpan, but for connectivity regenerated on demand
// from the connectivity initializer's row-build snippet rather than stored
// row/index arrays. Compatible only when every weight variable is global
// or procedural (no per-synapse storage to address).
type PreSpanProcedural struct{}

func (PreSpanProcedural) Name() string { return "pre_span_procedural" }

func (PreSpanProcedural) IsCompatible(sg *model.SynapseGroup) bool {
	return sg.Connectivity == model.MatrixConnectivityProcedural &&
		sg.WeightRep != model.MatrixWeightIndividual
}

func (PreSpanProcedural) NumThreads(m *model.Model, sg *model.SynapseGroup) int {
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

func (PreSpanProcedural) RowStride(sg *model.SynapseGroup) int { return sg.MaxConnections }

func (PreSpanProcedural) SharedMemoryPerThread(m *model.Model, sg *model.SynapseGroup, be backend.Backend) int {
	if smallPopulationApplies(m, sg, be) {
		return 1
	}
	return 0
}

func (PreSpanProcedural) GenPreamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		_, err := fmt.Fprintln(w, "if (threadIdx.x < trgCount) shLg[threadIdx.x] = 0;")
		return err
	}
	return nil
}

// GenUpdate binds $(addSynapse, post) to the weight-update sim code (with
// $(id_post) rewritten to the call's own argument) and applies it while
// resolving the connectivity initializer's row-build code, whose "endRow"
// primitive becomes a break out of the per-spike while loop. This is
// spec.md §4.4's "invokes the connectivity initializer's row-build code
// with add_synapse bound to the weight-update sim code".
func (PreSpanProcedural) GenUpdate(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend, subs *substitution.Substitutions) error {
	if sg.WUMSnippet == nil || sg.ConnectivityInit == nil {
		return nil
	}

	addToInSyn, err := addToInSynTemplate(m, sg, be, accumulateOptions{})
	if err != nil {
		return err
	}

	sim := wrapEventThresholdRetest(sg.WUMSnippet.Code[core.RoleSim], sg)
	sim, err = substitution.FunctionSubstitute(sim, core.PlaceholderAddToInSyn, 1, addToInSyn)
	if err != nil {
		return err
	}
	// the row-build loop's postsynaptic index is only known as the
	// deferred "$(0)" function-template placeholder this add_synapse call
	// binds, so $(X_post) must be resolved against that same placeholder
	// rather than through bindCrossGroupVars's ordinary, already-concrete
	// index — the one case this strategy must handle itself.
	if trg, ok := m.NeuronGroup(sg.Trg); ok && trg.Snippet != nil {
		names := make([]string, len(trg.Snippet.Vars))
		for i, v := range trg.Snippet.Vars {
			names[i] = v.Name
		}
		sim = substitution.NameSubstitution(sim, names, "$(0)", "", 0, "_post")
	}
	addSynapseTemplate := substitution.Substitute(sim, "$("+core.PlaceholderIDPost+")", "$(0)")

	rowBuild := substitution.Substitute(sg.ConnectivityInit.Code[core.RoleRowBuild], core.PlaceholderEndRow, "break;")

	body := "while (true) {\n" + rowBuild + "\n}\n"

	subs.Push()
	defer subs.Pop()
	subs.AddFuncSubstitution(core.PlaceholderAddSynapse, 1, addSynapseTemplate)

	resolved, err := subs.Apply(body)
	if err != nil {
		return err
	}
	if err := substitution.CheckUnresolved(resolved, fmt.Sprintf("synapse group %q procedural row build", sg.Name)); err != nil {
		return err
	}
	_, err = io.WriteString(w, resolved)
	return err
}

func (PreSpanProcedural) GenPostamble(w io.Writer, m *model.Model, sg *model.SynapseGroup, be backend.Backend) error {
	if smallPopulationApplies(m, sg, be) {
		return genFlushSharedAccumulator(w, sg, be)
	}
	return nil
}
