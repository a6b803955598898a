package generator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/internal/ctxlog"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// GenerateNeuronUpdate emits spec.md §4.5's generate_neuron_update: one
// parallel dispatch over every neuron group in Model order. Per thread,
// in the order spec.md §4.2's narrative describes: accumulate every
// merged incoming synapse group's postsynaptic input into Isyn, inject
// every current source's contribution into Isyn, run the neuron's own sim
// code with Isyn bound, test the threshold and, on a spike, run reset
// code, then finally run every incoming synapse group's postsynaptic
// decay code.
func (p *Pipeline) GenerateNeuronUpdate(ctx context.Context, w io.Writer) error {
	log := ctxlog.FromContext(ctx)

	if err := p.Backend.GenKernelPreamble(w); err != nil {
		return err
	}
	if err := p.genQueueAdvance(w); err != nil {
		return err
	}

	groups := make([]backend.ParallelGroup, 0, len(p.Model.NeuronGroups()))
	for _, ng := range p.Model.NeuronGroups() {
		groups = append(groups, backend.ParallelGroup{Name: ng.Name, Count: ng.Count})
		if ng.Snippet != nil && ng.Snippet.Code[core.RoleThreshold] == "" {
			log.Warn("neuron group has no threshold condition; treated as spike-free", "group", ng.Name)
		}
	}

	handler := func(w io.Writer, group backend.ParallelGroup, localID string) error {
		ng, ok := p.Model.NeuronGroup(group.Name)
		if !ok || ng.Snippet == nil {
			return nil
		}
		return p.genNeuronGroupUpdate(w, ng, localID)
	}

	if err := p.Backend.GenParallelGroup(w, groups, nil, handler); err != nil {
		return err
	}
	if err := p.Backend.GenKernelPostamble(w); err != nil {
		return err
	}
	log.Info("generated neuron update", "groups", len(groups))
	return nil
}

func (p *Pipeline) genNeuronGroupUpdate(w io.Writer, ng *model.NeuronGroup, localID string) error {
	if _, err := io.WriteString(w, "scalar Isyn = 0;\n"); err != nil {
		return err
	}

	for _, synName := range ng.IncomingSynapses {
		sg, ok := p.Model.SynapseGroup(synName)
		if !ok || sg.PSMSnippet == nil {
			continue
		}
		if err := p.genApplyInput(w, sg, localID); err != nil {
			return err
		}
	}
	for _, csName := range ng.IncomingCurrentSources {
		cs, ok := p.Model.CurrentSource(csName)
		if !ok || cs.Snippet == nil {
			continue
		}
		if err := p.genCurrentInjection(w, cs, localID); err != nil {
			return err
		}
	}

	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderID, localID)
	subs.AddVarSubstitution(core.PlaceholderT, "t")
	subs.AddVarSubstitution("Isyn", "Isyn")
	if err := bindSnippetScope(subs, p.Backend, ng.Snippet, ng.Params, ng.DerivedParams, localID, ng); err != nil {
		return err
	}
	// a weight-update snippet's event_threshold code is always written
	// $(name_pre)-suffixed, since it is ordinarily resolved at a downstream
	// synapse group's update; re-evaluated here, from the source
	// population's own perspective, $(name_pre) means exactly $(name).
	for _, v := range ng.Snippet.Vars {
		subs.AddVarSubstitution(v.Name+"_pre", neuronVarAccess(ng, v.Name, localID))
	}

	if err := emit(w, subs, ng.Snippet.Code[core.RoleSim], p.Backend, fmt.Sprintf("neuron group %q sim", ng.Name)); err != nil {
		return err
	}

	slot := currentSlotExpr(ng)
	countIdx, spikeIdx := "0", localID
	if slot != "" {
		countIdx = slot
		spikeIdx = fmt.Sprintf("(%s) * %d + %s", slot, ng.Count, localID)
	}

	if err := p.genSpikeLikeEvents(w, ng, subs, countIdx, spikeIdx); err != nil {
		return err
	}

	threshold := ng.Snippet.Code[core.RoleThreshold]
	if threshold != "" {
		resolvedThreshold, err := resolve(subs, threshold, p.Backend, fmt.Sprintf("neuron group %q threshold", ng.Name))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "if (%s) {\n", resolvedThreshold); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s[atomicAdd(&%s[%s], 1)] = %s;\n", spikeArrayName(ng), spikeCountArrayName(ng), countIdx, localID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s[%s] = t;\n", spikeTimeArrayName(ng), spikeIdx); err != nil {
			return err
		}
		if err := emit(w, subs, ng.Snippet.Code[core.RoleReset], p.Backend, fmt.Sprintf("neuron group %q reset", ng.Name)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}

	for _, synName := range ng.IncomingSynapses {
		sg, ok := p.Model.SynapseGroup(synName)
		if !ok || sg.PSMSnippet == nil {
			continue
		}
		if err := p.genPostsynapticDecay(w, sg, localID); err != nil {
			return err
		}
	}
	return nil
}

// inSynArrayName names the per-group accumulation buffer a synapse group's
// postsynaptic model reads and decays; distinct per synapse group so two
// groups targeting the same neuron population don't collide.
func inSynArrayName(sg *model.SynapseGroup) string {
	return "inSyn_" + sg.Name
}

func (p *Pipeline) psmSubs(sg *model.SynapseGroup, localID string) (*substitution.Substitutions, error) {
	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderID, localID)
	subs.AddVarSubstitution(core.PlaceholderT, "t")
	subs.AddVarSubstitution(core.PlaceholderInSyn, fmt.Sprintf("%s[%s]", inSynArrayName(sg), localID))
	subs.AddVarSubstitution(core.PlaceholderIDPost, localID)
	if err := bindSnippetScope(subs, p.Backend, sg.PSMSnippet, sg.PSMParams, sg.PSMParams, localID, nil); err != nil {
		return nil, err
	}
	return subs, nil
}

func (p *Pipeline) genApplyInput(w io.Writer, sg *model.SynapseGroup, localID string) error {
	subs, err := p.psmSubs(sg, localID)
	if err != nil {
		return err
	}
	subs.AddVarSubstitution("Isyn", "Isyn")
	return emit(w, subs, sg.PSMSnippet.Code[core.RoleApplyInput], p.Backend, fmt.Sprintf("synapse group %q apply_input", sg.Name))
}

func (p *Pipeline) genPostsynapticDecay(w io.Writer, sg *model.SynapseGroup, localID string) error {
	subs, err := p.psmSubs(sg, localID)
	if err != nil {
		return err
	}
	return emit(w, subs, sg.PSMSnippet.Code[core.RoleDecay], p.Backend, fmt.Sprintf("synapse group %q postsynaptic decay", sg.Name))
}

func (p *Pipeline) genCurrentInjection(w io.Writer, cs *model.CurrentSource, localID string) error {
	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderID, localID)
	subs.AddVarSubstitution(core.PlaceholderT, "t")
	subs.AddFuncSubstitution(core.PlaceholderInjectCurrent, 1, "Isyn += $(0)")
	if err := bindSnippetScope(subs, p.Backend, cs.Snippet, cs.Params, cs.Params, localID, nil); err != nil {
		return err
	}
	return emit(w, subs, cs.Snippet.Code[core.RoleInjection], p.Backend, fmt.Sprintf("current source %q injection", cs.Name))
}

// genSpikeLikeEvents implements spec.md §4.5's spike-like-event detection: a
// neuron group carries one if any outgoing synapse group's weight-update
// snippet defines an event_threshold condition. That condition is written
// from the downstream synapse update's perspective, where $(name_pre) reads
// this source neuron's own state — subs already carries that aliasing, so
// resolving the condition text here and OR-ing every outgoing group's
// condition together reproduces the same test without re-deriving it.
func (p *Pipeline) genSpikeLikeEvents(w io.Writer, ng *model.NeuronGroup, subs *substitution.Substitutions, countIdx, spikeIdx string) error {
	var conditions []string
	for _, synName := range ng.OutgoingSynapses {
		sg, ok := p.Model.SynapseGroup(synName)
		if !ok || sg.WUMSnippet == nil {
			continue
		}
		cond := sg.WUMSnippet.Code[core.RoleEventThreshold]
		if cond == "" {
			continue
		}
		resolved, err := resolve(subs, cond, p.Backend, fmt.Sprintf("synapse group %q event_threshold", sg.Name))
		if err != nil {
			return err
		}
		conditions = append(conditions, "("+resolved+")")
	}
	if len(conditions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "if (%s) {\n", strings.Join(conditions, " || ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s[atomicAdd(&%s[%s], 1)] = %s;\n", spikeEventArrayName(ng), spikeEventCountArrayName(ng), countIdx, spikeIdx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
