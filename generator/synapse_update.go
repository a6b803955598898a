package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/internal/ctxlog"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/strategy"
	"github.com/sbl8/sublation/substitution"
)

// GenerateSynapseUpdate emits spec.md §4.5's generate_synapse_update: for
// each synapse group, in Model order, select a presynaptic update strategy
// (spec.md §4.4) and drive its GenPreamble/GenUpdate/GenPostamble contract
// inside one parallel dispatch sized by the strategy's own thread count.
//
// The strategy's own GenUpdate resolves its body through the subs this
// emitter binds and checks it for unresolved placeholders before returning
// text. GenPreamble and GenPostamble resolve nothing: they leave the outer,
// per-thread scope symbols (such as the $(id_post) flush index the
// small-population and dense-register postambles reference) in place.
// This emitter collects preamble+update+postamble into one buffer per
// group and runs exactly one more Substitutions.Apply pass over the whole
// thing to fill those in, then checks unresolved once before committing to
// w — the same "assemble once, resolve once, check once" discipline
// strategy's own GenUpdate methods use internally.
func (p *Pipeline) GenerateSynapseUpdate(ctx context.Context, w io.Writer) error {
	log := ctxlog.FromContext(ctx)

	if err := p.Backend.GenKernelPreamble(w); err != nil {
		return err
	}

	for _, sg := range p.Model.SynapseGroups() {
		strat, err := strategy.Select(sg, p.Backend)
		if err != nil {
			return err
		}

		groups := []backend.ParallelGroup{{Name: sg.Name, Count: strat.NumThreads(p.Model, sg)}}
		handler := func(w io.Writer, group backend.ParallelGroup, localID string) error {
			return p.genSynapseGroupUpdate(w, sg, strat, localID)
		}

		if err := p.Backend.GenParallelGroup(w, groups, nil, handler); err != nil {
			return fmt.Errorf("synapse group %q: %w", sg.Name, err)
		}

		if sg.Connectivity == model.MatrixConnectivitySparse {
			if sg.HasWeightSnippetRole(core.RoleSynapseDynamics) {
				if err := p.genSynapseDynamicsDispatch(w, sg); err != nil {
					return fmt.Errorf("synapse group %q synapse_dynamics: %w", sg.Name, err)
				}
			}
			if sg.HasWeightSnippetRole(core.RoleLearnPost) {
				if err := p.genLearnPostDispatch(w, sg); err != nil {
					return fmt.Errorf("synapse group %q learn_post: %w", sg.Name, err)
				}
			}
		}
	}

	if err := p.Backend.GenKernelPostamble(w); err != nil {
		return err
	}
	log.Info("generated synapse update", "groups", len(p.Model.SynapseGroups()))
	return nil
}

func (p *Pipeline) genSynapseGroupUpdate(w io.Writer, sg *model.SynapseGroup, strat strategy.Strategy, localID string) error {
	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderT, "t")
	src, _ := p.Model.NeuronGroup(sg.Src)
	trg, _ := p.Model.NeuronGroup(sg.Trg)
	if sg.Span == model.SpanPresynaptic {
		subs.AddVarSubstitution(core.PlaceholderIDPre, localID)
		// the small-population flush walks the block's own thread index,
		// independent of which presynaptic neuron this thread is driving.
		subs.AddVarSubstitution(core.PlaceholderIDPost, "threadIdx.x")
		bindCrossGroupVars(subs, src, sg, "_pre", localID)
		// PreSpanProcedural's postsynaptic index is only known inside its own
		// row-build loop, as the deferred "$(0)" function-template
		// placeholder, so it binds its own $(X_post) aliases itself;
		// PreSpan's per-connection postsynaptic index is the fixed "ipost"
		// local its GenUpdate declares.
		if strat.Name() == "pre_span" {
			bindCrossGroupVars(subs, trg, sg, "_post", "ipost")
		}
	} else {
		subs.AddVarSubstitution(core.PlaceholderIDPost, localID)
		bindCrossGroupVars(subs, trg, sg, "_post", localID)
		// PostSpan's per-connection presynaptic index is the fixed "shSpk[j]"
		// local its GenUpdate declares.
		bindCrossGroupVars(subs, src, sg, "_pre", "shSpk[j]")
	}
	if sg.WUMSnippet != nil {
		if err := bindSnippetScope(subs, p.Backend, sg.WUMSnippet, sg.WUMParams, sg.WUMParams, localID, nil); err != nil {
			return err
		}
	}

	var body bytes.Buffer
	if sg.Connectivity == model.MatrixConnectivitySparse || sg.Connectivity == model.MatrixConnectivityBitmask {
		if _, err := fmt.Fprintf(&body, "const unsigned int rowStride = %d;\n", core.Align32(strat.RowStride(sg))); err != nil {
			return err
		}
	}
	if err := strat.GenPreamble(&body, p.Model, sg, p.Backend); err != nil {
		return err
	}
	if err := strat.GenUpdate(&body, p.Model, sg, p.Backend, subs); err != nil {
		return err
	}
	if err := strat.GenPostamble(&body, p.Model, sg, p.Backend); err != nil {
		return err
	}

	resolved, err := resolve(subs, body.String(), p.Backend, fmt.Sprintf("synapse group %q update", sg.Name))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, resolved)
	return err
}

// genSynapseDynamicsDispatch emits spec.md §4.5's synapse_dynamics step: a
// separate parallel dispatch, one thread per connection, running after the
// main strategy update so continuous per-synapse state (e.g. a dynamical
// weight model) advances once per step regardless of whether that step
// carried a presynaptic spike. Scoped to sparse connectivity only — spec.md
// never requires this role for dense or procedural groups in any example
// this repo carries, and a dense/procedural row-build loop has no single
// stored connection index for $(id_syn) to name.
func (p *Pipeline) genSynapseDynamicsDispatch(w io.Writer, sg *model.SynapseGroup) error {
	src, _ := p.Model.NeuronGroup(sg.Src)
	count := 0
	if src != nil {
		count = src.Count * sg.MaxConnections
	}
	groups := []backend.ParallelGroup{{Name: sg.Name + "_synapseDynamics", Count: count}}
	handler := func(w io.Writer, group backend.ParallelGroup, localID string) error {
		subs := substitution.New()
		subs.AddVarSubstitution(core.PlaceholderT, "t")
		subs.AddVarSubstitution(core.PlaceholderIDSyn, localID)
		if err := bindSnippetScope(subs, p.Backend, sg.WUMSnippet, sg.WUMParams, sg.WUMParams, localID, nil); err != nil {
			return err
		}
		return emit(w, subs, sg.WUMSnippet.Code[core.RoleSynapseDynamics], p.Backend, fmt.Sprintf("synapse group %q synapse_dynamics", sg.Name))
	}
	return p.Backend.GenParallelGroup(w, groups, nil, handler)
}

// genLearnPostDispatch emits spec.md §4.5's learn_post step: a dispatch
// over the postsynaptic population so postsynaptic-driven plasticity (e.g.
// a postsynaptic spike updating every incoming connection's trace) runs
// once per postsynaptic spike, over every incoming connection, rather than
// once per presynaptic connection: each thread tests whether its neuron's
// spike time equals the current time t before walking its connections.
// Walks the colLength/remap reverse lookup
// genInitializeSparse built, binding $(id_syn) to each connection's forward
// synapse address in turn. Scoped to sparse connectivity for the same
// reason as synapse_dynamics.
func (p *Pipeline) genLearnPostDispatch(w io.Writer, sg *model.SynapseGroup) error {
	trg, ok := p.Model.NeuronGroup(sg.Trg)
	if !ok {
		return fmt.Errorf("generator: synapse group %q: target population %q not found", sg.Name, sg.Trg)
	}
	src, ok := p.Model.NeuronGroup(sg.Src)
	if !ok {
		return fmt.Errorf("generator: synapse group %q: source population %q not found", sg.Name, sg.Src)
	}
	colLength := "colLength_" + sg.Name
	remap := "remap_" + sg.Name
	groups := []backend.ParallelGroup{{Name: sg.Name + "_learnPost", Count: trg.Count}}
	handler := func(w io.Writer, group backend.ParallelGroup, localID string) error {
		synID := "synAddress"
		subs := substitution.New()
		subs.AddVarSubstitution(core.PlaceholderT, "t")
		subs.AddVarSubstitution(core.PlaceholderIDPost, localID)
		subs.AddVarSubstitution(core.PlaceholderIDSyn, synID)
		if err := bindSnippetScope(subs, p.Backend, sg.WUMSnippet, sg.WUMParams, sg.WUMParams, synID, nil); err != nil {
			return err
		}
		bindCrossGroupVars(subs, trg, sg, "_post", localID)
		resolved, err := resolve(subs, sg.WUMSnippet.Code[core.RoleLearnPost], p.Backend, fmt.Sprintf("synapse group %q learn_post", sg.Name))
		if err != nil {
			return err
		}
		spikeIdx := localID
		if slot := currentSlotExpr(trg); slot != "" {
			spikeIdx = fmt.Sprintf("(%s) * %d + %s", slot, trg.Count, localID)
		}
		_, err = fmt.Fprintf(w,
			"if (%s[%s] == t) {\n"+
				"for (unsigned int c = 0; c < %s[%s]; c++) {\n"+
				"const unsigned int %s = %s[%s * %d + c];\n"+
				"%s"+
				"}\n}\n",
			spikeTimeArrayName(trg), spikeIdx, colLength, localID, synID, remap, localID, src.Count, resolved)
		return err
	}
	return p.Backend.GenParallelGroup(w, groups, nil, handler)
}
