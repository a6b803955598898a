package generator

import (
	"context"
	"fmt"
	"io"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/internal/ctxlog"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/strategy"
	"github.com/sbl8/sublation/substitution"
)

// GenerateInit emits spec.md §4.5's generate_init: per-population variable
// initialization for every neuron group and current source, then, per
// synapse group, connectivity row construction (sparse/procedural only —
// dense connectivity needs no row to build) followed by per-row variable
// initialization.
func (p *Pipeline) GenerateInit(ctx context.Context, w io.Writer) error {
	log := ctxlog.FromContext(ctx)

	if err := p.Backend.GenGlobalRNG(w); err != nil {
		return err
	}

	for _, ng := range p.Model.NeuronGroups() {
		if err := p.Backend.GenPopulationRNG(w, ng.Name, ng.Count); err != nil {
			return err
		}
		if err := p.genVarInit(w, ng.Name, ng.Count, ng.VarInits, ng.Snippet); err != nil {
			return err
		}
		if err := p.genSpikeInit(w, ng); err != nil {
			return err
		}
	}
	for _, cs := range p.Model.CurrentSources() {
		target, ok := p.Model.NeuronGroup(cs.Target)
		if !ok {
			return fmt.Errorf("generator: current source %q targets unknown group %q", cs.Name, cs.Target)
		}
		if err := p.genVarInit(w, cs.Name, target.Count, cs.VarInits, cs.Snippet); err != nil {
			return err
		}
	}
	for _, sg := range p.Model.SynapseGroups() {
		if err := p.genInSynInit(w, sg); err != nil {
			return err
		}
		if err := p.genSynapseInit(w, sg); err != nil {
			return err
		}
		if sg.Connectivity == model.MatrixConnectivitySparse && sg.HasWeightSnippetRole(core.RoleLearnPost) {
			if err := p.genInitializeSparse(w, sg); err != nil {
				return err
			}
		}
	}

	log.Info("generated init", "neuron_groups", len(p.Model.NeuronGroups()), "synapse_groups", len(p.Model.SynapseGroups()))
	return nil
}

// genVarInit emits one assignment per VarInit entry carrying an explicit
// "value" parameter. A VarInit with no "value" parameter is left at its
// backend-allocated default (spec.md is silent on richer initializer
// snippets — see the Simplifications section of DESIGN.md).
func (p *Pipeline) genVarInit(w io.Writer, groupName string, count int, varInits []model.VarInit, snippet *core.Snippet) error {
	if len(varInits) == 0 {
		return nil
	}
	return p.Backend.GenVariableInit(w, count, "count", func(w io.Writer) error {
		for _, vi := range varInits {
			value, ok := vi.Params["value"]
			if !ok {
				continue
			}
			stmt := fmt.Sprintf("%s%s[id] = %s;\n", p.Backend.GetVarPrefix(), vi.VarName, formatLiteral(value))
			if _, err := io.WriteString(w, substitution.EnsureFtype(stmt, p.Backend.Precision())); err != nil {
				return fmt.Errorf("generator: init %q.%s: %w", groupName, vi.VarName, err)
			}
		}
		return nil
	})
}

// genSpikeInit zeroes every delay slot of ng's spike count/event-count
// buffers and fills its spike-time buffer with the "never spiked" sentinel
// spec.md §4.5 requires, over every ring-buffer slot a delayed population
// carries so genQueueAdvance's later per-step rotation always starts from a
// clean slot.
func (p *Pipeline) genSpikeInit(w io.Writer, ng *model.NeuronGroup) error {
	slots := ng.NumDelaySlots
	if slots < 1 {
		slots = 1
	}
	if err := p.Backend.GenPopVariableInit(w, func(w io.Writer) error {
		for s := 0; s < slots; s++ {
			if _, err := fmt.Fprintf(w, "%s[%d] = 0;\n", spikeCountArrayName(ng), s); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s[%d] = 0;\n", spikeEventCountArrayName(ng), s); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return p.Backend.GenVariableInit(w, ng.Count*slots, "count", func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s[id] = -TIME_MAX;\n", spikeTimeArrayName(ng))
		return err
	})
}

// genInSynInit zeroes a synapse group's postsynaptic accumulation buffer
// over its target population, ahead of any update kernel ever adding to it.
// Skipped for synapse groups with no postsynaptic model, since those never
// accumulate into inSyn at all.
func (p *Pipeline) genInSynInit(w io.Writer, sg *model.SynapseGroup) error {
	if sg.PSMSnippet == nil {
		return nil
	}
	trg, ok := p.Model.NeuronGroup(sg.Trg)
	if !ok {
		return fmt.Errorf("generator: synapse group %q has unknown target %q", sg.Name, sg.Trg)
	}
	return p.Backend.GenVariableInit(w, trg.Count, "count", func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s[id] = 0;\n", inSynArrayName(sg))
		return err
	})
}

// genSynapseInit builds a synapse group's connectivity (sparse/procedural
// only) by resolving the connectivity initializer's row-build code with
// $(addSynapse, post) bound to storage-growing code, then runs per-row
// variable init through the same GenVariableInit-style handler genVarInit
// uses for populations.
func (p *Pipeline) genSynapseInit(w io.Writer, sg *model.SynapseGroup) error {
	if sg.Connectivity == model.MatrixConnectivityDense || sg.ConnectivityInit == nil {
		return p.genSynapseRowVarInit(w, sg)
	}

	src, ok := p.Model.NeuronGroup(sg.Src)
	if !ok {
		return fmt.Errorf("generator: synapse group %q has unknown source %q", sg.Name, sg.Src)
	}

	strat, err := strategy.Select(sg, p.Backend)
	if err != nil {
		return err
	}
	rowStride := core.Align32(strat.RowStride(sg))

	if err := p.Backend.GenSynapseVariableRowInit(w, sg, func(w io.Writer) error {
		rowBuild := substitution.Substitute(sg.ConnectivityInit.Code[core.RoleRowBuild], core.PlaceholderEndRow, "break;")
		addSynapse := "ind[($(id_pre) * rowStride) + rowLength[$(id_pre)]++] = $(0);"

		subs := substitution.New()
		subs.AddFuncSubstitution(core.PlaceholderAddSynapse, 1, addSynapse)

		body := fmt.Sprintf("const unsigned int rowStride = %d;\nfor (unsigned int preIdx = 0; preIdx < %d; preIdx++) {\nwhile (true) {\n%s\n}\n}\n", rowStride, src.Count, rowBuild)
		resolved, err := subs.Apply(body)
		if err != nil {
			return err
		}
		resolved = substitution.Substitute(resolved, "$("+core.PlaceholderIDPre+")", "preIdx")
		if err := substitution.CheckUnresolved(resolved, fmt.Sprintf("synapse group %q connectivity init", sg.Name)); err != nil {
			return err
		}
		_, err = io.WriteString(w, resolved)
		return err
	}); err != nil {
		return err
	}
	return p.genSynapseRowVarInit(w, sg)
}

// genInitializeSparse emits spec.md §4.5's final init step: for a sparse
// synapse group whose weight-update snippet defines learn_post, build the
// reverse, postsynaptic-indexed lookup (colLength counting how many
// connections land on each target neuron, remap listing their forward
// synapse addresses) that genLearnPostDispatch's per-postsynaptic-neuron
// loop walks. Runs once, after genSynapseInit has built the forward
// ind/rowLength row storage it reads.
func (p *Pipeline) genInitializeSparse(w io.Writer, sg *model.SynapseGroup) error {
	src, ok := p.Model.NeuronGroup(sg.Src)
	if !ok {
		return fmt.Errorf("generator: synapse group %q has unknown source %q", sg.Name, sg.Src)
	}
	trg, ok := p.Model.NeuronGroup(sg.Trg)
	if !ok {
		return fmt.Errorf("generator: synapse group %q has unknown target %q", sg.Name, sg.Trg)
	}
	strat, err := strategy.Select(sg, p.Backend)
	if err != nil {
		return err
	}
	rowStride := core.Align32(strat.RowStride(sg))
	colLength := "colLength_" + sg.Name
	remap := "remap_" + sg.Name
	return p.Backend.GenPopVariableInit(w, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "const unsigned int rowStride = %d;\n", rowStride); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "for (unsigned int j = 0; j < %d; j++) { %s[j] = 0; }\n", trg.Count, colLength); err != nil {
			return err
		}
		body := fmt.Sprintf(
			"for (unsigned int i = 0; i < %d; i++) {\n"+
				"for (unsigned int j = 0; j < rowLength[i]; j++) {\n"+
				"const unsigned int post = ind[i * rowStride + j];\n"+
				"%s[post * %d + %s[post]++] = i * rowStride + j;\n"+
				"}\n}\n",
			src.Count, remap, src.Count, colLength)
		_, err := io.WriteString(w, body)
		return err
	})
}

func (p *Pipeline) genSynapseRowVarInit(w io.Writer, sg *model.SynapseGroup) error {
	if len(sg.WUMVarInits) == 0 {
		return nil
	}
	return p.Backend.GenSynapseVariableRowInit(w, sg, func(w io.Writer) error {
		for _, vi := range sg.WUMVarInits {
			value, ok := vi.Params["value"]
			if !ok {
				continue
			}
			stmt := fmt.Sprintf("%s[synAddress] = %s;\n", vi.VarName, formatLiteral(value))
			if _, err := io.WriteString(w, substitution.EnsureFtype(stmt, p.Backend.Precision())); err != nil {
				return fmt.Errorf("generator: init %q.%s: %w", sg.Name, vi.VarName, err)
			}
		}
		return nil
	})
}
