package generator

import (
	"fmt"
	"io"

	"github.com/iancoleman/strcase"

	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// groupIdent runs a user-supplied group name through strcase.ToSnake so
// that names with mixed case or separators ("Pop 1") still produce a
// single legal C identifier fragment once concatenated into one of this
// file's array names.
func groupIdent(name string) string {
	return strcase.ToSnake(name)
}

// queuePtrName names the per-population ring-buffer pointer spec.md §4.5's
// pre-reset kernel advances once per step: the delay slot a queued
// population is currently writing spikes and queued variables into.
func queuePtrName(ng *model.NeuronGroup) string {
	return "spkQuePtr_" + groupIdent(ng.Name)
}

func spikeArrayName(ng *model.NeuronGroup) string      { return "spk_" + groupIdent(ng.Name) }
func spikeCountArrayName(ng *model.NeuronGroup) string { return "spkCnt_" + groupIdent(ng.Name) }
func spikeTimeArrayName(ng *model.NeuronGroup) string  { return "sT_" + groupIdent(ng.Name) }
func spikeEventArrayName(ng *model.NeuronGroup) string { return "spkEvnt_" + groupIdent(ng.Name) }
func spikeEventCountArrayName(ng *model.NeuronGroup) string {
	return "spkCntEvnt_" + groupIdent(ng.Name)
}

// currentSlotExpr is the ring-buffer slot a queued population writes to
// and reads its own undelayed state from at the current timestep, or ""
// for a population with no delay slots at all (NumDelaySlots == 1).
func currentSlotExpr(ng *model.NeuronGroup) string {
	if ng.NumDelaySlots <= 1 {
		return ""
	}
	return queuePtrName(ng)
}

// delayedSlotExpr is the ring-buffer slot holding the value ng's own
// population wrote delaySteps steps ago, spec.md §3's "current or
// previous queue offset" invariant for a $(X_pre) reference crossing a
// delayed synapse group.
func delayedSlotExpr(ng *model.NeuronGroup, delaySteps int) string {
	if ng.NumDelaySlots <= 1 || delaySteps <= 0 {
		return currentSlotExpr(ng)
	}
	return fmt.Sprintf("(%s + %d) %% %d", queuePtrName(ng), ng.NumDelaySlots-delaySteps, ng.NumDelaySlots)
}

// neuronVarAccess resolves variable varName of ng at idExpr, indexed
// through ng's own ring buffer when Finalize marked varName queue
// required. It is the one place neuron-owned variable accesses are built,
// shared by bindSnippetScope (this group's own sim/reset code) and
// genNeuronGroupUpdate's $(name_pre) aliasing for spike-like-event
// detection.
func neuronVarAccess(ng *model.NeuronGroup, varName, idExpr string) string {
	queueOffset, stride := "", 0
	if ng.IsQueueRequired[varName] {
		queueOffset, stride = currentSlotExpr(ng), ng.Count
	}
	return substitution.NameSubstitution("$("+varName+")", []string{varName}, idExpr, queueOffset, stride, "")
}

// bindCrossGroupVars registers, on subs's top frame, one $(name+suffix)
// substitution per variable ng's snippet declares, resolving to the
// indexed access spec.md §3/§6 require at a downstream synapse group's
// update: a plain access at idExpr normally, or the delayed ring-buffer
// slot Finalize assigned when sg carries a delay and ng.IsQueueRequired
// marks that variable. Only suffix "_pre" ever carries a delay — spec.md's
// queue propagation only ever widens a source population's own delay, a
// postsynaptic reference is always read undelayed.
func bindCrossGroupVars(subs *substitution.Substitutions, ng *model.NeuronGroup, sg *model.SynapseGroup, suffix, idExpr string) {
	if ng == nil || ng.Snippet == nil {
		return
	}
	for _, v := range ng.Snippet.Vars {
		queueOffset, stride := "", 0
		if suffix == "_pre" && sg.DelaySteps > 0 && ng.IsQueueRequired[v.Name] {
			queueOffset, stride = delayedSlotExpr(ng, sg.DelaySteps), ng.Count
		}
		value := substitution.NameSubstitution("$("+v.Name+suffix+")", []string{v.Name}, idExpr, queueOffset, stride, suffix)
		subs.AddVarSubstitution(v.Name+suffix, value)
	}
}

// genQueueAdvance emits spec.md §4.5's pre-reset kernel: once per step,
// ahead of the main neuron update dispatch, every delayed population's
// queue pointer advances to the next ring-buffer slot and that slot's
// spike count is zeroed ready for this step's spikes. Wrapped in
// Backend.GenPopVariableInit so CUDA runs it from a single thread per
// population and CPU runs it directly, the same one-thread-per-population
// contract GenerateInit's own per-population setup already relies on.
func (p *Pipeline) genQueueAdvance(w io.Writer) error {
	for _, ng := range p.Model.NeuronGroups() {
		delayed := ng.NumDelaySlots > 1
		if err := p.Backend.GenPopVariableInit(w, func(w io.Writer) error {
			slot := "0"
			if delayed {
				slot = queuePtrName(ng)
				if _, err := fmt.Fprintf(w, "%s = (%s + 1) %% %d;\n", slot, slot, ng.NumDelaySlots); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s[%s] = 0;\n", spikeCountArrayName(ng), slot); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%s[%s] = 0;\n", spikeEventCountArrayName(ng), slot)
			return err
		}); err != nil {
			return fmt.Errorf("generator: queue advance for neuron group %q: %w", ng.Name, err)
		}
	}
	return nil
}
