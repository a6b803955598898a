package strategy

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/model"
)

// accumulateOptions describes which of the four addToInSyn expansions
// (spec.md §4.4's dispatch table) a given strategy invocation is entitled
// to use. denseRegister is only ever true for PostSpan over dense
// connectivity; every other combination falls through dendritic-delay,
// small-population, then the atomic fallback in that order.
type accumulateOptions struct {
	denseRegister bool
}

// inSynArrayName names the per-synapse-group postsynaptic accumulation
// buffer: the same buffer name the neuron update emitter's postsynaptic
// model reads back out of (generator.inSynArrayName mirrors this), so two
// synapse groups targeting the same population never share one array.
func inSynArrayName(sg *model.SynapseGroup) string {
	return "inSyn_" + sg.Name
}

// addToInSynTemplate renders the $(addToInSyn, $(0)) expansion for sg under
// the first matching condition in spec.md §4.4's table, top to bottom.
func addToInSynTemplate(m *model.Model, sg *model.SynapseGroup, be backend.Backend, opts accumulateOptions) (string, error) {
	if sg.IsDendriticDelayRequired {
		add, err := be.FloatAtomicAdd(be.Precision())
		if err != nil {
			return "", err
		}
		return wrapAtomic(add, fmt.Sprintf("denDelay[offset + $(id_post)]")), nil
	}
	if smallPopulationApplies(m, sg, be) {
		add, err := be.FloatAtomicAdd(be.Precision())
		if err != nil {
			return "", err
		}
		return wrapAtomic(add, "shLg[$(id_post)]"), nil
	}
	if opts.denseRegister {
		return "linSyn += $(0)", nil
	}
	accumTarget := fmt.Sprintf("%s[$(id_post)]", inSynArrayName(sg))
	add, err := be.FloatAtomicAdd(be.Precision())
	if err != nil {
		return "", err
	}
	return wrapAtomic(add, accumTarget), nil
}

// wrapAtomic renders call(&target, $(0)); a backend whose FloatAtomicAdd
// returns "" (the CPU backend's single-threaded "no call needed" answer)
// degrades to a plain "+=" instead of an empty function call.
func wrapAtomic(call, target string) string {
	if call == "" {
		return target + " += $(0)"
	}
	return fmt.Sprintf("%s(&%s, $(0))", call, target)
}

// genFlushRegister emits the register-to-inSyn flush PostSpan's postamble
// performs when the dense-register optimization applied during GenUpdate.
func genFlushRegister(w io.Writer, sg *model.SynapseGroup, be backend.Backend) error {
	target := fmt.Sprintf("%s[$(id_post)]", inSynArrayName(sg))
	if sg.IsPSModelMerged {
		add, err := be.FloatAtomicAdd(be.Precision())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s(&%s, linSyn);\n", add, target)
		return err
	}
	_, err := fmt.Fprintf(w, "%s += linSyn;\n", target)
	return err
}

// genFlushSharedAccumulator emits the shared-accumulator-to-inSyn flush the
// small-population optimization requires in any strategy's postamble.
func genFlushSharedAccumulator(w io.Writer, sg *model.SynapseGroup, be backend.Backend) error {
	target := fmt.Sprintf("%s[$(id_post)]", inSynArrayName(sg))
	add, err := be.FloatAtomicAdd(be.Precision())
	if err != nil {
		return err
	}
	if add == "" {
		_, err = fmt.Fprintf(w, "%s += shLg[$(id_post)];\n", target)
		return err
	}
	_, err = fmt.Fprintf(w, "%s(&%s, shLg[$(id_post)]);\n", add, target)
	return err
}
