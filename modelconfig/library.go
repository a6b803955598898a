package modelconfig

import (
	"math"

	"github.com/sbl8/sublation/core"
)

// neuronModel returns a fresh copy of a builtin neuron snippet named name,
// or nil if name is not in the library. Every call returns an independent
// *core.Snippet, so no two groups share one snippet value.
func neuronModel(name string) *core.Snippet {
	switch name {
	case "LIF":
		return lifSnippet()
	case "Izhikevich":
		return izhikevichSnippet()
	case "SpikeSourceArray":
		return spikeSourceArraySnippet()
	default:
		return nil
	}
}

// weightUpdateModel returns a fresh copy of a builtin weight-update
// snippet named name, or nil if name is not in the library.
func weightUpdateModel(name string) *core.Snippet {
	switch name {
	case "StaticPulse":
		return staticPulseSnippet()
	case "StaticGraded":
		return staticGradedSnippet()
	default:
		return nil
	}
}

// postsynapticModel returns a fresh copy of a builtin postsynaptic-model
// snippet named name, or nil if name is not in the library.
func postsynapticModel(name string) *core.Snippet {
	switch name {
	case "ExpCond":
		return expCondSnippet()
	default:
		return nil
	}
}

// lifSnippet is the standard leaky integrate-and-fire neuron: a single
// state variable V decaying towards Vrest, spiking and resetting at
// Vthresh. Grounded on the original's LIF neuron model (the textbook
// formulation spec.md §9's glossary cites as the reference case for
// threshold/reset semantics).
func lifSnippet() *core.Snippet {
	s := core.NewSnippet("LIF")
	s.ParamNames = []string{"C", "TauM", "Vrest", "Vreset", "Vthresh", "Ioffset"}
	s.DerivedParams = []core.DerivedParam{
		{Name: "ExpTC", Func: func(p []float64, dt float64) float64 {
			return math.Exp(-dt / p[1])
		}},
		{Name: "Rmembrane", Func: func(p []float64, dt float64) float64 {
			return p[1] / p[0]
		}},
	}
	s.Vars = []core.Var{{Name: "V", Type: "scalar", Access: core.VarAccessReadWrite}}
	s.Code[core.RoleSim] = "$(V) = $(ExpTC) * $(V) + (1.0 - $(ExpTC)) * ($(Rmembrane) * ($(Ioffset) + $(Isyn)) + $(Vrest));"
	s.Code[core.RoleThreshold] = "$(V) >= $(Vthresh)"
	s.Code[core.RoleReset] = "$(V) = $(Vreset);"
	return s
}

// izhikevichSnippet is the two-variable Izhikevich neuron (V, U), a
// quadratic spike-generation model distinct from LIF's linear decay.
// Grounded on the original's Izhikevich neuron model.
func izhikevichSnippet() *core.Snippet {
	s := core.NewSnippet("Izhikevich")
	s.ParamNames = []string{"a", "b", "c", "d"}
	s.Vars = []core.Var{
		{Name: "V", Type: "scalar", Access: core.VarAccessReadWrite},
		{Name: "U", Type: "scalar", Access: core.VarAccessReadWrite},
	}
	s.Code[core.RoleSim] = "" +
		"$(V) += 0.5 * (0.04 * $(V) * $(V) + 5.0 * $(V) + 140.0 - $(U)) * DT;\n" +
		"$(V) += 0.5 * (0.04 * $(V) * $(V) + 5.0 * $(V) + 140.0 - $(U)) * DT;\n" +
		"$(U) += $(a) * ($(b) * $(V) - $(U)) * DT;"
	s.Code[core.RoleThreshold] = "$(V) >= 30.0"
	s.Code[core.RoleReset] = "$(V) = $(c);\n$(U) += $(d);"
	return s
}

// spikeSourceArraySnippet has no state of its own to decay: a stand-in for
// the original's externally-driven spike source, kept here as the library
// entry with an empty sim role and a threshold that always reads false —
// a real implementation would thread a per-group spike time array through
// an ExtraGlobalParam, which this front end does not yet expose.
func spikeSourceArraySnippet() *core.Snippet {
	s := core.NewSnippet("SpikeSourceArray")
	s.Code[core.RoleThreshold] = "false"
	return s
}

// staticPulseSnippet is the standard fixed-weight synapse: add a constant
// conductance g to the target's accumulated input on every presynaptic
// spike. Grounded on the original's StaticPulse weight update model.
func staticPulseSnippet() *core.Snippet {
	s := core.NewSnippet("StaticPulse")
	s.Vars = []core.Var{{Name: "g", Type: "scalar", Access: core.VarAccessReadOnly}}
	s.Code[core.RoleSim] = "$(addToInSyn, $(g));"
	return s
}

// staticGradedSnippet is a graded-release synapse whose contribution
// depends on the event-threshold re-test (spec.md §4.4): it only
// contributes while the presynaptic event condition holds, scaled by a
// fixed gain.
func staticGradedSnippet() *core.Snippet {
	s := core.NewSnippet("StaticGraded")
	s.ParamNames = []string{"Gain"}
	s.Vars = []core.Var{{Name: "g", Type: "scalar", Access: core.VarAccessReadOnly}}
	s.Code[core.RoleEventThreshold] = "$(V_pre) > -20.0"
	s.Code[core.RoleSim] = "$(addToInSyn, $(g) * $(Gain));"
	return s
}

// expCondSnippet is the standard single-exponential-decay postsynaptic
// current model: inSyn decays towards zero between spikes with time
// constant Tau, and on every step the decayed inSyn is folded into Isyn.
func expCondSnippet() *core.Snippet {
	s := core.NewSnippet("ExpCond")
	s.ParamNames = []string{"Tau"}
	s.DerivedParams = []core.DerivedParam{
		{Name: "ExpDecay", Func: func(p []float64, dt float64) float64 {
			return math.Exp(-dt / p[0])
		}},
	}
	s.Code[core.RoleApplyInput] = "$(Isyn) += $(inSyn);"
	s.Code[core.RoleDecay] = "$(inSyn) *= $(ExpDecay);"
	return s
}

// currentSourceModel returns a fresh copy of a builtin current-source
// snippet named name, or nil if name is not in the library.
func currentSourceModel(name string) *core.Snippet {
	switch name {
	case "DC":
		return dcCurrentSourceSnippet()
	default:
		return nil
	}
}

// dcCurrentSourceSnippet is a constant current injection: spec.md §8
// scenario 4's "a DC current source (amp = 0.7) produces ... Isyn +=
// 0.7;" is exactly this snippet's injection_code once the generator binds
// $(injectCurrent, value) per its own spec.
func dcCurrentSourceSnippet() *core.Snippet {
	s := core.NewSnippet("DC")
	s.ParamNames = []string{"amp"}
	s.Code[core.RoleInjection] = "$(injectCurrent, $(amp));"
	return s
}
