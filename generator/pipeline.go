// Package generator drives a finalized Model and Backend pair through
// spec.md §4.5's three top-level emitters: neuron update, synapse update,
// and variable/connectivity init. Grounded on runtime/runtime.go's single
// scheduling loop over TaskGroups, generalized from "run tasks in
// dependency order" to "emit code for groups in a fixed, deterministic
// order" — the generator itself never runs concurrently (spec.md §5); the
// original's worker-pool machinery (runtime/arena.go's StreamScheduler) has
// no role here and was not carried over.
package generator

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// Pipeline holds the one finalized Model and the one Backend every emitter
// call targets.
type Pipeline struct {
	Model   *model.Model
	Backend backend.Backend
}

// New returns a Pipeline over m and be. m must already be finalized —
// every emitter relies on Model.Finalize's derived parameters, delay/queue
// facts and postsynaptic merge decisions having already been computed.
func New(m *model.Model, be backend.Backend) (*Pipeline, error) {
	if !m.IsFinalized() {
		return nil, fmt.Errorf("generator: model %q is not finalized", m.Name())
	}
	return &Pipeline{Model: m, Backend: be}, nil
}

// bindSnippetScope registers, on the top frame of subs, one $(name) literal
// substitution per parameter, derived parameter and variable snippet
// declares, scoped to one group instance accessed at localID, then binds
// the six $(gennrand_*) primitives spec.md §6 requires against be. Extra
// global parameters resolve to their own global symbol name, not an
// indexed access: $(egpName) becomes the bare identifier egpName.
//
// ng is the neuron group that owns snippet when snippet is a neuron
// group's own sim/threshold/reset code, or nil for every other caller
// (postsynaptic models, current sources, weight-update code scoped by
// synapse address). Only a neuron group's own variables can carry a
// Finalize-assigned delay queue, so only those callers route their
// variable accesses through neuronVarAccess's ring-buffer indexing.
func bindSnippetScope(subs *substitution.Substitutions, be backend.Backend, snippet *core.Snippet, params, derived map[string]float64, localID string, ng *model.NeuronGroup) error {
	for _, p := range snippet.ParamNames {
		subs.AddVarSubstitution(p, formatLiteral(params[p]))
	}
	for _, dp := range snippet.DerivedParams {
		subs.AddVarSubstitution(dp.Name, formatLiteral(derived[dp.Name]))
	}
	for _, v := range snippet.Vars {
		access := fmt.Sprintf("%s[%s]", v.Name, localID)
		if ng != nil {
			access = neuronVarAccess(ng, v.Name, localID)
		}
		subs.AddVarSubstitution(v.Name, access)
	}
	for _, egp := range snippet.ExtraGlobalParams {
		subs.AddVarSubstitution(egp.Name, egp.Name)
	}
	return bindRNGScope(subs, be)
}

// rngArity lists the fixed argument count spec.md §6's six $(gennrand_*)
// primitives each take, matching CPUBackend's and CUDABackend's own
// rngTable entries.
var rngArity = map[string]int{
	"gennrand_uniform":     0,
	"gennrand_normal":      0,
	"gennrand_exponential": 0,
	"gennrand_log_normal":  2,
	"gennrand_gamma":       1,
	"gennrand_binomial":    2,
}

// bindRNGScope registers every $(gennrand_*) primitive as a function
// substitution resolving to be's own call text. Backend.RNGCall's args
// parameter is handed placeholder text ("$(0)", "$(1)", ...) rather than
// real arguments: both CPUBackend and CUDABackend only fmt.Sprintf args
// into their call text, so the text they return still carries those
// placeholders for FunctionSubstitute's renderFuncTemplate to fill once
// the primitive is actually invoked with real arguments.
func bindRNGScope(subs *substitution.Substitutions, be backend.Backend) error {
	for name, arity := range rngArity {
		args := make([]string, arity)
		for i := range args {
			args[i] = fmt.Sprintf("$(%d)", i)
		}
		template, err := be.RNGCall(name, args)
		if err != nil {
			return fmt.Errorf("generator: binding %q: %w", name, err)
		}
		subs.AddFuncSubstitution(name, arity, template)
	}
	return nil
}

func formatLiteral(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// emit resolves code through subs, coerces literals and math calls to be's
// precision, fails if anything remains unresolved, and writes the result
// to w. Skips entirely on an empty code string — not every snippet defines
// every role. label identifies the snippet/role pair in diagnostics.
func emit(w io.Writer, subs *substitution.Substitutions, code string, be backend.Backend, label string) error {
	if code == "" {
		return nil
	}
	resolved, err := resolve(subs, code, be, label)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, resolved)
	if err != nil {
		return err
	}
	return writeTrailingNewline(w, resolved)
}

// resolve is emit's non-writing half: apply, coerce, check. Exposed
// separately so callers needing the resolved text itself (e.g. to use a
// threshold condition inside an "if" guard) don't have to re-derive it.
func resolve(subs *substitution.Substitutions, code string, be backend.Backend, label string) (string, error) {
	resolved, err := subs.Apply(code)
	if err != nil {
		return "", err
	}
	resolved = substitution.EnsureFtype(resolved, be.Precision())
	if err := substitution.CheckUnresolved(resolved, label); err != nil {
		return "", err
	}
	return resolved, nil
}

func writeTrailingNewline(w io.Writer, s string) error {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
