// Package modelconfig is spec.md §6.1's supplemental declarative front
// end: an HCL document describing neuron populations, synapse populations
// and current sources, decoded into a Spec and then replayed against a
// model.Model as the equivalent sequence of Add* calls. Grounded on
// specialistvlad-burstgridgo/internal/hcl_adapter's use of
// github.com/hashicorp/hcl/v2 and github.com/zclconf/go-cty to turn HCL
// blocks into typed Go values — this package is the one home in the
// repository those two libraries have, since the core Model/generator API
// itself is a pure in-memory Go API with no text format of its own.
package modelconfig

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/sbl8/sublation/internal/ctxlog"
	"github.com/sbl8/sublation/model"
)

// NeuronPopulationSpec is one decoded "neuron_population" block.
type NeuronPopulationSpec struct {
	Name   string
	Count  int
	Model  string
	Params map[string]float64
}

// SynapsePopulationSpec is one decoded "synapse_population" block.
type SynapsePopulationSpec struct {
	Name           string
	Src            string
	Trg            string
	Connectivity   string
	DelaySteps     int
	MaxConnections int

	WUM       string
	WUMParams map[string]float64

	PSM       string
	PSMParams map[string]float64
}

// CurrentSourceSpec is one decoded "current_source" block.
type CurrentSourceSpec struct {
	Name   string
	Target string
	Model  string
	Params map[string]float64
}

// ModelSpec is one decoded "model" block: its own settings plus every
// population/source nested inside it.
type ModelSpec struct {
	Name      string
	Precision string
	DT        float64
	Seed      int

	NeuronPopulations  []NeuronPopulationSpec
	SynapsePopulations []SynapsePopulationSpec
	CurrentSources     []CurrentSourceSpec
}

// Spec is the fully decoded contents of one or more HCL documents: zero or
// more "model" blocks, ready to be replayed onto a model.Model via Apply.
type Spec struct {
	Models []ModelSpec
}

// Load parses an HCL document from r and decodes it into a Spec. name is
// used only for diagnostics (typically the source file path); it need not
// resolve to a real file.
func Load(ctx context.Context, r io.Reader, name string) (*Spec, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("modelconfig: reading %s: %w", name, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("modelconfig: parsing %s: %w", name, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("modelconfig: decoding %s: %w", name, diags)
	}

	spec := &Spec{}
	for _, mb := range root.Models {
		ms, err := translateModelBlock(mb)
		if err != nil {
			return nil, fmt.Errorf("modelconfig: model %q: %w", mb.Name, err)
		}
		spec.Models = append(spec.Models, ms)
	}

	logger.Debug("modelconfig loaded", "source", name, "models", len(spec.Models))
	return spec, nil
}

func translateModelBlock(mb *modelBlock) (ModelSpec, error) {
	ms := ModelSpec{Name: mb.Name, Precision: mb.Precision, DT: mb.DT, Seed: mb.Seed}

	for _, np := range mb.NeuronPopulations {
		params, err := decodeParams(np.Params)
		if err != nil {
			return ModelSpec{}, fmt.Errorf("neuron_population %q: %w", np.Name, err)
		}
		ms.NeuronPopulations = append(ms.NeuronPopulations, NeuronPopulationSpec{
			Name: np.Name, Count: np.Count, Model: np.Model, Params: params,
		})
	}

	for _, sp := range mb.SynapsePopulations {
		wumParams, err := decodeParams(sp.WUMParams)
		if err != nil {
			return ModelSpec{}, fmt.Errorf("synapse_population %q: wum_params: %w", sp.Name, err)
		}
		psmParams, err := decodeParams(sp.PSMParams)
		if err != nil {
			return ModelSpec{}, fmt.Errorf("synapse_population %q: psm_params: %w", sp.Name, err)
		}
		ms.SynapsePopulations = append(ms.SynapsePopulations, SynapsePopulationSpec{
			Name: sp.Name, Src: sp.Src, Trg: sp.Trg,
			Connectivity: sp.Connectivity, DelaySteps: sp.DelaySteps, MaxConnections: sp.MaxConnections,
			WUM: sp.WUM, WUMParams: wumParams,
			PSM: sp.PSM, PSMParams: psmParams,
		})
	}

	for _, cs := range mb.CurrentSources {
		params, err := decodeParams(cs.Params)
		if err != nil {
			return ModelSpec{}, fmt.Errorf("current_source %q: %w", cs.Name, err)
		}
		ms.CurrentSources = append(ms.CurrentSources, CurrentSourceSpec{
			Name: cs.Name, Target: cs.Target, Model: cs.Model, Params: params,
		})
	}

	return ms, nil
}

// decodeParams reads every attribute of a "params { ... }" block as a
// number. A nil block (the "params" block was omitted entirely) decodes to
// an empty, non-nil map; a parameter the snippet declares but the block
// omits is reported as missing by Model.Finalize.
func decodeParams(b *paramsBlock) (map[string]float64, error) {
	out := make(map[string]float64)
	if b == nil || b.Body == nil {
		return out, nil
	}
	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		f, err := ctyToFloat(name, val)
		if err != nil {
			return nil, err
		}
		out[name] = f
	}
	return out, nil
}

func ctyToFloat(name string, v cty.Value) (float64, error) {
	if v.Type() != cty.Number {
		return 0, fmt.Errorf("attribute %q must be a number, got %s", name, v.Type().FriendlyName())
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}

// Apply replays every decoded model onto m via the equivalent Add* calls.
// If m already has a name set that differs from a ModelSpec's Name, Apply
// leaves m's own name untouched — Spec describes populations and sources,
// not model identity, which the caller already controls by constructing m.
func (s *Spec) Apply(m *model.Model) error {
	for _, ms := range s.Models {
		if err := ms.apply(m); err != nil {
			return err
		}
	}
	return nil
}

func (ms *ModelSpec) apply(m *model.Model) error {
	for _, np := range ms.NeuronPopulations {
		snippet := neuronModel(np.Model)
		if snippet == nil {
			return fmt.Errorf("modelconfig: neuron_population %q: unknown model %q", np.Name, np.Model)
		}
		if _, err := m.AddNeuronPopulation(np.Name, np.Count, snippet, np.Params, nil, 0); err != nil {
			return fmt.Errorf("modelconfig: neuron_population %q: %w", np.Name, err)
		}
	}

	for _, sp := range ms.SynapsePopulations {
		wum := weightUpdateModel(sp.WUM)
		if wum == nil {
			return fmt.Errorf("modelconfig: synapse_population %q: unknown weight update model %q", sp.Name, sp.WUM)
		}
		psmSnippet := postsynapticModel(sp.PSM)

		connectivity, err := parseConnectivity(sp.Connectivity)
		if err != nil {
			return fmt.Errorf("modelconfig: synapse_population %q: %w", sp.Name, err)
		}

		sg, err := m.AddSynapsePopulation(sp.Name, connectivity, sp.DelaySteps, sp.Src, sp.Trg,
			wum, sp.WUMParams, nil, nil, nil,
			psmSnippet, sp.PSMParams, nil, nil)
		if err != nil {
			return fmt.Errorf("modelconfig: synapse_population %q: %w", sp.Name, err)
		}
		if sp.MaxConnections > 0 {
			sg.MaxConnections = sp.MaxConnections
		}
	}

	for _, cs := range ms.CurrentSources {
		snippet := currentSourceModel(cs.Model)
		if snippet == nil {
			return fmt.Errorf("modelconfig: current_source %q: unknown model %q", cs.Name, cs.Model)
		}
		if _, err := m.AddCurrentSource(cs.Name, snippet, cs.Target, cs.Params, nil); err != nil {
			return fmt.Errorf("modelconfig: current_source %q: %w", cs.Name, err)
		}
	}

	return nil
}

func parseConnectivity(s string) (model.MatrixConnectivity, error) {
	switch s {
	case "", "sparse":
		return model.MatrixConnectivitySparse, nil
	case "dense":
		return model.MatrixConnectivityDense, nil
	case "bitmask":
		return model.MatrixConnectivityBitmask, nil
	case "procedural":
		return model.MatrixConnectivityProcedural, nil
	default:
		return 0, fmt.Errorf("unknown connectivity %q", s)
	}
}
