package modelconfig

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block an HCL document may declare. A
// document with no "model" block at all is valid — Load just returns a
// Spec with an empty Models slice — so every field is optional.
type fileRoot struct {
	Models []*modelBlock `hcl:"model,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// modelBlock is spec.md §6.1's top-level "model <name> { ... }" container:
// the handful of Model-level settings plus the population/source blocks
// nested inside it.
type modelBlock struct {
	Name string `hcl:"name,label"`

	Precision string  `hcl:"precision,optional"`
	DT        float64 `hcl:"dt,optional"`
	Seed      int     `hcl:"seed,optional"`

	NeuronPopulations  []*neuronPopulationBlock  `hcl:"neuron_population,block"`
	SynapsePopulations []*synapsePopulationBlock `hcl:"synapse_population,block"`
	CurrentSources     []*currentSourceBlock     `hcl:"current_source,block"`

	Remain hcl.Body `hcl:",remain"`
}

// paramsBlock wraps a nested "params { ... }" block's body so its
// attributes can be decoded freeform via Body.JustAttributes — every
// snippet in library.go declares a different ParamNames list, so the HCL
// schema can't know the attribute names up front. Grounded on
// hcl_adapter's StepArgs/UsesBlock wrapper idiom for the same problem.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// neuronPopulationBlock mirrors Model.AddNeuronPopulation's arguments: a
// population size, a named reference into the builtin snippet library
// (see library.go), and its parameter values.
type neuronPopulationBlock struct {
	Name string `hcl:"name,label"`

	Count int    `hcl:"count"`
	Model string `hcl:"model"`

	Params *paramsBlock `hcl:"params,block"`
}

// synapsePopulationBlock mirrors Model.AddSynapsePopulation's arguments.
// Connectivity is a string tag ("dense", "sparse", "bitmask",
// "procedural") resolved in spec.go; wum/psm name builtin weight-update
// and postsynaptic-model snippets the same way Model names a neuron model.
type synapsePopulationBlock struct {
	Name string `hcl:"name,label"`

	Src            string `hcl:"src"`
	Trg            string `hcl:"trg"`
	Connectivity   string `hcl:"connectivity,optional"`
	DelaySteps     int    `hcl:"delay_steps,optional"`
	MaxConnections int    `hcl:"max_connections,optional"`

	WUM       string       `hcl:"wum,optional"`
	WUMParams *paramsBlock `hcl:"wum_params,block"`

	PSM       string       `hcl:"psm,optional"`
	PSMParams *paramsBlock `hcl:"psm_params,block"`
}

// currentSourceBlock mirrors Model.AddCurrentSource's arguments.
type currentSourceBlock struct {
	Name string `hcl:"name,label"`

	Target string       `hcl:"target"`
	Model  string       `hcl:"model"`
	Params *paramsBlock `hcl:"params,block"`
}
