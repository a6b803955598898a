// Package sublation is the root of a GeNN-style code generator for spiking
// neural network simulations: it turns an in-memory network description
// into backend-specific source text for neuron update, synapse update and
// initialization.
//
// # Package Structure
//
//   - core: precision, variable locations and implementations, snippets,
//     alignment helpers
//   - substitution: the $(name) placeholder engine, literal and
//     math-function precision coercion, the unresolved-placeholder check
//   - model: the Model registry of neuron groups, synapse groups and
//     current sources, and its Finalize pass
//   - backend: the Backend interface with CUDA, CPU and stub OpenCL
//     implementations
//   - strategy: presynaptic update strategies and their selection
//   - generator: the neuron-update, synapse-update and init emitters
//   - modelconfig: an HCL front end that builds a Model from text
//   - cmd/genndemo: a command-line demo of the whole flow
//
// # Basic Usage
//
//	m := model.New("net")
//	// m.AddNeuronPopulation, m.AddSynapsePopulation, m.AddCurrentSource ...
//	if err := m.Finalize(ctx); err != nil {
//	    return err
//	}
//	p, err := generator.New(m, backend.NewCPUBackend(core.PrecisionSingle, 1))
//	if err != nil {
//	    return err
//	}
//	err = p.GenerateNeuronUpdate(ctx, w)
//	err = p.GenerateSynapseUpdate(ctx, w)
//	err = p.GenerateInit(ctx, w)
//
// The project repository is at https://github.com/sbl8/sublation
package sublation
