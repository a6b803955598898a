package model

import (
	"github.com/sbl8/sublation/core"
)

// Model owns every NeuronGroup, SynapseGroup and CurrentSource exclusively;
// everything else (edges, src/trg, current-source targets) holds weak
// references by name resolved through the Model's lookup methods. Groups
// are registered with ordered slices plus name-to-index maps so that
// iteration order is stable across runs — required for the generator's
// determinism guarantee (spec.md §5).
type Model struct {
	name          string
	precision     core.Precision
	timePrecision core.Precision
	hasTimePrec   bool
	dt            float64
	timing        bool
	seed          uint64

	defaultVarLocation                core.VarLocation
	defaultExtraGlobalParamLocation    core.VarLocation
	defaultSparseConnectivityLocation  core.VarLocation
	defaultNarrowSparseInd             bool
	mergePostsynapticModels            bool

	neuronGroups []*NeuronGroup
	neuronIndex  map[string]int

	synapseGroups []*SynapseGroup
	synapseIndex  map[string]int

	currentSources     []*CurrentSource
	currentSourceIndex map[string]int

	finalized bool
}

// New returns an empty, unfinalized Model named name with single precision
// and dt=1.0, the teacher's own sensible construction defaults.
func New(name string) *Model {
	return &Model{
		name:                              name,
		precision:                         core.PrecisionSingle,
		dt:                                1.0,
		defaultVarLocation:                core.VarLocationHostDevice,
		defaultExtraGlobalParamLocation:   core.VarLocationHostDevice,
		defaultSparseConnectivityLocation: core.VarLocationHostDevice,
		neuronIndex:                       make(map[string]int),
		synapseIndex:                      make(map[string]int),
		currentSourceIndex:                make(map[string]int),
	}
}

func (m *Model) SetName(name string) *Model { m.name = name; return m }
func (m *Model) Name() string               { return m.name }

func (m *Model) SetPrecision(p core.Precision) *Model { m.precision = p; return m }
func (m *Model) Precision() core.Precision            { return m.precision }

func (m *Model) SetTimePrecision(p core.Precision) *Model {
	m.timePrecision = p
	m.hasTimePrec = true
	return m
}

// TimePrecision returns the separate time-variable precision if one was
// set, otherwise the model's main Precision.
func (m *Model) TimePrecision() core.Precision {
	if m.hasTimePrec {
		return m.timePrecision
	}
	return m.precision
}

func (m *Model) SetDT(dt float64) *Model { m.dt = dt; return m }
func (m *Model) DT() float64             { return m.dt }

func (m *Model) SetTiming(on bool) *Model { m.timing = on; return m }
func (m *Model) Timing() bool             { return m.timing }

func (m *Model) SetSeed(seed uint64) *Model { m.seed = seed; return m }
func (m *Model) Seed() uint64               { return m.seed }

func (m *Model) SetDefaultVarLocation(loc core.VarLocation) *Model {
	m.defaultVarLocation = loc
	return m
}
func (m *Model) DefaultVarLocation() core.VarLocation { return m.defaultVarLocation }

func (m *Model) SetDefaultExtraGlobalParamLocation(loc core.VarLocation) *Model {
	m.defaultExtraGlobalParamLocation = loc
	return m
}
func (m *Model) DefaultExtraGlobalParamLocation() core.VarLocation {
	return m.defaultExtraGlobalParamLocation
}

func (m *Model) SetDefaultSparseConnectivityLocation(loc core.VarLocation) *Model {
	m.defaultSparseConnectivityLocation = loc
	return m
}
func (m *Model) DefaultSparseConnectivityLocation() core.VarLocation {
	return m.defaultSparseConnectivityLocation
}

func (m *Model) SetDefaultNarrowSparseInd(narrow bool) *Model {
	m.defaultNarrowSparseInd = narrow
	return m
}
func (m *Model) DefaultNarrowSparseInd() bool { return m.defaultNarrowSparseInd }

func (m *Model) SetMergePostsynapticModels(merge bool) *Model {
	m.mergePostsynapticModels = merge
	return m
}
func (m *Model) MergePostsynapticModels() bool { return m.mergePostsynapticModels }

// AddNeuronPopulation registers a new neuron group. Errors with a
// duplicate-name diagnostic if name is already taken; the model remains
// usable after a rejected call.
func (m *Model) AddNeuronPopulation(name string, count int, snippet *core.Snippet, params map[string]float64, varInits []VarInit, hostID int) (*NeuronGroup, error) {
	if _, exists := m.neuronIndex[name]; exists {
		return nil, errDuplicateName("neuron group", name)
	}
	ng := newNeuronGroup(name, count, snippet, hostID)
	for k, v := range params {
		ng.Params[k] = v
	}
	ng.VarInits = varInits
	m.neuronIndex[name] = len(m.neuronGroups)
	m.neuronGroups = append(m.neuronGroups, ng)
	return ng, nil
}

// AddSynapsePopulation registers a new synapse group connecting src to trg,
// both resolved as weak references by name. Errors if name is a duplicate
// or src/trg does not name an existing neuron group.
func (m *Model) AddSynapsePopulation(
	name string,
	connectivity MatrixConnectivity,
	delaySteps int,
	src, trg string,
	wum *core.Snippet,
	wumParams map[string]float64,
	wumVarInits, wumPreVarInits, wumPostVarInits []VarInit,
	psm *core.Snippet,
	psmParams map[string]float64,
	psmVarInits []VarInit,
	connectivityInit *core.Snippet,
) (*SynapseGroup, error) {
	if _, exists := m.synapseIndex[name]; exists {
		return nil, errDuplicateName("synapse group", name)
	}
	srcGroup, ok := m.NeuronGroup(src)
	if !ok {
		return nil, errUnknownGroup("source neuron", src)
	}
	trgGroup, ok := m.NeuronGroup(trg)
	if !ok {
		return nil, errUnknownGroup("target neuron", trg)
	}

	sg := newSynapseGroup(name, src, trg, connectivity, delaySteps)
	sg.WUMSnippet = wum
	sg.PSMSnippet = psm
	sg.ConnectivityInit = connectivityInit
	sg.WUMVarInits = wumVarInits
	sg.WUMPreVarInits = wumPreVarInits
	sg.WUMPostVarInits = wumPostVarInits
	sg.PSMVarInits = psmVarInits
	for k, v := range wumParams {
		sg.WUMParams[k] = v
	}
	for k, v := range psmParams {
		sg.PSMParams[k] = v
	}

	m.synapseIndex[name] = len(m.synapseGroups)
	m.synapseGroups = append(m.synapseGroups, sg)

	srcGroup.OutgoingSynapses = append(srcGroup.OutgoingSynapses, name)
	trgGroup.IncomingSynapses = append(trgGroup.IncomingSynapses, name)
	return sg, nil
}

// AddCurrentSource registers a new current source targeting an existing
// neuron group.
func (m *Model) AddCurrentSource(name string, snippet *core.Snippet, target string, params map[string]float64, varInits []VarInit) (*CurrentSource, error) {
	if _, exists := m.currentSourceIndex[name]; exists {
		return nil, errDuplicateName("current source", name)
	}
	targetGroup, ok := m.NeuronGroup(target)
	if !ok {
		return nil, errUnknownGroup("target neuron", target)
	}

	cs := newCurrentSource(name, snippet, target)
	for k, v := range params {
		cs.Params[k] = v
	}
	cs.VarInits = varInits

	m.currentSourceIndex[name] = len(m.currentSources)
	m.currentSources = append(m.currentSources, cs)
	targetGroup.IncomingCurrentSources = append(targetGroup.IncomingCurrentSources, name)
	return cs, nil
}

// NeuronGroup resolves a weak reference by name.
func (m *Model) NeuronGroup(name string) (*NeuronGroup, bool) {
	idx, ok := m.neuronIndex[name]
	if !ok {
		return nil, false
	}
	return m.neuronGroups[idx], true
}

// SynapseGroup resolves a weak reference by name.
func (m *Model) SynapseGroup(name string) (*SynapseGroup, bool) {
	idx, ok := m.synapseIndex[name]
	if !ok {
		return nil, false
	}
	return m.synapseGroups[idx], true
}

// CurrentSource resolves a weak reference by name.
func (m *Model) CurrentSource(name string) (*CurrentSource, bool) {
	idx, ok := m.currentSourceIndex[name]
	if !ok {
		return nil, false
	}
	return m.currentSources[idx], true
}

// NeuronGroups returns every registered neuron group in add order.
func (m *Model) NeuronGroups() []*NeuronGroup { return m.neuronGroups }

// SynapseGroups returns every registered synapse group in add order.
func (m *Model) SynapseGroups() []*SynapseGroup { return m.synapseGroups }

// CurrentSources returns every registered current source in add order.
func (m *Model) CurrentSources() []*CurrentSource { return m.currentSources }

// IsFinalized reports whether Finalize has already run successfully.
func (m *Model) IsFinalized() bool { return m.finalized }
