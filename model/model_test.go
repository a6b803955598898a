package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/sublation/core"
)

func leakyIntegratorSnippet() *core.Snippet {
	s := core.NewSnippet("leaky_integrator")
	s.ParamNames = []string{"tau"}
	s.Vars = []core.Var{{Name: "V", Type: "scalar", Access: core.VarAccessReadWrite}}
	s.Code[core.RoleSim] = "$(V) += (-$(V) + $(Isyn)) * DT / $(tau);"
	return s
}

func staticPulseSnippet() *core.Snippet {
	s := core.NewSnippet("static_pulse")
	s.Vars = []core.Var{{Name: "g", Type: "scalar", Access: core.VarAccessReadOnly}}
	s.Code[core.RoleSim] = "$(addToInSyn, $(g) * $(V_pre));"
	return s
}

func TestAddNeuronPopulationDuplicateName(t *testing.T) {
	t.Parallel()
	m := New("test")
	snippet := leakyIntegratorSnippet()

	_, err := m.AddNeuronPopulation("pop", 10, snippet, map[string]float64{"tau": 20}, nil, 0)
	require.NoError(t, err)

	_, err = m.AddNeuronPopulation("pop", 10, snippet, map[string]float64{"tau": 20}, nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestAddSynapsePopulationUnknownSource(t *testing.T) {
	t.Parallel()
	m := New("test")
	_, err := m.AddNeuronPopulation("B", 10, leakyIntegratorSnippet(), map[string]float64{"tau": 20}, nil, 0)
	require.NoError(t, err)

	_, err = m.AddSynapsePopulation("S", MatrixConnectivitySparse, 0, "A", "B",
		staticPulseSnippet(), nil, nil, nil, nil, nil, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}

// TestFinalizeDelayWidening is spec.md §8 scenario 5: a synapse group with
// delay_steps=3 referencing $(V_pre) widens the source group's
// num_delay_slots to 4 and marks V queue-required.
func TestFinalizeDelayWidening(t *testing.T) {
	t.Parallel()
	m := New("test")

	a, err := m.AddNeuronPopulation("A", 16, leakyIntegratorSnippet(), map[string]float64{"tau": 20}, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("B", 16, leakyIntegratorSnippet(), map[string]float64{"tau": 20}, nil, 0)
	require.NoError(t, err)

	_, err = m.AddSynapsePopulation("S", MatrixConnectivitySparse, 3, "A", "B",
		staticPulseSnippet(), map[string]float64{}, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, m.Finalize(context.Background()))

	assert.Equal(t, 4, a.NumDelaySlots)
	assert.True(t, a.IsQueueRequired["V"])
}

func TestFinalizeDerivedParams(t *testing.T) {
	t.Parallel()
	m := New("test")
	snippet := leakyIntegratorSnippet()
	snippet.DerivedParams = []core.DerivedParam{
		{Name: "ExpTC", Func: func(params []float64, dt float64) float64 {
			return dt / params[0] // dt / tau
		}},
	}

	m.SetDT(0.1)
	ng, err := m.AddNeuronPopulation("A", 10, snippet, map[string]float64{"tau": 20}, nil, 0)
	require.NoError(t, err)

	require.NoError(t, m.Finalize(context.Background()))
	assert.InDelta(t, 0.005, ng.DerivedParams["ExpTC"], 1e-9)
}

func TestFinalizeMissingParamIsFinalizeError(t *testing.T) {
	t.Parallel()
	m := New("test")
	_, err := m.AddNeuronPopulation("A", 10, leakyIntegratorSnippet(), map[string]float64{}, nil, 0)
	require.NoError(t, err)

	err = m.Finalize(context.Background())
	require.Error(t, err)
	var ferr *FinalizeError
	require.ErrorAs(t, err, &ferr)
	assert.NotEmpty(t, ferr.Problems)
}

func TestFinalizeDetectsZeroDelayCycle(t *testing.T) {
	t.Parallel()
	m := New("test")
	snippet := leakyIntegratorSnippet()
	snippet.ParamNames = nil

	_, err := m.AddNeuronPopulation("A", 10, snippet, nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("B", 10, snippet, nil, nil, 0)
	require.NoError(t, err)

	wum := core.NewSnippet("wum")
	_, err = m.AddSynapsePopulation("AB", MatrixConnectivitySparse, 0, "A", "B", wum, nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = m.AddSynapsePopulation("BA", MatrixConnectivitySparse, 0, "B", "A", wum, nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	err = m.Finalize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestFinalizeIsNotReentrant(t *testing.T) {
	t.Parallel()
	m := New("test")
	snippet := leakyIntegratorSnippet()
	snippet.ParamNames = nil
	_, err := m.AddNeuronPopulation("A", 10, snippet, nil, nil, 0)
	require.NoError(t, err)

	require.NoError(t, m.Finalize(context.Background()))
	err = m.Finalize(context.Background())
	require.Error(t, err)
}
