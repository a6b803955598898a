package generator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
)

func lifSnippet() *core.Snippet {
	s := core.NewSnippet("LIF")
	s.ParamNames = []string{"Vrest", "Vthresh"}
	s.Vars = []core.Var{{Name: "V", Type: "scalar", Access: core.VarAccessReadWrite}}
	s.Code[core.RoleSim] = "$(V) += ($(Vrest) - $(V)) * DT;"
	s.Code[core.RoleThreshold] = "$(V) >= $(Vthresh)"
	s.Code[core.RoleReset] = "$(V) = $(Vrest);"
	return s
}

func wumSnippetWithAdd() *core.Snippet {
	s := core.NewSnippet("StaticPulse")
	s.Vars = []core.Var{{Name: "g", Type: "scalar", Access: core.VarAccessReadOnly}}
	s.Code[core.RoleSim] = "$(addToInSyn, $(g));"
	return s
}

func expCondPSMSnippet() *core.Snippet {
	s := core.NewSnippet("ExpCond")
	s.ParamNames = []string{"Tau"}
	s.DerivedParams = []core.DerivedParam{
		{Name: "ExpDecay", Func: func(p []float64, dt float64) float64 { return 0.9 }},
	}
	s.Code[core.RoleApplyInput] = "$(Isyn) += $(inSyn);"
	s.Code[core.RoleDecay] = "$(inSyn) *= $(ExpDecay);"
	return s
}

func dcCurrentSourceSnippet() *core.Snippet {
	s := core.NewSnippet("DC")
	s.ParamNames = []string{"amp"}
	s.Code[core.RoleInjection] = "$(injectCurrent, $(amp));"
	return s
}

func buildTestModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("net")
	_, err := m.AddNeuronPopulation("pre", 8, lifSnippet(), map[string]float64{"Vrest": -65, "Vthresh": -50}, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("post", 8, lifSnippet(), map[string]float64{"Vrest": -65, "Vthresh": -50}, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("syn", model.MatrixConnectivitySparse, 0, "pre", "post",
		wumSnippetWithAdd(), nil, nil, nil, nil, expCondPSMSnippet(), map[string]float64{"Tau": 5}, nil, nil)
	require.NoError(t, err)
	sg.Span = model.SpanPresynaptic
	sg.MaxConnections = 8

	_, err = m.AddCurrentSource("dc", dcCurrentSourceSnippet(), "post", map[string]float64{"amp": 0.7}, nil)
	require.NoError(t, err)

	require.NoError(t, m.Finalize(context.Background()))
	return m
}

func TestGenerateNeuronUpdateProducesThresholdAndReset(t *testing.T) {
	t.Parallel()
	m := buildTestModel(t)
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	p, err := New(m, be)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.GenerateNeuronUpdate(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "scalar Isyn = 0;")
	assert.Contains(t, out, "V[lid] >= -50")
	assert.Contains(t, out, "spkCnt_pre[0], 1)] = lid;")
	assert.Contains(t, out, "sT_pre[lid] = t;")
	assert.Contains(t, out, "V[lid] = -65")
	// spec.md §8 scenario 4: a DC current source with amp=0.7 produces a
	// literal-coerced "Isyn += 0.7;" inside the update kernel.
	assert.Contains(t, out, "Isyn += 0.7")
	// the incoming synapse group's ExpCond postsynaptic model folds its
	// inSyn buffer into Isyn, then decays it.
	assert.Contains(t, out, "Isyn += inSyn_syn[lid];")
	assert.Contains(t, out, "inSyn_syn[lid] *= 0.9f;")
	assert.NotContains(t, out, "$(")
}

func TestGenerateSynapseUpdateSelectsPreSpanAndResolves(t *testing.T) {
	t.Parallel()
	m := buildTestModel(t)
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	p, err := New(m, be)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.GenerateSynapseUpdate(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "rowLength[lid]")
	assert.Contains(t, out, "inSyn_syn[ipost] += g[lid];")
	assert.NotContains(t, out, "$(")
}

func TestGenerateInitDoesNotPanicOnEmptyVarInits(t *testing.T) {
	t.Parallel()
	m := buildTestModel(t)
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	p, err := New(m, be)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.GenerateInit(context.Background(), &buf))
	assert.Contains(t, buf.String(), "inSyn_syn[id] = 0;")
}

func TestNewRejectsUnfinalizedModel(t *testing.T) {
	t.Parallel()
	m := model.New("unfinalized")
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	_, err := New(m, be)
	require.Error(t, err)
}
