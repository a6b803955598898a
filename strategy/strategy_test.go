package strategy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/sublation/backend"
	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
	"github.com/sbl8/sublation/substitution"
)

// Compile-time conformance checks: all three strategies must satisfy the
// Strategy interface.
var (
	_ Strategy = PreSpanProcedural{}
	_ Strategy = PreSpan{}
	_ Strategy = PostSpan{}
)

func wumSnippet(sim string) *core.Snippet {
	s := core.NewSnippet("wum")
	s.Code[core.RoleSim] = sim
	return s
}

// TestSelectOrderMatchesSpec exercises spec.md §8 scenario 6: sparse +
// postsynaptic span selects PostSpan, sparse + presynaptic span selects
// PreSpan, procedural + global weights selects PreSpanProcedural.
func TestSelectOrderMatchesSpec(t *testing.T) {
	t.Parallel()
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 10, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 10, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)

	sparsePost, err := m.AddSynapsePopulation("sparsePost", model.MatrixConnectivitySparse, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sparsePost.Span = model.SpanPostsynaptic

	sparsePre, err := m.AddSynapsePopulation("sparsePre", model.MatrixConnectivitySparse, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sparsePre.Span = model.SpanPresynaptic

	procedural, err := m.AddSynapsePopulation("procedural", model.MatrixConnectivityProcedural, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	procedural.WeightRep = model.MatrixWeightGlobal

	got, err := Select(sparsePost, be)
	require.NoError(t, err)
	assert.Equal(t, "post_span", got.Name())

	got, err = Select(sparsePre, be)
	require.NoError(t, err)
	assert.Equal(t, "pre_span", got.Name())

	got, err = Select(procedural, be)
	require.NoError(t, err)
	assert.Equal(t, "pre_span_procedural", got.Name())
}

func TestSelectNoCompatibleStrategy(t *testing.T) {
	t.Parallel()
	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("dense_pre", model.MatrixConnectivityDense, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sg.Span = model.SpanPresynaptic

	_, err = Select(sg, be)
	require.Error(t, err)
}

func TestPreSpanNumThreads(t *testing.T) {
	t.Parallel()
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 100, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 50, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivitySparse, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sg.ThreadsPerSpike = 2

	assert.Equal(t, 200, PreSpan{}.NumThreads(m, sg))
}

func TestPostSpanNumThreadsIsTargetCount(t *testing.T) {
	t.Parallel()
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 100, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 64, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivityDense, 0, "src", "trg",
		wumSnippet(""), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 64, PostSpan{}.NumThreads(m, sg))
}

func TestPreSpanGenUpdateResolvesAddToInSyn(t *testing.T) {
	t.Parallel()
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivitySparse, 0, "src", "trg",
		wumSnippet("$(addToInSyn, $(g))"), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sg.Span = model.SpanPresynaptic

	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderIDPre, "lid")
	subs.AddVarSubstitution("g", "1.0")

	var buf bytes.Buffer
	require.NoError(t, PreSpan{}.GenUpdate(&buf, m, sg, be, subs))
	out := buf.String()
	assert.Contains(t, out, "inSyn_s[ipost] += 1.0")
	assert.NotContains(t, out, "$(")
}

func TestPreSpanEventThresholdRetestWraps(t *testing.T) {
	t.Parallel()
	sim := "$(addToInSyn, $(g))"
	wum := wumSnippet(sim)
	wum.Code[core.RoleEventThreshold] = "$(V_pre) > 0"

	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivitySparse, 0, "src", "trg",
		wum, nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sg.Span = model.SpanPresynaptic
	sg.IsEventThresholdRetestRequired = true

	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	subs := substitution.New()
	subs.AddVarSubstitution(core.PlaceholderIDPre, "lid")
	subs.AddVarSubstitution("g", "1.0")
	subs.AddVarSubstitution("V_pre", "V[lid]")

	var buf bytes.Buffer
	require.NoError(t, PreSpan{}.GenUpdate(&buf, m, sg, be, subs))
	assert.Contains(t, buf.String(), "if (V[lid] > 0)")
}

func TestPostSpanDenseUsesLinSynRegisterAndFlush(t *testing.T) {
	t.Parallel()
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivityDense, 0, "src", "trg",
		wumSnippet("$(addToInSyn, $(g))"), nil, nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	sg.Span = model.SpanPostsynaptic

	be := backend.NewCPUBackend(core.PrecisionSingle, 1)

	var preamble bytes.Buffer
	require.NoError(t, PostSpan{}.GenPreamble(&preamble, m, sg, be))
	assert.Contains(t, preamble.String(), "linSyn = 0")

	subs := substitution.New()
	subs.AddVarSubstitution("g", "2.0")
	var update bytes.Buffer
	require.NoError(t, PostSpan{}.GenUpdate(&update, m, sg, be, subs))
	assert.Contains(t, update.String(), "linSyn += 2.0")

	var postamble bytes.Buffer
	require.NoError(t, PostSpan{}.GenPostamble(&postamble, m, sg, be))
	assert.Contains(t, postamble.String(), "inSyn_s[$(id_post)] += linSyn;")
}

func TestPreSpanProceduralBindsAddSynapseToSimCode(t *testing.T) {
	t.Parallel()
	m := model.New("m")
	_, err := m.AddNeuronPopulation("src", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)
	_, err = m.AddNeuronPopulation("trg", 4, core.NewSnippet("n"), nil, nil, 0)
	require.NoError(t, err)

	connInit := core.NewSnippet("fixed_prob")
	connInit.Code[core.RoleRowBuild] = "const unsigned int post = $(id_post_candidate);\n$(addSynapse, post);\nendRow"

	sg, err := m.AddSynapsePopulation("s", model.MatrixConnectivityProcedural, 0, "src", "trg",
		wumSnippet("$(addToInSyn, $(g))"), nil, nil, nil, nil, nil, nil, nil, connInit)
	require.NoError(t, err)
	sg.WeightRep = model.MatrixWeightGlobal

	be := backend.NewCPUBackend(core.PrecisionSingle, 1)
	subs := substitution.New()
	subs.AddVarSubstitution("id_post_candidate", "3")
	subs.AddVarSubstitution("g", "0.5")

	var buf bytes.Buffer
	require.NoError(t, PreSpanProcedural{}.GenUpdate(&buf, m, sg, be, subs))
	out := buf.String()
	assert.Contains(t, out, "break;")
	assert.Contains(t, out, "const unsigned int post = 3;")
	assert.Contains(t, out, "inSyn_s[post] += 0.5")
	assert.NotContains(t, out, "$(")
}
