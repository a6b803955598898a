package modelconfig

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/sublation/model"
)

const sampleHCL = `
model "demo" {
  precision = "single"
  dt        = 1.0

  neuron_population "pre" {
    count = 100
    model = "LIF"
    params {
      C       = 1.0
      TauM    = 20.0
      Vrest   = -65.0
      Vreset  = -65.0
      Vthresh = -50.0
      Ioffset = 0.0
    }
  }

  neuron_population "post" {
    count = 100
    model = "LIF"
    params {
      C       = 1.0
      TauM    = 20.0
      Vrest   = -65.0
      Vreset  = -65.0
      Vthresh = -50.0
      Ioffset = 0.0
    }
  }

  current_source "drive" {
    target = "pre"
    model  = "DC"
    params {
      amp = 0.7
    }
  }

  synapse_population "pre_to_post" {
    src             = "pre"
    trg             = "post"
    connectivity    = "sparse"
    max_connections = 50

    wum = "StaticPulse"
    wum_params {
      g = 0.1
    }

    psm = "ExpCond"
    psm_params {
      Tau = 5.0
    }
  }
}
`

func TestLoadDecodesEveryBlockKind(t *testing.T) {
	t.Parallel()
	spec, err := Load(context.Background(), strings.NewReader(sampleHCL), "sample.hcl")
	require.NoError(t, err)
	require.Len(t, spec.Models, 1)

	ms := spec.Models[0]
	assert.Equal(t, "demo", ms.Name)
	assert.Equal(t, "single", ms.Precision)
	assert.Equal(t, 1.0, ms.DT)

	require.Len(t, ms.NeuronPopulations, 2)
	assert.Equal(t, "pre", ms.NeuronPopulations[0].Name)
	assert.Equal(t, 100, ms.NeuronPopulations[0].Count)
	assert.Equal(t, "LIF", ms.NeuronPopulations[0].Model)
	assert.Equal(t, -50.0, ms.NeuronPopulations[0].Params["Vthresh"])

	require.Len(t, ms.CurrentSources, 1)
	assert.Equal(t, "pre", ms.CurrentSources[0].Target)
	assert.Equal(t, 0.7, ms.CurrentSources[0].Params["amp"])

	require.Len(t, ms.SynapsePopulations, 1)
	sp := ms.SynapsePopulations[0]
	assert.Equal(t, "pre", sp.Src)
	assert.Equal(t, "post", sp.Trg)
	assert.Equal(t, "sparse", sp.Connectivity)
	assert.Equal(t, 50, sp.MaxConnections)
	assert.Equal(t, "StaticPulse", sp.WUM)
	assert.Equal(t, 0.1, sp.WUMParams["g"])
	assert.Equal(t, "ExpCond", sp.PSM)
	assert.Equal(t, 5.0, sp.PSMParams["Tau"])
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), strings.NewReader(`model "demo" {`), "broken.hcl")
	require.Error(t, err)
}

func TestLoadRejectsNonNumberParam(t *testing.T) {
	t.Parallel()
	src := `
model "demo" {
  neuron_population "pre" {
    count = 10
    model = "LIF"
    params {
      Vrest = "oops"
    }
  }
}
`
	_, err := Load(context.Background(), strings.NewReader(src), "bad_param.hcl")
	require.Error(t, err)
}

func TestSpecApplyBuildsModel(t *testing.T) {
	t.Parallel()
	spec, err := Load(context.Background(), strings.NewReader(sampleHCL), "sample.hcl")
	require.NoError(t, err)

	m := model.New("demo")
	require.NoError(t, spec.Apply(m))

	pre, ok := m.NeuronGroup("pre")
	require.True(t, ok)
	assert.Equal(t, 100, pre.Count)
	assert.Equal(t, -50.0, pre.Params["Vthresh"])

	post, ok := m.NeuronGroup("post")
	require.True(t, ok)
	assert.Equal(t, 100, post.Count)

	sg, ok := m.SynapseGroup("pre_to_post")
	require.True(t, ok)
	assert.Equal(t, "pre", sg.Src)
	assert.Equal(t, "post", sg.Trg)
	assert.Equal(t, 50, sg.MaxConnections)
	assert.NotNil(t, sg.PSMSnippet)
	assert.Equal(t, 5.0, sg.PSMParams["Tau"])

	cs, ok := m.CurrentSource("drive")
	require.True(t, ok)
	assert.Equal(t, "pre", cs.Target)
	assert.Equal(t, 0.7, cs.Params["amp"])

	require.NoError(t, m.Finalize(context.Background()))
}

func TestSpecApplyRejectsUnknownNeuronModel(t *testing.T) {
	t.Parallel()
	src := `
model "demo" {
  neuron_population "pre" {
    count = 10
    model = "NotARealModel"
  }
}
`
	spec, err := Load(context.Background(), strings.NewReader(src), "unknown_model.hcl")
	require.NoError(t, err)

	m := model.New("demo")
	err = spec.Apply(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestSpecApplyRejectsUnknownWeightUpdateModel(t *testing.T) {
	t.Parallel()
	src := `
model "demo" {
  neuron_population "pre" {
    count = 10
    model = "LIF"
  }
  neuron_population "post" {
    count = 10
    model = "LIF"
  }
  synapse_population "s" {
    src = "pre"
    trg = "post"
    wum = "NotARealWUM"
  }
}
`
	spec, err := Load(context.Background(), strings.NewReader(src), "unknown_wum.hcl")
	require.NoError(t, err)

	m := model.New("demo")
	err = spec.Apply(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weight update model")
}

func TestParseConnectivityRejectsUnknownValue(t *testing.T) {
	t.Parallel()
	_, err := parseConnectivity("not-a-real-connectivity")
	require.Error(t, err)
}
