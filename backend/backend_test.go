package backend

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sbl8/sublation/core"
)

// Compile-time conformance checks: all three backends must satisfy the
// Backend interface, matching the original's three-backend shape.
var (
	_ Backend = (*CUDABackend)(nil)
	_ Backend = (*CPUBackend)(nil)
	_ Backend = (*OpenCLBackend)(nil)
)

func TestCUDABackendFloatAtomicAdd(t *testing.T) {
	t.Parallel()
	b := NewCUDABackend(core.PrecisionDouble)
	name, err := b.FloatAtomicAdd(core.PrecisionDouble)
	require.NoError(t, err)
	assert.Equal(t, "atomicAddDouble", name)
}

func TestCUDABackendRNGCallUnknownPrimitive(t *testing.T) {
	t.Parallel()
	b := NewCUDABackend(core.PrecisionSingle)
	_, err := b.RNGCall("gennrand_poisson", nil)
	require.Error(t, err)
}

func TestCPUBackendSamplesAreDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a := NewCPUBackend(core.PrecisionDouble, 42)
	b := NewCPUBackend(core.PrecisionDouble, 42)
	assert.Equal(t, a.SampleUniform(), b.SampleUniform())
}

func TestOpenCLBackendGenParallelGroupUnsupported(t *testing.T) {
	t.Parallel()
	b := NewOpenCLBackend(core.PrecisionSingle)
	var buf bytes.Buffer
	err := b.GenParallelGroup(&buf, nil, nil, nil)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenCLBackendFloatAtomicAddUnsupported(t *testing.T) {
	t.Parallel()
	b := NewOpenCLBackend(core.PrecisionSingle)
	_, err := b.FloatAtomicAdd(core.PrecisionSingle)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestMockBackendRecordsExpectedCall(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	mock := NewMockBackend(ctrl)

	mock.EXPECT().GetVarPrefix().Return("dd_")
	assert.Equal(t, "dd_", mock.GetVarPrefix())
}
