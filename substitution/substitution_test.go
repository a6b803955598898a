package substitution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/sublation/core"
)

func TestNameSubstitution(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		code        string
		names       []string
		idExpr      string
		queueOffset string
		stride      int
		suffix      string
		want        string
	}{
		{
			name:   "plain indexed access",
			code:   "$(V) += 1;",
			names:  []string{"V"},
			idExpr: "lid",
			suffix: "",
			want:   "V[lid] += 1;",
		},
		{
			name:   "pre suffix, no delay",
			code:   "x = $(V_pre) * 2;",
			names:  []string{"V"},
			idExpr: "lid",
			suffix: "_pre",
			want:   "x = V[lid] * 2;",
		},
		{
			name:        "pre suffix, queued delay slot",
			code:        "x = $(V_pre);",
			names:       []string{"V"},
			idExpr:      "lid",
			queueOffset: "spkQuePtr_pre",
			stride:      8,
			suffix:      "_pre",
			want:        "x = V[(spkQuePtr_pre)*8 + (lid)];",
		},
		{
			name:   "deferred function-template placeholder",
			code:   "$(post_post) += w;",
			names:  []string{"post"},
			idExpr: "$(0)",
			suffix: "_post",
			want:   "post[$(0)] += w;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameSubstitution(tt.code, tt.names, tt.idExpr, tt.queueOffset, tt.stride, tt.suffix)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueSubstitution(t *testing.T) {
	t.Parallel()
	code := "tau = $(tau); scale = $(scale);"
	got := ValueSubstitution(code, []string{"tau", "scale"}, []float64{20.0, 0.5}, "")
	require.NotContains(t, got, "$(tau)")
	require.NotContains(t, got, "$(scale)")
	assert.Equal(t, "tau = 20; scale = 0.5;", got)
}

func TestFunctionSubstituteNested(t *testing.T) {
	t.Parallel()
	// spec.md §8 scenario 3: nested function-call substitution.
	code := "$(scale, $(mul, a, b), 0.5)"

	code, err := FunctionSubstitute(code, "mul", 2, "($(0) * $(1))")
	require.NoError(t, err)
	require.Equal(t, "$(scale, (a * b), 0.5)", code)

	code, err = FunctionSubstitute(code, "scale", 2, "(($(0)) * ($(1)))")
	require.NoError(t, err)
	assert.Equal(t, "(((a * b)) * (0.5))", code)
}

func TestFunctionSubstituteArityMismatch(t *testing.T) {
	t.Parallel()
	_, err := FunctionSubstitute("$(gennrand_uniform, extra)", "gennrand_uniform", 0, "genn::uniform(rng)")
	require.Error(t, err)
}

func TestFunctionSubstituteZeroArity(t *testing.T) {
	t.Parallel()
	got, err := FunctionSubstitute("x = $(gennrand_uniform);", "gennrand_uniform", 0, "genn::uniform(rng)")
	require.NoError(t, err)
	assert.Equal(t, "x = genn::uniform(rng);", got)
}

func TestFunctionSubstitutePrefixCollisionSkipped(t *testing.T) {
	t.Parallel()
	// "gennrand_gamma" must not be matched while substituting "gennrand_gamma_shape".
	got, err := FunctionSubstitute("$(gennrand_gamma_shape, 2.0)", "gennrand_gamma", 1, "genn::gamma(rng, $(0))")
	require.NoError(t, err)
	assert.Equal(t, "$(gennrand_gamma_shape, 2.0)", got)
}

func TestEnsureFtypeSinglePrecision(t *testing.T) {
	t.Parallel()
	// spec.md §8 scenario 1.
	got := EnsureFtype("x = 1.5 + 2e-3 + 3;", core.PrecisionSingle)
	if got != "x = 1.5f + 2e-3f + 3;" {
		t.Errorf("EnsureFtype single = %q, want %q", got, "x = 1.5f + 2e-3f + 3;")
	}
}

func TestEnsureFtypeDoublePrecision(t *testing.T) {
	t.Parallel()
	// spec.md §8 scenario 2.
	got := EnsureFtype("x = 1.5f + 2.0;", core.PrecisionDouble)
	if got != "x = 1.5 + 2.0;" {
		t.Errorf("EnsureFtype double = %q, want %q", got, "x = 1.5 + 2.0;")
	}
}

func TestEnsureFtypeMathFunctions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		code   string
		target core.Precision
		want   string
	}{
		{"single rewrites cos", "y = cos(x) + pow(x, 2.0);", core.PrecisionSingle, "y = cosf(x) + powf(x, 2.0f);"},
		{"double rewrites cosf back", "y = cosf(x) + powf(x, 2.0f);", core.PrecisionDouble, "y = cos(x) + pow(x, 2.0);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureFtype(tt.code, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureFtypeIdempotent(t *testing.T) {
	t.Parallel()
	code := "x = 1.5 + cos(y) * 2e-3;"
	once := EnsureFtype(code, core.PrecisionSingle)
	twice := EnsureFtype(once, core.PrecisionSingle)
	if once != twice {
		t.Errorf("EnsureFtype not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestEnsureFtypeNonInterference(t *testing.T) {
	t.Parallel()
	code := "if (id < n) { spike[id] = true; }"
	got := EnsureFtype(code, core.PrecisionSingle)
	if got != code {
		t.Errorf("EnsureFtype altered code with no floats or math calls: got %q", got)
	}
}

func TestCheckUnresolvedClean(t *testing.T) {
	t.Parallel()
	err := CheckUnresolved("dd_V_neuronsA += 1.0f;", "neuronsA sim code")
	require.NoError(t, err)
}

func TestCheckUnresolvedReportsResidue(t *testing.T) {
	t.Parallel()
	err := CheckUnresolved("dd_V_neuronsA += $(Isyn);", "neuronsA sim code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$(Isyn)")
	assert.Contains(t, err.Error(), "neuronsA sim code")
}

func TestSubstitutionsStack(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddVarSubstitution("V", "dd_V_neuronsA")
	s.AddFuncSubstitution("gennrand_uniform", 0, "genn::uniform(rng)")

	s.Push()
	s.AddVarSubstitution("V", "dd_V_neuronsB") // shadows the base frame's V

	got, err := s.Apply("$(V) += $(gennrand_uniform);")
	require.NoError(t, err)
	assert.Equal(t, "dd_V_neuronsB += genn::uniform(rng);", got)

	s.Pop()
	got, err = s.Apply("$(V) += 1;")
	require.NoError(t, err)
	assert.Equal(t, "dd_V_neuronsA += 1;", got)
}
