package core

import "testing"

func TestPrecisionLiteralSuffix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		p    Precision
		want string
	}{
		{"single", PrecisionSingle, "f"},
		{"double", PrecisionDouble, ""},
		{"extended", PrecisionExtended, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.LiteralSuffix(); got != tt.want {
				t.Errorf("LiteralSuffix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrecisionString(t *testing.T) {
	t.Parallel()
	if PrecisionSingle.String() != "float" {
		t.Errorf("expected float, got %s", PrecisionSingle.String())
	}
	if PrecisionDouble.String() != "double" {
		t.Errorf("expected double, got %s", PrecisionDouble.String())
	}
}

func TestVarLocationFlags(t *testing.T) {
	t.Parallel()
	loc := VarLocationHost
	if !loc.Has(VarLocationHost) {
		t.Error("expected host flag set")
	}
	if loc.Has(VarLocationDevice) {
		t.Error("expected device flag unset")
	}

	loc = loc.Set(VarLocationDevice)
	if !loc.Has(VarLocationDevice) {
		t.Error("expected device flag set after Set")
	}

	loc = loc.Clear(VarLocationHost)
	if loc.Has(VarLocationHost) {
		t.Error("expected host flag cleared")
	}
}

func TestVarLocationZeroCopy(t *testing.T) {
	t.Parallel()
	loc := VarLocationZeroCopy
	if !loc.IsZeroCopy() {
		t.Error("expected zero-copy")
	}
	if (VarLocationHostDevice).IsZeroCopy() {
		t.Error("host|device should not be zero-copy")
	}
}

func TestSnippetValidateDuplicateParam(t *testing.T) {
	t.Parallel()
	s := NewSnippet("leaky_integrator")
	s.ParamNames = []string{"tau", "tau"}
	if err := s.Validate(); err == nil {
		t.Error("expected error for duplicate parameter name")
	}
}

func TestSnippetValidateDuplicateVar(t *testing.T) {
	t.Parallel()
	s := NewSnippet("leaky_integrator")
	s.Vars = []Var{
		{Name: "V", Type: "scalar", Access: VarAccessReadWrite},
		{Name: "V", Type: "scalar", Access: VarAccessReadOnly},
	}
	if err := s.Validate(); err == nil {
		t.Error("expected error for duplicate variable name")
	}
}

func TestSnippetParamIndex(t *testing.T) {
	t.Parallel()
	s := NewSnippet("izhikevich")
	s.ParamNames = []string{"a", "b", "c", "d"}

	if idx := s.ParamIndex("c"); idx != 2 {
		t.Errorf("ParamIndex(c) = %d, want 2", idx)
	}
	if idx := s.ParamIndex("missing"); idx != -1 {
		t.Errorf("ParamIndex(missing) = %d, want -1", idx)
	}
}

func TestExtraGlobalParamIsPointer(t *testing.T) {
	t.Parallel()
	scalarParam := ExtraGlobalParam{Name: "amp", Type: "scalar"}
	arrayParam := ExtraGlobalParam{Name: "data", Type: "scalar*"}

	if scalarParam.IsPointer() {
		t.Error("scalar param should not be a pointer")
	}
	if !arrayParam.IsPointer() {
		t.Error("scalar* param should be a pointer")
	}
}

func TestAlignWarp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		threads int
		want    int
	}{
		{0, 0},
		{1, 32},
		{32, 32},
		{33, 64},
		{100, 128},
	}
	for _, tt := range tests {
		if got := AlignWarp(tt.threads); got != tt.want {
			t.Errorf("AlignWarp(%d) = %d, want %d", tt.threads, got, tt.want)
		}
	}
}
