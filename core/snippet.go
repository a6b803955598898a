package core

import "fmt"

// VarAccess describes whether downstream code may write to a variable.
type VarAccess uint8

const (
	// VarAccessReadOnly marks a variable user code may only read.
	VarAccessReadOnly VarAccess = iota
	// VarAccessReadWrite marks a variable user code may read and write.
	VarAccessReadWrite
)

func (a VarAccess) String() string {
	if a == VarAccessReadWrite {
		return "read_write"
	}
	return "read_only"
}

// Var is one state variable a Snippet declares, with its C type and the
// access discipline the generator must honor when resolving $(name).
type Var struct {
	Name   string
	Type   string
	Access VarAccess
}

// ExtraGlobalParam is a runtime-bound scalar or array whose value is not
// known at generation time; its Type may be pointer-typed ("scalar*"),
// which changes how the backend allocates and pushes it.
type ExtraGlobalParam struct {
	Name string
	Type string
}

// IsPointer reports whether this extra global parameter is array-typed.
func (p ExtraGlobalParam) IsPointer() bool {
	return len(p.Type) > 0 && p.Type[len(p.Type)-1] == '*'
}

// DerivedParamFunc computes a derived parameter's value from the owning
// group's parameter values (indexed the same order as Snippet.ParamNames)
// and the model's integration time step.
type DerivedParamFunc func(params []float64, dt float64) float64

// DerivedParam is a closed-form function of a group's parameters, evaluated
// once by Model.Finalize and thereafter treated as a known constant.
type DerivedParam struct {
	Name string
	Func DerivedParamFunc
}

// Role names one of the fixed code-string slots a Snippet may define. Roles
// are the same fixed vocabulary spec.md §3 specifies; not every snippet kind
// uses every role (a neuron snippet never defines RoleRowBuild, a weight
// update snippet never defines RoleThreshold).
type Role string

const (
	RoleSim              Role = "sim"
	RoleThreshold        Role = "threshold"
	RoleReset            Role = "reset"
	RoleInjection        Role = "injection"
	RoleDecay            Role = "decay"
	RoleApplyInput       Role = "apply_input"
	RoleRowBuild         Role = "row_build"
	RoleEventThreshold   Role = "event_threshold"
	RoleLearnPost        Role = "learn_post"
	RoleSynapseDynamics  Role = "synapse_dynamics"
	RoleVarInit          Role = "var_init"
	RoleSparseRowVarInit Role = "sparse_row_var_init"
)

// Reserved placeholder names the substitution engine resolves itself; a
// Snippet's code may reference these without declaring them as Vars,
// DerivedParams or ExtraGlobalParams.
const (
	PlaceholderID              = "id"
	PlaceholderIDPre           = "id_pre"
	PlaceholderIDPost          = "id_post"
	PlaceholderIDSyn           = "id_syn"
	PlaceholderT               = "t"
	PlaceholderValue           = "value"
	PlaceholderRNG             = "rng"
	PlaceholderInSyn           = "inSyn"
	PlaceholderEndRow          = "endRow"
	PlaceholderAddToInSyn      = "addToInSyn"
	PlaceholderAddToInSynDelay = "addToInSynDelay"
	PlaceholderInjectCurrent   = "injectCurrent"
	PlaceholderAddSynapse      = "addSynapse"
)

// ReservedPlaceholders lists the scalar (non-suffixed) reserved names.
var ReservedPlaceholders = map[string]bool{
	PlaceholderID:     true,
	PlaceholderIDPre:  true,
	PlaceholderIDPost: true,
	PlaceholderIDSyn:  true,
	PlaceholderT:      true,
	PlaceholderValue:  true,
	PlaceholderRNG:    true,
	PlaceholderInSyn:  true,
}

// Snippet is an immutable bundle describing one user-visible model
// fragment: named parameters, derived parameters, extra global parameters,
// variables and the placeholder-DSL code strings that use them. Grounded on
// the flat, interface-free value-type shape of the original model.Node:
// a Snippet carries data, never behavior beyond the DerivedParamFunc
// closures supplied at construction.
type Snippet struct {
	Name              string
	ParamNames        []string
	DerivedParams     []DerivedParam
	ExtraGlobalParams []ExtraGlobalParam
	Vars              []Var
	Code              map[Role]string
}

// NewSnippet returns an empty, named Snippet ready to have fields appended.
// Callers build a Snippet once at package-init time and never mutate it
// after handing it to a NeuronGroup/SynapseGroup/CurrentSource constructor.
func NewSnippet(name string) *Snippet {
	return &Snippet{Name: name, Code: make(map[Role]string)}
}

// ParamIndex returns the index of name within ParamNames, or -1.
func (s *Snippet) ParamIndex(name string) int {
	for i, p := range s.ParamNames {
		if p == name {
			return i
		}
	}
	return -1
}

// VarByName returns the Var named name and true, or the zero Var and false.
func (s *Snippet) VarByName(name string) (Var, bool) {
	for _, v := range s.Vars {
		if v.Name == name {
			return v, true
		}
	}
	return Var{}, false
}

// HasVar reports whether the snippet declares a variable named name.
func (s *Snippet) HasVar(name string) bool {
	_, ok := s.VarByName(name)
	return ok
}

// HasRole reports whether the snippet defines code for role.
func (s *Snippet) HasRole(role Role) bool {
	code, ok := s.Code[role]
	return ok && code != ""
}

// Validate checks internal consistency of the snippet's own declarations,
// independent of any group that will use it: no duplicate parameter,
// variable or extra-global-parameter names.
func (s *Snippet) Validate() error {
	seen := make(map[string]bool, len(s.ParamNames))
	for _, p := range s.ParamNames {
		if seen[p] {
			return fmt.Errorf("snippet %q: duplicate parameter name %q", s.Name, p)
		}
		seen[p] = true
	}
	seenVar := make(map[string]bool, len(s.Vars))
	for _, v := range s.Vars {
		if seenVar[v.Name] {
			return fmt.Errorf("snippet %q: duplicate variable name %q", s.Name, v.Name)
		}
		seenVar[v.Name] = true
	}
	seenEGP := make(map[string]bool, len(s.ExtraGlobalParams))
	for _, p := range s.ExtraGlobalParams {
		if seenEGP[p.Name] {
			return fmt.Errorf("snippet %q: duplicate extra global parameter name %q", s.Name, p.Name)
		}
		seenEGP[p.Name] = true
	}
	return nil
}
