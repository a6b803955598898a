package backend

import (
	"errors"
	"io"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
)

// ErrUnsupported is returned by capability methods a backend deliberately
// does not implement (the OpenCLBackend stub).
var ErrUnsupported = errors.New("backend: capability not supported")

// ParallelGroup is anything GenParallelGroup can dispatch a flat thread id
// space over: a named unit of work with a thread count.
type ParallelGroup struct {
	Name  string
	Count int
}

// ParallelGroupHandler emits the body for one group, given the local
// thread id expression already bound by the enclosing dispatch.
type ParallelGroupHandler func(w io.Writer, group ParallelGroup, localID string) error

// PopVariableInitHandler emits a once-per-population initializer block.
type PopVariableInitHandler func(w io.Writer) error

// VariableInitHandler emits a per-element initializer; id is already bound
// by the enclosing parallel dispatch.
type VariableInitHandler func(w io.Writer) error

// SynapseRowInitHandler emits per-element initialization for one synapse
// group's connectivity row.
type SynapseRowInitHandler func(w io.Writer) error

// Backend is the capability set the generator pipeline consumes. Method
// names mirror spec.md §4.3's bullet list; none of them know the content
// of a user snippet, only how to wrap it.
type Backend interface {
	Name() string
	Precision() core.Precision
	GetVarPrefix() string
	SupportsNativeSharedAtomics() bool

	DeclareVar(w io.Writer, loc core.VarLocation, typ, name string) error
	AllocVar(w io.Writer, loc core.VarLocation, typ, name, countExpr string) error
	FreeVar(w io.Writer, loc core.VarLocation, name string) error

	DeclareExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam) error
	AllocExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error
	PushExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error
	PullExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error

	PushVar(w io.Writer, loc core.VarLocation, name, countExpr string) error
	PullVar(w io.Writer, loc core.VarLocation, name, countExpr string) error
	PushCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error
	PullCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error

	GenParallelGroup(w io.Writer, groups []ParallelGroup, padSize func(ParallelGroup) int, handler ParallelGroupHandler) error
	GenPopVariableInit(w io.Writer, handler PopVariableInitHandler) error
	GenVariableInit(w io.Writer, count int, countVar string, handler VariableInitHandler) error
	GenSynapseVariableRowInit(w io.Writer, sg *model.SynapseGroup, handler SynapseRowInitHandler) error

	FloatAtomicAdd(precision core.Precision) (string, error)

	GenGlobalRNG(w io.Writer) error
	GenPopulationRNG(w io.Writer, popName string, popSize int) error
	// RNGCall resolves a $(gennrand_*) primitive name plus its already
	// substituted arguments to backend-specific call text.
	RNGCall(name string, args []string) (string, error)

	GenKernelPreamble(w io.Writer) error
	GenKernelPostamble(w io.Writer) error
	GenMakefileRules(w io.Writer) error
	GenTimerCode(w io.Writer, label string) error
}
