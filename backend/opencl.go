package backend

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
)

// OpenCLBackend is a deliberate, documented stub, matching the upstream
// OpenCL backend's own incomplete state (spec.md §9's second open
// question: the CUDA pattern is the reference, OpenCL's stub behavior is
// not something to emulate beyond existing at all). Bookkeeping
// capabilities — variable declaration records, preamble/postamble,
// makefile rules — are implemented; anything that would require real
// OpenCL kernel emission returns ErrUnsupported.
type OpenCLBackend struct {
	precision core.Precision
}

// NewOpenCLBackend returns an OpenCLBackend targeting precision.
func NewOpenCLBackend(precision core.Precision) *OpenCLBackend {
	return &OpenCLBackend{precision: precision}
}

func (b *OpenCLBackend) Name() string              { return "opencl" }
func (b *OpenCLBackend) Precision() core.Precision { return b.precision }
func (b *OpenCLBackend) GetVarPrefix() string      { return "cl_" }

func (b *OpenCLBackend) SupportsNativeSharedAtomics() bool { return false }

func (b *OpenCLBackend) DeclareVar(w io.Writer, loc core.VarLocation, typ, name string) error {
	_, err := fmt.Fprintf(w, "%s %s;\n", typ, name)
	return err
}

func (b *OpenCLBackend) AllocVar(w io.Writer, loc core.VarLocation, typ, name, countExpr string) error {
	if loc.Has(core.VarLocationDevice) {
		_, err := fmt.Fprintf(w, "cl_%s = clCreateBuffer(ctx, CL_MEM_READ_WRITE, %s * sizeof(%s), NULL, NULL);\n", name, countExpr, typ)
		return err
	}
	return nil
}

func (b *OpenCLBackend) FreeVar(w io.Writer, loc core.VarLocation, name string) error {
	if loc.Has(core.VarLocationDevice) {
		_, err := fmt.Fprintf(w, "clReleaseMemObject(cl_%s);\n", name)
		return err
	}
	return nil
}

func (b *OpenCLBackend) DeclareExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam) error {
	_, err := fmt.Fprintf(w, "%s %s;\n", egp.Type, egp.Name)
	return err
}

func (b *OpenCLBackend) AllocExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	return nil
}

func (b *OpenCLBackend) PushExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	return nil
}

func (b *OpenCLBackend) PullExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	return nil
}

func (b *OpenCLBackend) PushVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	return nil
}

func (b *OpenCLBackend) PullVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	return nil
}

func (b *OpenCLBackend) PushCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	return nil
}

func (b *OpenCLBackend) PullCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	return nil
}

// GenParallelGroup is unimplemented: emitting a real OpenCL NDRange
// dispatch is out of scope for this stub.
func (b *OpenCLBackend) GenParallelGroup(w io.Writer, groups []ParallelGroup, padSize func(ParallelGroup) int, handler ParallelGroupHandler) error {
	return ErrUnsupported
}

func (b *OpenCLBackend) GenPopVariableInit(w io.Writer, handler PopVariableInitHandler) error {
	return ErrUnsupported
}

func (b *OpenCLBackend) GenVariableInit(w io.Writer, count int, countVar string, handler VariableInitHandler) error {
	return ErrUnsupported
}

func (b *OpenCLBackend) GenSynapseVariableRowInit(w io.Writer, sg *model.SynapseGroup, handler SynapseRowInitHandler) error {
	return ErrUnsupported
}

// FloatAtomicAdd is unimplemented: OpenCL atomic floating-point add
// requires an extension check this stub does not perform.
func (b *OpenCLBackend) FloatAtomicAdd(precision core.Precision) (string, error) {
	return "", ErrUnsupported
}

func (b *OpenCLBackend) GenGlobalRNG(w io.Writer) error {
	return ErrUnsupported
}

func (b *OpenCLBackend) GenPopulationRNG(w io.Writer, popName string, popSize int) error {
	return ErrUnsupported
}

func (b *OpenCLBackend) RNGCall(name string, args []string) (string, error) {
	return "", ErrUnsupported
}

func (b *OpenCLBackend) GenKernelPreamble(w io.Writer) error  { return nil }
func (b *OpenCLBackend) GenKernelPostamble(w io.Writer) error { return nil }

func (b *OpenCLBackend) GenMakefileRules(w io.Writer) error {
	_, err := fmt.Fprintln(w, "OCL_LIB := -lOpenCL")
	return err
}

func (b *OpenCLBackend) GenTimerCode(w io.Writer, label string) error {
	_, err := fmt.Fprintf(w, "cl_event %sEvent;\n", label)
	return err
}
