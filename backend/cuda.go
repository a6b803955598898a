package backend

import (
	"fmt"
	"io"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
)

// rngPrimitive renders one $(gennrand_*) primitive's call text given its
// already-substituted arguments.
type rngPrimitive func(args []string) (string, error)

// CUDABackend is the reference implementation: emits one id-range branch
// per group inside a shared dispatch, dd_-prefixed device pointers, warp-aligned thread counts, and CUDA's
// atomicAdd. Capability dispatch for RNG primitives goes through a
// once-built map, grounded on kernels/ops.go's opcode Catalog array,
// generalized from a dense [256]KernelFn array (opcodes are dense 0..255)
// to a map (primitive names are not dense).
type CUDABackend struct {
	precision core.Precision
	rngTable  map[string]rngPrimitive
}

// NewCUDABackend returns a CUDABackend targeting precision.
func NewCUDABackend(precision core.Precision) *CUDABackend {
	b := &CUDABackend{precision: precision}
	b.rngTable = map[string]rngPrimitive{
		"gennrand_uniform":     func(args []string) (string, error) { return "curand_uniform(&rng)", nil },
		"gennrand_normal":      func(args []string) (string, error) { return "curand_normal(&rng)", nil },
		"gennrand_exponential": func(args []string) (string, error) { return "(-log(curand_uniform(&rng)))", nil },
		"gennrand_log_normal": func(args []string) (string, error) {
			if len(args) != 2 {
				return "", fmt.Errorf("cuda: gennrand_log_normal expects 2 args, got %d", len(args))
			}
			return fmt.Sprintf("curand_log_normal(&rng, %s, %s)", args[0], args[1]), nil
		},
		"gennrand_gamma": func(args []string) (string, error) {
			if len(args) != 1 {
				return "", fmt.Errorf("cuda: gennrand_gamma expects 1 arg, got %d", len(args))
			}
			return fmt.Sprintf("genn::gammaDistCUDA(&rng, %s)", args[0]), nil
		},
		"gennrand_binomial": func(args []string) (string, error) {
			if len(args) != 2 {
				return "", fmt.Errorf("cuda: gennrand_binomial expects 2 args, got %d", len(args))
			}
			return fmt.Sprintf("genn::binomialDistCUDA(&rng, %s, %s)", args[0], args[1]), nil
		},
	}
	return b
}

func (b *CUDABackend) Name() string              { return "cuda" }
func (b *CUDABackend) Precision() core.Precision { return b.precision }
func (b *CUDABackend) GetVarPrefix() string      { return "dd_" }

// SupportsNativeSharedAtomics reports true: every CUDA device GeNN targets
// supports native shared-memory atomics, enabling strategy's small-
// population optimization.
func (b *CUDABackend) SupportsNativeSharedAtomics() bool { return true }

func (b *CUDABackend) DeclareVar(w io.Writer, loc core.VarLocation, typ, name string) error {
	if loc.Has(core.VarLocationHost) {
		if _, err := fmt.Fprintf(w, "%s %s;\n", typ, name); err != nil {
			return err
		}
	}
	if loc.Has(core.VarLocationDevice) {
		_, err := fmt.Fprintf(w, "%s *dd_%s;\n", typ, name)
		return err
	}
	return nil
}

func (b *CUDABackend) AllocVar(w io.Writer, loc core.VarLocation, typ, name, countExpr string) error {
	if loc.Has(core.VarLocationHost) {
		if _, err := fmt.Fprintf(w, "%s = new %s[%s];\n", name, typ, countExpr); err != nil {
			return err
		}
	}
	if loc.Has(core.VarLocationDevice) {
		_, err := fmt.Fprintf(w, "cudaMalloc(&dd_%s, %s * sizeof(%s));\n", name, countExpr, typ)
		return err
	}
	return nil
}

func (b *CUDABackend) FreeVar(w io.Writer, loc core.VarLocation, name string) error {
	if loc.Has(core.VarLocationHost) {
		if _, err := fmt.Fprintf(w, "delete[] %s;\n", name); err != nil {
			return err
		}
	}
	if loc.Has(core.VarLocationDevice) {
		_, err := fmt.Fprintf(w, "cudaFree(dd_%s);\n", name)
		return err
	}
	return nil
}

func (b *CUDABackend) DeclareExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam) error {
	_, err := fmt.Fprintf(w, "%s %s;\n", egp.Type, egp.Name)
	return err
}

func (b *CUDABackend) AllocExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	if !egp.IsPointer() {
		return nil
	}
	_, err := fmt.Fprintf(w, "cudaMalloc(&dd_%s, %s * sizeof(%s));\n", egp.Name, countExpr, egp.Type)
	return err
}

func (b *CUDABackend) PushExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	if !egp.IsPointer() {
		return nil
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(dd_%s, %s, %s * sizeof(%s), cudaMemcpyHostToDevice);\n", egp.Name, egp.Name, countExpr, egp.Type)
	return err
}

func (b *CUDABackend) PullExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	if !egp.IsPointer() {
		return nil
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(%s, dd_%s, %s * sizeof(%s), cudaMemcpyDeviceToHost);\n", egp.Name, egp.Name, countExpr, egp.Type)
	return err
}

func (b *CUDABackend) PushVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	if loc.IsZeroCopy() {
		return nil
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(dd_%s, %s, %s * sizeof(%s), cudaMemcpyHostToDevice);\n", name, name, countExpr, "scalar")
	return err
}

func (b *CUDABackend) PullVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	if loc.IsZeroCopy() {
		return nil
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(%s, dd_%s, %s * sizeof(%s), cudaMemcpyDeviceToHost);\n", name, name, countExpr, "scalar")
	return err
}

func (b *CUDABackend) PushCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	if loc.IsZeroCopy() {
		return nil
	}
	slot := "0"
	if queueRequired {
		slot = "spkQuePtr"
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(dd_%s + (%s * count), %s + (%s * count), count * sizeof(scalar), cudaMemcpyHostToDevice);\n", name, slot, name, slot)
	return err
}

func (b *CUDABackend) PullCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	if loc.IsZeroCopy() {
		return nil
	}
	slot := "0"
	if queueRequired {
		slot = "spkQuePtr"
	}
	_, err := fmt.Fprintf(w, "cudaMemcpy(%s + (%s * count), dd_%s + (%s * count), count * sizeof(scalar), cudaMemcpyDeviceToHost);\n", name, slot, name, slot)
	return err
}

// GenParallelGroup emits one "if (id >= start && id < end)" block per
// group, padding each group's id range up to a warp boundary via
// core.AlignWarp, and binds lid to the group-local index inside it.
func (b *CUDABackend) GenParallelGroup(w io.Writer, groups []ParallelGroup, padSize func(ParallelGroup) int, handler ParallelGroupHandler) error {
	offset := 0
	for _, g := range groups {
		count := g.Count
		if padSize != nil {
			count = padSize(g)
		}
		padded := core.AlignWarp(count)
		if _, err := fmt.Fprintf(w, "if (id >= %d && id < %d) {\n", offset, offset+padded); err != nil {
			return err
		}
		localID := fmt.Sprintf("(id - %d)", offset)
		if _, err := fmt.Fprintf(w, "const unsigned int lid = %s;\n", localID); err != nil {
			return err
		}
		if err := handler(w, g, "lid"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
		offset += padded
	}
	return nil
}

func (b *CUDABackend) GenPopVariableInit(w io.Writer, handler PopVariableInitHandler) error {
	if _, err := fmt.Fprintln(w, "if (id == 0) {"); err != nil {
		return err
	}
	if err := handler(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func (b *CUDABackend) GenVariableInit(w io.Writer, count int, countVar string, handler VariableInitHandler) error {
	return handler(w)
}

func (b *CUDABackend) GenSynapseVariableRowInit(w io.Writer, sg *model.SynapseGroup, handler SynapseRowInitHandler) error {
	return handler(w)
}

func (b *CUDABackend) FloatAtomicAdd(precision core.Precision) (string, error) {
	if precision == core.PrecisionDouble {
		return "atomicAddDouble", nil
	}
	return "atomicAdd", nil
}

func (b *CUDABackend) GenGlobalRNG(w io.Writer) error {
	_, err := fmt.Fprintln(w, "curandState *d_rng;")
	return err
}

func (b *CUDABackend) GenPopulationRNG(w io.Writer, popName string, popSize int) error {
	_, err := fmt.Fprintf(w, "curandState *d_rng%s; // %d states\n", popName, popSize)
	return err
}

func (b *CUDABackend) RNGCall(name string, args []string) (string, error) {
	fn, ok := b.rngTable[name]
	if !ok {
		return "", fmt.Errorf("cuda: unknown RNG primitive %q", name)
	}
	return fn(args)
}

func (b *CUDABackend) GenKernelPreamble(w io.Writer) error {
	_, err := fmt.Fprintln(w, "const unsigned int id = blockIdx.x * blockDim.x + threadIdx.x;")
	return err
}

func (b *CUDABackend) GenKernelPostamble(w io.Writer) error { return nil }

func (b *CUDABackend) GenMakefileRules(w io.Writer) error {
	_, err := fmt.Fprintln(w, "NVCC := nvcc")
	return err
}

func (b *CUDABackend) GenTimerCode(w io.Writer, label string) error {
	_, err := fmt.Fprintf(w, "cudaEventRecord(%sStop);\n", label)
	return err
}
