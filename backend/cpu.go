package backend

import (
	"fmt"
	"io"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/model"
)

// CPUBackend is a single-threaded reference backend used by tests and by
// callers targeting a plain C++ runner: no device pointer prefix,
// sequential "parallel" dispatch (a for loop). Each $(gennrand_*)
// primitive resolves to a genn::cpu:: call in the generated text; the
// Sample* methods separately draw Go-side samples from
// gonum.org/v1/gonum/stat/distuv distributions over the backend's seeded
// source.
type CPUBackend struct {
	precision core.Precision
	rngSource rand.Source
	rngTable  map[string]rngPrimitive
}

// NewCPUBackend returns a CPUBackend targeting precision, seeded from seed.
func NewCPUBackend(precision core.Precision, seed uint64) *CPUBackend {
	b := &CPUBackend{precision: precision, rngSource: rand.NewSource(seed)}
	b.rngTable = map[string]rngPrimitive{
		"gennrand_uniform": func(args []string) (string, error) {
			return "genn::cpu::uniform(rng)", nil
		},
		"gennrand_normal": func(args []string) (string, error) {
			return "genn::cpu::normal(rng)", nil
		},
		"gennrand_exponential": func(args []string) (string, error) {
			return "genn::cpu::exponential(rng)", nil
		},
		"gennrand_log_normal": func(args []string) (string, error) {
			if len(args) != 2 {
				return "", fmt.Errorf("cpu: gennrand_log_normal expects 2 args, got %d", len(args))
			}
			return fmt.Sprintf("genn::cpu::logNormal(rng, %s, %s)", args[0], args[1]), nil
		},
		"gennrand_gamma": func(args []string) (string, error) {
			if len(args) != 1 {
				return "", fmt.Errorf("cpu: gennrand_gamma expects 1 arg, got %d", len(args))
			}
			return fmt.Sprintf("genn::cpu::gamma(rng, %s)", args[0]), nil
		},
		"gennrand_binomial": func(args []string) (string, error) {
			if len(args) != 2 {
				return "", fmt.Errorf("cpu: gennrand_binomial expects 2 args, got %d", len(args))
			}
			return fmt.Sprintf("genn::cpu::binomial(rng, %s, %s)", args[0], args[1]), nil
		},
	}
	return b
}

// SampleUniform draws one uniform(0,1) sample using the distuv-backed RNG.
// It runs in Go; generated code that uses $(gennrand_uniform) calls
// genn::cpu::uniform instead.
func (b *CPUBackend) SampleUniform() float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: b.rngSource}.Rand()
}

// SampleNormal draws one standard-normal sample.
func (b *CPUBackend) SampleNormal() float64 {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: b.rngSource}.Rand()
}

// SampleExponential draws one exponential(rate=1) sample.
func (b *CPUBackend) SampleExponential() float64 {
	return distuv.Exponential{Rate: 1, Src: b.rngSource}.Rand()
}

// SampleLogNormal draws one log-normal sample with the given underlying
// normal's mean and standard deviation.
func (b *CPUBackend) SampleLogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: b.rngSource}.Rand()
}

// SampleGamma draws one Gamma(alpha, beta=1) sample.
func (b *CPUBackend) SampleGamma(alpha float64) float64 {
	return distuv.Gamma{Alpha: alpha, Beta: 1, Src: b.rngSource}.Rand()
}

// SampleBinomial draws one Binomial(n, p) sample.
func (b *CPUBackend) SampleBinomial(n, p float64) float64 {
	return distuv.Binomial{N: n, P: p, Src: b.rngSource}.Rand()
}

func (b *CPUBackend) Name() string              { return "cpu" }
func (b *CPUBackend) Precision() core.Precision { return b.precision }
func (b *CPUBackend) GetVarPrefix() string      { return "" }

// SupportsNativeSharedAtomics reports false: the CPU backend has no
// shared-memory concept, so strategy's small-population optimization
// never applies here.
func (b *CPUBackend) SupportsNativeSharedAtomics() bool { return false }

func (b *CPUBackend) DeclareVar(w io.Writer, loc core.VarLocation, typ, name string) error {
	_, err := fmt.Fprintf(w, "%s %s;\n", typ, name)
	return err
}

func (b *CPUBackend) AllocVar(w io.Writer, loc core.VarLocation, typ, name, countExpr string) error {
	_, err := fmt.Fprintf(w, "%s = new %s[%s];\n", name, typ, countExpr)
	return err
}

func (b *CPUBackend) FreeVar(w io.Writer, loc core.VarLocation, name string) error {
	_, err := fmt.Fprintf(w, "delete[] %s;\n", name)
	return err
}

func (b *CPUBackend) DeclareExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam) error {
	_, err := fmt.Fprintf(w, "%s %s;\n", egp.Type, egp.Name)
	return err
}

func (b *CPUBackend) AllocExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	if !egp.IsPointer() {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s = new %s[%s];\n", egp.Name, egp.Type, countExpr)
	return err
}

func (b *CPUBackend) PushExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	return nil // single address space: push/pull are no-ops on the CPU backend.
}

func (b *CPUBackend) PullExtraGlobalParam(w io.Writer, egp core.ExtraGlobalParam, countExpr string) error {
	return nil
}

func (b *CPUBackend) PushVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	return nil
}

func (b *CPUBackend) PullVar(w io.Writer, loc core.VarLocation, name, countExpr string) error {
	return nil
}

func (b *CPUBackend) PushCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	return nil
}

func (b *CPUBackend) PullCurrentVar(w io.Writer, loc core.VarLocation, name string, queueRequired bool) error {
	return nil
}

// GenParallelGroup dispatches each group sequentially: a plain for loop
// over [0, count), no padding needed since there is no warp/block
// alignment concern on a single-threaded backend.
func (b *CPUBackend) GenParallelGroup(w io.Writer, groups []ParallelGroup, padSize func(ParallelGroup) int, handler ParallelGroupHandler) error {
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "for (unsigned int lid = 0; lid < %d; lid++) {\n", g.Count); err != nil {
			return err
		}
		if err := handler(w, g, "lid"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	return nil
}

func (b *CPUBackend) GenPopVariableInit(w io.Writer, handler PopVariableInitHandler) error {
	return handler(w)
}

func (b *CPUBackend) GenVariableInit(w io.Writer, count int, countVar string, handler VariableInitHandler) error {
	return handler(w)
}

func (b *CPUBackend) GenSynapseVariableRowInit(w io.Writer, sg *model.SynapseGroup, handler SynapseRowInitHandler) error {
	return handler(w)
}

func (b *CPUBackend) FloatAtomicAdd(precision core.Precision) (string, error) {
	return "", nil // single-threaded: a plain "+=" suffices, callers skip wrapping in a call.
}

func (b *CPUBackend) GenGlobalRNG(w io.Writer) error {
	_, err := fmt.Fprintln(w, "std::mt19937 rng;")
	return err
}

func (b *CPUBackend) GenPopulationRNG(w io.Writer, popName string, popSize int) error {
	_, err := fmt.Fprintf(w, "std::mt19937 rng%s;\n", popName)
	return err
}

func (b *CPUBackend) RNGCall(name string, args []string) (string, error) {
	fn, ok := b.rngTable[name]
	if !ok {
		return "", fmt.Errorf("cpu: unknown RNG primitive %q", name)
	}
	return fn(args)
}

func (b *CPUBackend) GenKernelPreamble(w io.Writer) error  { return nil }
func (b *CPUBackend) GenKernelPostamble(w io.Writer) error { return nil }

func (b *CPUBackend) GenMakefileRules(w io.Writer) error {
	_, err := fmt.Fprintln(w, "CXX := g++")
	return err
}

func (b *CPUBackend) GenTimerCode(w io.Writer, label string) error {
	_, err := fmt.Fprintf(w, "auto %sStop = std::chrono::steady_clock::now();\n", label)
	return err
}
