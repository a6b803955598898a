// Package substitution implements the placeholder-DSL text transformer
// described in spec.md §4.1: the five public operations (Substitute,
// NameSubstitution, ValueSubstitution, FunctionSubstitute, EnsureFtype) plus
// the CheckUnresolved correctness barrier, and the Substitutions stack type
// the generator threads through backend callbacks.
//
// Every operation here is a pure function over a code string: it takes a
// buffer and returns the rewritten buffer, mirroring the original's
// in-place mutation without needing Go string buffers to actually be
// mutable. Grounded on compiler/compiler.go's manual DSL tokenizer
// (balanced-paren argument parsing, explicit line/character state
// machines, flat fmt.Errorf diagnostics) generalized from a whole-spec
// parser into a narrower text-substitution engine.
package substitution
