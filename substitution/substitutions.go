package substitution

// substFrame is one scope of a Substitutions stack: a set of literal
// variable replacements plus a set of function-call templates, both added
// by a single caller (e.g. "the neuron snippet's own variables" or "this
// merged postsynaptic model's inSyn expression").
type substFrame struct {
	vars  map[string]string
	funcs []funcSubst
}

type funcSubst struct {
	name     string
	arity    int
	template string
}

// Substitutions is the stack of pending replacements the generator threads
// through Backend callbacks (spec.md §4.3): each callback adds the
// substitutions it knows about (group name, snippet variables, RNG calls,
// accumulation primitives) to the top frame, then calls Apply once the full
// code body is assembled. Frames let an inner scope's substitutions shadow
// an outer one's without the two colliding.
type Substitutions struct {
	frames []substFrame
}

// New returns an empty Substitutions stack with one base frame.
func New() *Substitutions {
	return &Substitutions{frames: []substFrame{newFrame()}}
}

func newFrame() substFrame {
	return substFrame{vars: make(map[string]string)}
}

// Push opens a new, empty frame on top of the stack and returns s for
// chaining.
func (s *Substitutions) Push() *Substitutions {
	s.frames = append(s.frames, newFrame())
	return s
}

// Pop discards the top frame. Popping the last remaining frame is a no-op;
// the base frame always survives.
func (s *Substitutions) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// AddVarSubstitution registers a literal replacement for $(name) in the top
// frame and returns s for chaining.
func (s *Substitutions) AddVarSubstitution(name, value string) *Substitutions {
	s.frames[len(s.frames)-1].vars[name] = value
	return s
}

// AddFuncSubstitution registers a function-call template for $(name, ...)
// in the top frame and returns s for chaining.
func (s *Substitutions) AddFuncSubstitution(name string, arity int, template string) *Substitutions {
	top := len(s.frames) - 1
	s.frames[top].funcs = append(s.frames[top].funcs, funcSubst{name: name, arity: arity, template: template})
	return s
}

// Apply rewrites code using every substitution registered so far, frame
// from innermost (top) to outermost (base), function substitutions before
// variable substitutions within each frame so that a function template's
// own body can still reference frame-local variables.
func (s *Substitutions) Apply(code string) (string, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		for _, fn := range f.funcs {
			var err error
			code, err = FunctionSubstitute(code, fn.name, fn.arity, fn.template)
			if err != nil {
				return "", err
			}
		}
		for name, value := range f.vars {
			code = Substitute(code, "$("+name+")", value)
		}
	}
	return code, nil
}
