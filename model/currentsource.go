package model

import "github.com/sbl8/sublation/core"

// CurrentSource is an external injection applied to one neuron group every
// timestep. Target is a weak reference (neuron group name).
type CurrentSource struct {
	Name     string
	Snippet  *core.Snippet
	Target   string
	Params   map[string]float64
	VarInits []VarInit
	Locations map[string]core.VarLocation
}

func newCurrentSource(name string, snippet *core.Snippet, target string) *CurrentSource {
	return &CurrentSource{
		Name:      name,
		Snippet:   snippet,
		Target:    target,
		Params:    make(map[string]float64),
		Locations: make(map[string]core.VarLocation),
	}
}
