package model

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"

	"github.com/sbl8/sublation/core"
	"github.com/sbl8/sublation/internal/ctxlog"
)

// Finalize runs the four-step finalization pass described in spec.md §4.2
// exactly once: materialize derived parameters, propagate delay and queue
// requirements, merge compatible postsynaptic models, and check
// acyclicity. Calling it a second time fails outright rather than
// re-deriving facts; the model is frozen after a successful call.
//
// Grounded on model/graph.go's Optimize/topologicalSort pairing: the
// acyclicity check reuses that file's Kahn's-algorithm shape, generalized
// from flat graph nodes to named neuron/synapse groups.
func (m *Model) Finalize(ctx context.Context) error {
	if m.finalized {
		return errAlreadyFinalized
	}
	log := ctxlog.FromContext(ctx)

	var problems []error
	problems = append(problems, m.materializeDerivedParams()...)
	m.propagateDelayAndQueues()
	m.mergeIncomingPostsynapticModels()

	if err := m.checkAcyclicity(); err != nil {
		problems = append(problems, err)
	}

	if err := newFinalizeError(problems); err != nil {
		return err
	}

	m.finalized = true
	totalNeurons, footprint := m.estimateFootprint()
	log.Info("model finalized",
		"name", m.name,
		"neuron_groups", len(m.neuronGroups),
		"synapse_groups", len(m.synapseGroups),
		"current_sources", len(m.currentSources),
		"neurons", humanize.Comma(int64(totalNeurons)),
		"estimated_state_memory", datasize.ByteSize(footprint).HumanReadable(),
	)
	return nil
}

// estimateFootprint totals the neuron count across every group and a rough
// state-memory figure (every declared Var, one element per neuron/synapse
// instance, at the model's own precision width) — the same
// "neurons \t NeurMem" shape network.go's own finalize summary reports,
// generalized from one layer type to Model's three group kinds.
func (m *Model) estimateFootprint() (int, uint64) {
	width := uint64(4)
	if m.precision == core.PrecisionDouble {
		width = 8
	}

	var totalNeurons int
	var bytes uint64
	for _, ng := range m.neuronGroups {
		totalNeurons += ng.Count
		if ng.Snippet != nil {
			bytes += uint64(len(ng.Snippet.Vars)) * uint64(ng.Count) * width
		}
	}
	for _, sg := range m.synapseGroups {
		maxConns := sg.MaxConnections
		if maxConns == 0 {
			maxConns = 1
		}
		rows := 1
		if src, ok := m.NeuronGroup(sg.Src); ok {
			rows = src.Count
		}
		if sg.WUMSnippet != nil {
			bytes += uint64(len(sg.WUMSnippet.Vars)) * uint64(rows) * uint64(maxConns) * width
		}
	}
	for _, cs := range m.currentSources {
		if cs.Snippet != nil {
			bytes += uint64(len(cs.Snippet.Vars)) * width
		}
	}
	return totalNeurons, bytes
}

// materializeDerivedParams runs step 1: invoke each snippet's derivation
// function with the owning group's parameter values and the model's dt.
func (m *Model) materializeDerivedParams() []error {
	var problems []error
	for _, ng := range m.neuronGroups {
		problems = append(problems, materializeFor(ng.Snippet, ng.Params, m.dt, ng.DerivedParams, fmt.Sprintf("neuron group %q", ng.Name))...)
	}
	for _, sg := range m.synapseGroups {
		problems = append(problems, materializeFor(sg.WUMSnippet, sg.WUMParams, m.dt, sg.WUMParams, fmt.Sprintf("synapse group %q weight update", sg.Name))...)
		problems = append(problems, materializeFor(sg.PSMSnippet, sg.PSMParams, m.dt, sg.PSMParams, fmt.Sprintf("synapse group %q postsynaptic model", sg.Name))...)
	}
	for _, cs := range m.currentSources {
		problems = append(problems, materializeFor(cs.Snippet, cs.Params, m.dt, cs.Params, fmt.Sprintf("current source %q", cs.Name))...)
	}
	return problems
}

// materializeFor invokes every derived parameter function declared by
// snippet, writing results into dest (which may alias params itself, since
// derived parameters and regular parameters share one values namespace at
// generation time).
func materializeFor(snippet *core.Snippet, params map[string]float64, dt float64, dest map[string]float64, label string) []error {
	if snippet == nil {
		return nil
	}
	var problems []error
	values := make([]float64, len(snippet.ParamNames))
	for i, pn := range snippet.ParamNames {
		v, ok := params[pn]
		if !ok {
			problems = append(problems, fmt.Errorf("%s: missing value for parameter %q", label, pn))
			continue
		}
		values[i] = v
	}
	for _, dp := range snippet.DerivedParams {
		if dp.Func == nil {
			problems = append(problems, fmt.Errorf("%s: derived parameter %q has a nil function", label, dp.Name))
			continue
		}
		dest[dp.Name] = dp.Func(values, dt)
	}
	return problems
}

// propagateDelayAndQueues runs step 2: scan each outgoing synapse group's
// weight-update code for $(X_pre) references to the source neuron group's
// own variables; any such reference from a group with delay_steps > 0
// requires a queue and widens num_delay_slots.
func (m *Model) propagateDelayAndQueues() {
	for _, ng := range m.neuronGroups {
		if ng.Snippet == nil {
			continue
		}
		for _, synName := range ng.OutgoingSynapses {
			sg, ok := m.SynapseGroup(synName)
			if !ok || sg.WUMSnippet == nil || sg.DelaySteps <= 0 {
				continue
			}
			code := concatCode(sg.WUMSnippet)
			for _, v := range ng.Snippet.Vars {
				if strings.Contains(code, "$("+v.Name+"_pre)") {
					ng.IsQueueRequired[v.Name] = true
					if ng.NumDelaySlots < sg.DelaySteps+1 {
						ng.NumDelaySlots = sg.DelaySteps + 1
					}
				}
			}
		}
	}
}

// concatCode joins every code role of a snippet into one string, enough to
// scan for placeholder references regardless of which role they appear in.
func concatCode(snippet *core.Snippet) string {
	if snippet == nil || len(snippet.Code) == 0 {
		return ""
	}
	var b strings.Builder
	roles := make([]core.Role, 0, len(snippet.Code))
	for role := range snippet.Code {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	for _, role := range roles {
		b.WriteString(snippet.Code[role])
		b.WriteByte('\n')
	}
	return b.String()
}

// mergeIncomingPostsynapticModels runs step 3: two incoming synapse groups
// of the same neuron group merge iff they share postsynaptic snippet
// identity, parameter values and delay requirement; merged groups
// accumulate via atomic add into a single inSyn buffer.
func (m *Model) mergeIncomingPostsynapticModels() {
	if !m.mergePostsynapticModels {
		return
	}
	for _, ng := range m.neuronGroups {
		type bucket struct {
			key    string
			groups []*SynapseGroup
		}
		var buckets []*bucket
		index := make(map[string]int)

		for _, synName := range ng.IncomingSynapses {
			sg, ok := m.SynapseGroup(synName)
			if !ok || sg.PSMSnippet == nil {
				continue
			}
			key := psmMergeKey(sg)
			idx, exists := index[key]
			if !exists {
				idx = len(buckets)
				index[key] = idx
				buckets = append(buckets, &bucket{key: key})
			}
			buckets[idx].groups = append(buckets[idx].groups, sg)
		}

		for _, b := range buckets {
			if len(b.groups) < 2 {
				continue
			}
			for _, sg := range b.groups {
				sg.IsPSModelMerged = true
			}
			ng.MergedInSyn = append(ng.MergedInSyn, b.groups[0].Name)
		}
	}
}

// psmMergeKey identifies the merge-compatibility class of a synapse
// group's postsynaptic model: same snippet identity, same parameter
// values, same delay requirement.
func psmMergeKey(sg *SynapseGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p|%d|", sg.PSMSnippet, sg.DelaySteps)

	names := make([]string, 0, len(sg.PSMParams))
	for k := range sg.PSMParams {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&b, "%s=%v;", k, sg.PSMParams[k])
	}
	return b.String()
}

// checkAcyclicity runs step 4: no zero-delay synapse edge may form a cycle
// among neuron groups, since a zero-delay edge is a same-timestep
// dependency that cannot be resolved if it loops back on itself.
func (m *Model) checkAcyclicity() error {
	adj := make(map[string][]string)
	inDegree := make(map[string]int)
	for _, ng := range m.neuronGroups {
		inDegree[ng.Name] = 0
	}
	for _, sg := range m.synapseGroups {
		if sg.DelaySteps > 0 {
			continue
		}
		adj[sg.Src] = append(adj[sg.Src], sg.Trg)
		inDegree[sg.Trg]++
	}

	queue := make([]string, 0, len(m.neuronGroups))
	for _, ng := range m.neuronGroups {
		if inDegree[ng.Name] == 0 {
			queue = append(queue, ng.Name)
		}
	}

	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adj[cur] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != len(m.neuronGroups) {
		return fmt.Errorf("model: zero-delay dependency cycle detected (resolved %d of %d neuron groups)", visited, len(m.neuronGroups))
	}
	return nil
}
