package atomspec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Model is the set of residues sharing one colour or attribute value, indexed
// by structure model number and chain. Models iterate in ascending number,
// chains in the order they were first added.
type Model struct {
	models map[int]*modelChains
}

type modelChains struct {
	order  []string
	chains map[string]*ChainRanges
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{models: make(map[int]*modelChains)}
}

// AddRange adds residues start..end of chain in model, merging with any
// range it overlaps or abuts. An empty chain means the structure carries no
// chain code. It panics on a negative model or an invalid range, which can
// only come from a caller bug.
func (m *Model) AddRange(model, start, end int, chain string) {
	if model < 0 {
		panic(fmt.Sprintf("atomspec: invalid model number %d", model))
	}
	r := NewRange(start, end)

	mc, ok := m.models[model]
	if !ok {
		mc = &modelChains{chains: make(map[string]*ChainRanges)}
		m.models[model] = mc
	}
	cr, ok := mc.chains[chain]
	if !ok {
		cr = &ChainRanges{}
		mc.chains[chain] = cr
		mc.order = append(mc.order, chain)
	}
	cr.Add(r)
}

// Models returns the model numbers in ascending order.
func (m *Model) Models() []int {
	out := make([]int, 0, len(m.models))
	for n := range m.models {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Chains returns the chains of model in first-insertion order.
func (m *Model) Chains(model int) []string {
	mc, ok := m.models[model]
	if !ok {
		return nil
	}
	return slices.Clone(mc.order)
}

// Ranges returns the merged ranges of chain in model, ascending.
func (m *Model) Ranges(model int, chain string) []Range {
	mc, ok := m.models[model]
	if !ok {
		return nil
	}
	cr, ok := mc.chains[chain]
	if !ok {
		return nil
	}
	return cr.Ranges()
}

// IsEmpty reports whether no residues have been added.
func (m *Model) IsEmpty() bool {
	return len(m.models) == 0
}

// Residues returns the total number of residues across all models and chains.
func (m *Model) Residues() int {
	n := 0
	for _, mc := range m.models {
		for _, cr := range mc.chains {
			n += cr.Residues()
		}
	}
	return n
}

// String renders the Chimera atomspec, e.g. "#1:2-5.A,7.A|#2:8.B".
func (m *Model) String() string {
	var sb strings.Builder
	for i, model := range m.Models() {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(model))
		sb.WriteByte(':')
		first := true
		for _, chain := range m.Chains(model) {
			for _, r := range m.Ranges(model, chain) {
				if !first {
					sb.WriteByte(',')
				}
				first = false
				sb.WriteString(r.String())
				sb.WriteByte('.')
				sb.WriteString(chain)
			}
		}
	}
	return sb.String()
}
