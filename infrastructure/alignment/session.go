package alignment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helixml/molsync/domain/structure"
	"gopkg.in/yaml.v3"
)

// ErrNoStructures indicates a session names no structure files.
var ErrNoStructures = errors.New("session has no structures")

// Session describes an alignment, its hidden columns and the structures its
// sequences map onto. Relative paths resolve against the session file.
type Session struct {
	Alignment  string             `yaml:"alignment"`
	Features   string             `yaml:"features,omitempty"`
	Scheme     string             `yaml:"scheme,omitempty"`
	ScoreType  string             `yaml:"score_feature,omitempty"`
	Hidden     []string           `yaml:"hidden,omitempty"`
	Structures []SessionStructure `yaml:"structures"`

	dir string
}

// SessionStructure is one structure file and its chain mappings.
type SessionStructure struct {
	File     string           `yaml:"file"`
	Model    int              `yaml:"model"`
	Mappings []SessionMapping `yaml:"mappings"`
}

// SessionMapping maps an aligned sequence onto a chain. Sequence positions
// From..To (1-based, ungapped; To of zero means the last residue) map onto
// consecutive structure residues numbered from Start.
type SessionMapping struct {
	Sequence string `yaml:"sequence"`
	Chain    string `yaml:"chain"`
	Start    int    `yaml:"start"`
	From     int    `yaml:"from,omitempty"`
	To       int    `yaml:"to,omitempty"`
}

// LoadSession reads a YAML session file.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	s, err := ParseSession(data)
	if err != nil {
		return Session{}, err
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// ParseSession decodes and validates session YAML.
func ParseSession(data []byte) (Session, error) {
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	if len(s.Structures) == 0 {
		return Session{}, ErrNoStructures
	}
	for _, st := range s.Structures {
		if st.File == "" {
			return Session{}, fmt.Errorf("parse session: structure without file")
		}
		if st.Model < 0 {
			return Session{}, fmt.Errorf("parse session: %s: negative model %d", st.File, st.Model)
		}
		for _, m := range st.Mappings {
			if m.Start < 1 {
				return Session{}, fmt.Errorf("parse session: %s chain %q: start must be >= 1", st.File, m.Chain)
			}
		}
	}
	return s, nil
}

// Resolve returns path relative to the session file's directory.
func (s Session) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

// StructureList returns the session structures in file order.
func (s Session) StructureList() []structure.Structure {
	out := make([]structure.Structure, 0, len(s.Structures))
	for _, st := range s.Structures {
		out = append(out, structure.NewStructure(st.File, st.Model))
	}
	return out
}

// HiddenColumns parses the session's hidden column ranges.
func (s Session) HiddenColumns() (*HiddenColumns, error) {
	return ParseHiddenColumns(s.Hidden)
}

// Mapper builds the position mapper for the session against aln.
func (s Session) Mapper(aln *Alignment) *Mapper {
	m := NewMapper()
	for _, st := range s.Structures {
		for _, sm := range st.Mappings {
			m.Add(st.File, SequentialMapping(aln, sm.Sequence, sm.Chain, sm.Start, sm.From, sm.To))
		}
	}
	return m
}

// Mapper is a PositionMapper backed by precomputed mappings.
type Mapper struct {
	byFile map[string][]structure.Mapping
}

// NewMapper creates an empty Mapper.
func NewMapper() *Mapper {
	return &Mapper{byFile: make(map[string][]structure.Mapping)}
}

// Add registers a mapping for file.
func (m *Mapper) Add(file string, mapping structure.Mapping) {
	m.byFile[file] = append(m.byFile[file], mapping)
}

// ForFile implements structure.PositionMapper.
func (m *Mapper) ForFile(file string) []structure.Mapping {
	return m.byFile[file]
}

// SequentialMapping maps ungapped positions from..to of sequenceID onto
// residues numbered consecutively from start. A from of zero means the first
// residue and a to of zero the last.
func SequentialMapping(aln *Alignment, sequenceID, chain string, start, from, to int) structure.Mapping {
	if from < 1 {
		from = 1
	}
	residues := make(map[int]int)
	for col := 0; col < aln.Width(); col++ {
		pos, ok := aln.SequencePosition(sequenceID, col)
		if !ok || pos < from || (to > 0 && pos > to) {
			continue
		}
		residues[col] = start + pos - from
	}
	return structure.NewMapping(sequenceID, chain, residues)
}
