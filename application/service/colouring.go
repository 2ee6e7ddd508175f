// Package service implements the colouring passes that turn alignment
// colours and features into structure viewer commands.
package service

import (
	"context"
	"log/slog"

	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/infrastructure/dialect"
)

// View is one consistent snapshot of the alignment, its structure mappings
// and its hidden columns. A pass reads it and never modifies it.
type View struct {
	alignment structure.Alignment
	mapper    structure.PositionMapper
	hidden    structure.HiddenColumns
}

// NewView creates a View. A nil hidden means every column is visible.
func NewView(aln structure.Alignment, mapper structure.PositionMapper, hidden structure.HiddenColumns) View {
	if hidden == nil {
		hidden = structure.NoHiddenColumns{}
	}
	return View{alignment: aln, mapper: mapper, hidden: hidden}
}

// ColouringOption configures a Colouring.
type ColouringOption func(*Colouring)

// WithDialect sets the command dialect. Defaults to Chimera.
func WithDialect(d dialect.Dialect) ColouringOption {
	return func(c *Colouring) { c.dialect = d }
}

// WithMaxChunkLength bounds each command chunk, in runes.
func WithMaxChunkLength(n int) ColouringOption {
	return func(c *Colouring) { c.maxChunkLength = n }
}

// WithHiddenColour sets the colour used for hidden columns.
func WithHiddenColour(rgb colour.RGB) ColouringOption {
	return func(c *Colouring) { c.hiddenColour = rgb }
}

// WithDuplicateResiduePolicy sets the duplicate residue policy.
func WithDuplicateResiduePolicy(p DuplicateResiduePolicy) ColouringOption {
	return func(c *Colouring) { c.duplicates = p }
}

// WithHiddenColumnPolicy sets the hidden column policy.
func WithHiddenColumnPolicy(p HiddenColumnPolicy) ColouringOption {
	return func(c *Colouring) { c.hidden = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ColouringOption {
	return func(c *Colouring) { c.logger = l }
}

// Colouring generates viewer commands from a View. Each call is a separate
// pass with its own residue maps; a Colouring holds no per-pass state and
// may be reused, but the collaborators handed to one pass must not be used
// concurrently by another.
type Colouring struct {
	dialect        dialect.Dialect
	maxChunkLength int
	hiddenColour   colour.RGB
	duplicates     DuplicateResiduePolicy
	hidden         HiddenColumnPolicy
	logger         *slog.Logger
}

// NewColouring creates a Colouring.
func NewColouring(opts ...ColouringOption) *Colouring {
	c := &Colouring{
		dialect:        dialect.Chimera{},
		maxChunkLength: dialect.DefaultMaxChunkLength,
		hiddenColour:   colour.Hidden,
		duplicates:     FirstColourWins,
		hidden:         OverrideHidden,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Dialect returns the configured dialect.
func (c *Colouring) Dialect() dialect.Dialect { return c.dialect }

// ColourMap resolves the colour of every mapped residue and groups residues
// by colour. It returns the map and the files that contributed residues.
func (c *Colouring) ColourMap(ctx context.Context, view View, structures []structure.Structure, resolver structure.ColourResolver) (*atomspec.KeyedMap[colour.RGB], []string) {
	colours := atomspec.NewKeyedMap[colour.RGB]()
	hiddenResidues := 0

	files := c.walk(ctx, view, structures, func(st structure.Structure, m structure.Mapping, column, residue int) bool {
		rgb := c.hiddenColour
		if c.hidden == OverrideHidden && view.hidden.IsHidden(column) {
			hiddenResidues++
			c.logger.DebugContext(ctx, "residue under hidden column",
				slog.String("file", st.File()),
				slog.String("chain", m.Chain()),
				slog.Int("residue", residue),
				slog.Int("column", column+1),
				slog.Int("view_column", view.hidden.AdjustForHidden(column)+1),
			)
		} else {
			resolved, ok := resolver.ColourFor(m.SequenceID(), column)
			if !ok {
				return false
			}
			rgb = resolved
		}
		colours.AddRange(rgb, st.Model(), residue, residue, m.Chain())
		return true
	})

	c.logger.DebugContext(ctx, "colour map built",
		slog.Int("colours", colours.Len()),
		slog.Int("files", len(files)),
		slog.Int("hidden_residues", hiddenResidues),
	)
	return colours, files
}

// ColourBySequence generates the commands colouring each structure residue
// as its aligned residue is coloured in the alignment.
func (c *Colouring) ColourBySequence(ctx context.Context, view View, structures []structure.Structure, resolver structure.ColourResolver) structure.CommandSet {
	colours, files := c.ColourMap(ctx, view, structures, resolver)
	chunks := dialect.BuildColourCommands(c.dialect, colours, c.maxChunkLength)

	c.logger.InfoContext(ctx, "colour by sequence commands generated",
		slog.String("dialect", c.dialect.Name()),
		slog.Int("colours", colours.Len()),
		slog.Int("chunks", chunks.Len()),
	)
	return structure.NewCommandSet(files, chunks.All())
}

// FeatureMap resolves the value of each named feature at every mapped
// residue and groups residues by feature and value. Hidden columns are not
// overridden.
func (c *Colouring) FeatureMap(ctx context.Context, view View, structures []structure.Structure, resolver structure.AttributeResolver, features []string) (*atomspec.FeatureMap, []string) {
	featureMap := atomspec.NewFeatureMap()
	contributed := make(map[string]bool)

	for _, feature := range features {
		files := c.walk(ctx, view, structures, func(st structure.Structure, m structure.Mapping, column, residue int) bool {
			value, ok := resolver.AttributeValue(m.SequenceID(), column, feature)
			if !ok {
				return false
			}
			featureMap.AddRange(feature, value, st.Model(), residue, residue, m.Chain())
			return true
		})
		for _, f := range files {
			contributed[f] = true
		}
	}

	var files []string
	for _, st := range structures {
		if contributed[st.File()] {
			files = append(files, st.File())
			delete(contributed, st.File())
		}
	}
	return featureMap, files
}

// SetAttributes generates commands setting one residue attribute per
// feature, valued by the feature at each residue.
func (c *Colouring) SetAttributes(ctx context.Context, view View, structures []structure.Structure, resolver structure.AttributeResolver, features []string) structure.CommandSet {
	featureMap, files := c.FeatureMap(ctx, view, structures, resolver, features)
	chunks := dialect.BuildSetAttributeCommands(c.dialect, featureMap, c.maxChunkLength)

	c.logger.InfoContext(ctx, "set attribute commands generated",
		slog.String("dialect", c.dialect.Name()),
		slog.Int("features", featureMap.Len()),
		slog.Int("chunks", chunks.Len()),
	)
	return structure.NewCommandSet(files, chunks.All())
}

// ColourByChain generates the commands giving each chain its own colour.
func (c *Colouring) ColourByChain(structures []structure.Structure) structure.CommandSet {
	chunks := dialect.Pack(c.dialect.ColourByChain(), c.dialect.Separator(), c.maxChunkLength)
	return structure.NewCommandSet(structureFiles(structures), chunks.All())
}

// ColourByCharge generates the commands colouring charged residues.
func (c *Colouring) ColourByCharge(structures []structure.Structure) structure.CommandSet {
	chunks := dialect.Pack(c.dialect.ColourByCharge(), c.dialect.Separator(), c.maxChunkLength)
	return structure.NewCommandSet(structureFiles(structures), chunks.All())
}

func structureFiles(structures []structure.Structure) []string {
	files := make([]string, 0, len(structures))
	for _, st := range structures {
		files = append(files, st.File())
	}
	return files
}

// residueKey identifies a structure residue within one pass.
type residueKey struct {
	model   int
	chain   string
	residue int
}

// recordFunc files one resolved residue and reports whether it was
// recorded. A residue that was not recorded stays available to later
// columns.
type recordFunc func(st structure.Structure, m structure.Mapping, column, residue int) bool

// walk visits every gap-free, mapped column of every mapping of every
// structure, applying the duplicate residue policy, and returns the files
// for which record accepted at least one residue.
func (c *Colouring) walk(ctx context.Context, view View, structures []structure.Structure, record recordFunc) []string {
	width := view.alignment.Width()
	seen := make(map[residueKey]struct{})
	var files []string

	for _, st := range structures {
		mappings := view.mapper.ForFile(st.File())
		if len(mappings) == 0 {
			c.logger.DebugContext(ctx, "no mapping for structure, skipping", slog.String("file", st.File()))
			continue
		}

		recorded := 0
		for _, m := range mappings {
			last := 0
			for column := 0; column < width; column++ {
				ch, ok := view.alignment.Residue(m.SequenceID(), column)
				if !ok || structure.IsGap(ch) {
					continue
				}
				residue, ok := m.ResidueFor(column)
				if !ok || residue < 1 {
					continue
				}

				key := residueKey{model: st.Model(), chain: m.Chain(), residue: residue}
				switch c.duplicates {
				case ConsecutiveOnly:
					if residue == last {
						continue
					}
					last = residue
				default:
					if _, dup := seen[key]; dup {
						continue
					}
				}

				if record(st, m, column, residue) {
					seen[key] = struct{}{}
					recorded++
				}
			}
		}

		c.logger.DebugContext(ctx, "structure processed",
			slog.String("file", st.File()),
			slog.Int("model", st.Model()),
			slog.Int("mappings", len(mappings)),
			slog.Int("residues", recorded),
		)
		if recorded > 0 {
			files = append(files, st.File())
		}
	}
	return files
}
