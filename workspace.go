package molsync

import (
	"fmt"

	"github.com/helixml/molsync/application/service"
	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/infrastructure/alignment"
)

// Workspace is a loaded session: the alignment, its features, its hidden
// columns and the structures it maps onto.
type Workspace struct {
	path      string
	session   alignment.Session
	alignment *alignment.Alignment
	features  *alignment.FeatureTable
	hidden    *alignment.HiddenColumns
	mapper    *alignment.Mapper
}

// LoadWorkspace reads a session file and everything it references.
func LoadWorkspace(path string) (*Workspace, error) {
	session, err := alignment.LoadSession(path)
	if err != nil {
		return nil, err
	}
	return newWorkspace(path, session)
}

func newWorkspace(path string, session alignment.Session) (*Workspace, error) {
	if session.Alignment == "" {
		return nil, fmt.Errorf("%s: session has no alignment", path)
	}
	aln, err := alignment.LoadFASTAFile(session.Resolve(session.Alignment))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	features := alignment.NewFeatureTable(aln)
	if session.Features != "" {
		features, err = alignment.LoadGFFFile(session.Resolve(session.Features), aln)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	hidden, err := session.HiddenColumns()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Workspace{
		path:      path,
		session:   session,
		alignment: aln,
		features:  features,
		hidden:    hidden,
		mapper:    session.Mapper(aln),
	}, nil
}

// Path returns the session file path.
func (w *Workspace) Path() string { return w.path }

// Alignment returns the loaded alignment.
func (w *Workspace) Alignment() *alignment.Alignment { return w.alignment }

// Features returns the loaded sequence features.
func (w *Workspace) Features() *alignment.FeatureTable { return w.features }

// Structures returns the session structures in file order.
func (w *Workspace) Structures() []structure.Structure { return w.session.StructureList() }

// View returns the snapshot a colouring pass reads.
func (w *Workspace) View() service.View {
	return service.NewView(w.alignment, w.mapper, w.hidden)
}

// Resolver returns the colour resolver named by the session scheme. The
// score scheme interpolates between low and high over the scores of the
// session's score feature.
func (w *Workspace) Resolver(low, high colour.RGB) (structure.ColourResolver, error) {
	if w.session.Scheme == alignment.SchemeScore {
		if w.session.ScoreType == "" {
			return nil, fmt.Errorf("%s: score scheme needs score_feature", w.path)
		}
		return alignment.NewScoreColour(w.features, w.session.ScoreType, low, high), nil
	}
	return alignment.SchemeForName(w.session.Scheme, w.alignment)
}
