package structure

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"
)

// CommandSet is the chunked command text generated by one pass, together
// with the structure files that contributed to it.
type CommandSet struct {
	files  []string
	chunks []string
}

// NewCommandSet creates a CommandSet.
func NewCommandSet(files, chunks []string) CommandSet {
	return CommandSet{files: slices.Clone(files), chunks: slices.Clone(chunks)}
}

// Files returns the contributing structure files.
func (c CommandSet) Files() []string { return slices.Clone(c.files) }

// Chunks returns the command chunks in send order.
func (c CommandSet) Chunks() []string { return slices.Clone(c.chunks) }

// IsEmpty reports whether there are no commands to send.
func (c CommandSet) IsEmpty() bool { return len(c.chunks) == 0 }

// Digest returns a hex SHA-256 over the chunks. Two sets with the same
// digest would send the same commands.
func (c CommandSet) Digest() string {
	h := sha256.New()
	for _, chunk := range c.chunks {
		h.Write([]byte(chunk))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports whether other carries the same commands.
func (c CommandSet) Equal(other CommandSet) bool {
	return slices.Equal(c.chunks, other.chunks)
}

// History records the last command set sent to a viewer session.
type History struct {
	id        int64
	viewer    string
	digest    string
	commands  CommandSet
	updatedAt time.Time
}

// NewHistory creates a History for a viewer session (not yet persisted).
func NewHistory(viewer string, commands CommandSet) History {
	return History{
		viewer:    viewer,
		digest:    commands.Digest(),
		commands:  commands,
		updatedAt: time.Now(),
	}
}

// ReconstructHistory recreates a History from persistence.
func ReconstructHistory(id int64, viewer, digest string, commands CommandSet, updatedAt time.Time) History {
	return History{
		id:        id,
		viewer:    viewer,
		digest:    digest,
		commands:  commands,
		updatedAt: updatedAt,
	}
}

// ID returns the database identifier.
func (h History) ID() int64 { return h.id }

// Viewer returns the viewer session identifier.
func (h History) Viewer() string { return h.viewer }

// Digest returns the digest of the recorded commands.
func (h History) Digest() string { return h.digest }

// Commands returns the recorded command set.
func (h History) Commands() CommandSet { return h.commands }

// UpdatedAt returns when the history was last written.
func (h History) UpdatedAt() time.Time { return h.updatedAt }
