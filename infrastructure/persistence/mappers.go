package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/helixml/molsync/domain/structure"
)

// CommandHistoryMapper maps between structure.History and CommandHistoryModel.
type CommandHistoryMapper struct{}

// ToDomain converts a CommandHistoryModel to a structure.History.
func (CommandHistoryMapper) ToDomain(m CommandHistoryModel) (structure.History, error) {
	files, err := decodeStrings(m.Files)
	if err != nil {
		return structure.History{}, fmt.Errorf("decode files of %q: %w", m.Viewer, err)
	}
	commands, err := decodeStrings(m.Commands)
	if err != nil {
		return structure.History{}, fmt.Errorf("decode commands of %q: %w", m.Viewer, err)
	}
	return structure.ReconstructHistory(
		m.ID,
		m.Viewer,
		m.Digest,
		structure.NewCommandSet(files, commands),
		m.UpdatedAt,
	), nil
}

// ToModel converts a structure.History to a CommandHistoryModel.
func (CommandHistoryMapper) ToModel(h structure.History) CommandHistoryModel {
	return CommandHistoryModel{
		ID:        h.ID(),
		Viewer:    h.Viewer(),
		Digest:    h.Digest(),
		Files:     encodeStrings(h.Commands().Files()),
		Commands:  encodeStrings(h.Commands().Chunks()),
		UpdatedAt: h.UpdatedAt(),
	}
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	// Marshalling a string slice cannot fail.
	b, _ := json.Marshal(values)
	return string(b)
}

func decodeStrings(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, err
	}
	return values, nil
}
