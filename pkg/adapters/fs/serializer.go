package fs

import (
	"fmt"
	"os"

	"github.com/aretw0/astronote/pkg/core"
	"gopkg.in/yaml.v3"
)

// maxMetadataSize caps metadata reads at 10 KiB. A legitimate note record is
// a few hundred bytes; anything bigger is corrupted or hostile, and reading
// it whole would hand an attacker unbounded memory. Rather fail.
const maxMetadataSize = 10 * 1024

// encodeMetadata serializes a note to its on-disk YAML form.
// The relational id is excluded (yaml:"-" on the projection).
func encodeMetadata(n *core.Note) ([]byte, error) {
	serialized, err := n.Serialize()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrSerialization, n.Identity, err)
	}
	return data, nil
}

// readMetadata loads and decodes one metadata file.
// Returns os.ErrNotExist unchanged so callers can map it to core.ErrNotFound.
func readMetadata(path string) (*core.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxMetadataSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", core.ErrSerialization, path, info.Size(), maxMetadataSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrStorage, path, err)
	}

	var serialized core.SerializedNote
	if err := yaml.Unmarshal(data, &serialized); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrSerialization, path, err)
	}
	return serialized.Deserialize()
}
