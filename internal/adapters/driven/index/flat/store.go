package flat

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// File format constants for the binary vector file.
const (
	// magic identifies a SARA flat vector file.
	magic = "SARAVEC1"

	// MetaSuffix is appended to the index path to derive the metadata
	// sidecar location.
	MetaSuffix = ".meta.json"
)

// Store persists flat index pairs. The vector file holds a fixed header
// (magic, dimension, count) followed by count*dimension little-endian
// float32 values; the metadata sidecar is a UTF-8 JSON array of researchers
// in the same order.
type Store struct{}

// NewStore creates a flat index store.
func NewStore() *Store {
	return &Store{}
}

// MetaPath derives the metadata sidecar location from an index path.
func MetaPath(path string) string {
	return path + MetaSuffix
}

// Save writes the index pair to path and MetaPath(path). Both files are
// staged as temporaries and renamed into place after both writes succeed,
// so a failed save never overwrites a previously good pair. The two
// renames are not a single atomic step: a crash between them leaves a
// mismatched pair, which Load rejects as corrupt and a rebuild repairs.
func (s *Store) Save(
	_ context.Context, index driven.VectorIndex, metadata []domain.Researcher, path string,
) error {
	idx, ok := index.(*Index)
	if !ok {
		return fmt.Errorf("flat: cannot persist index of type %T: %w", index, domain.ErrInvalidInput)
	}
	if idx.Len() != len(metadata) {
		return fmt.Errorf("flat: %d vectors but %d metadata entries: %w",
			idx.Len(), len(metadata), domain.ErrCorruptIndex)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("flat: create index directory: %w", err)
		}
	}

	vecTmp := path + ".tmp"
	metaTmp := MetaPath(path) + ".tmp"

	if err := writeVectors(vecTmp, idx); err != nil {
		os.Remove(vecTmp)
		return err
	}
	if err := writeMetadata(metaTmp, metadata); err != nil {
		os.Remove(vecTmp)
		os.Remove(metaTmp)
		return err
	}

	if err := os.Rename(vecTmp, path); err != nil {
		os.Remove(vecTmp)
		os.Remove(metaTmp)
		return fmt.Errorf("flat: publish vector file: %w", err)
	}
	if err := os.Rename(metaTmp, MetaPath(path)); err != nil {
		os.Remove(metaTmp)
		return fmt.Errorf("flat: publish metadata file: %w", err)
	}
	return nil
}

// Load reads a previously saved pair from path and MetaPath(path).
func (s *Store) Load(_ context.Context, path string) (driven.VectorIndex, []domain.Researcher, error) {
	idx, err := readVectors(path)
	if err != nil {
		return nil, nil, err
	}

	metadata, err := readMetadata(MetaPath(path))
	if err != nil {
		return nil, nil, err
	}

	if idx.Len() != len(metadata) {
		return nil, nil, fmt.Errorf("flat: %q holds %d vectors but %q holds %d records: %w",
			path, idx.Len(), MetaPath(path), len(metadata), domain.ErrCorruptIndex)
	}
	return idx, metadata, nil
}

func writeVectors(path string, idx *Index) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("flat: create vector file: %w", err)
	}

	if err := encodeVectors(f, idx); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flat: close vector file: %w", err)
	}
	return nil
}

func encodeVectors(w io.Writer, idx *Index) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return fmt.Errorf("flat: write header: %w", err)
	}

	header := []uint32{uint32(idx.Dimensions()), uint32(idx.Len())}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("flat: write header: %w", err)
	}

	for i := 0; i < idx.Len(); i++ {
		if err := binary.Write(w, binary.LittleEndian, idx.vectorAt(i)); err != nil {
			return fmt.Errorf("flat: write vector %d: %w", i, err)
		}
	}
	return nil
}

func readVectors(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("flat: vector file %q: %w", path, domain.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("flat: open vector file %q: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, fmt.Errorf("flat: read header of %q: %w", path, domain.ErrCorruptIndex)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("flat: %q is not a SARA vector file: %w", path, domain.ErrCorruptIndex)
	}

	var header [2]uint32
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("flat: read header of %q: %w", path, domain.ErrCorruptIndex)
	}
	dim, count := int(header[0]), int(header[1])
	if dim <= 0 && count > 0 {
		return nil, fmt.Errorf("flat: %q declares dimension %d: %w", path, dim, domain.ErrCorruptIndex)
	}

	idx := &Index{dim: dim, vectors: make([][]float32, 0, count)}
	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("flat: %q truncated at vector %d of %d: %w",
				path, i, count, domain.ErrCorruptIndex)
		}
		idx.vectors = append(idx.vectors, vec)
	}
	return idx, nil
}

func writeMetadata(path string, metadata []domain.Researcher) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("flat: encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("flat: write metadata file: %w", err)
	}
	return nil
}

func readMetadata(path string) ([]domain.Researcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("flat: metadata file %q: %w", path, domain.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("flat: read metadata file %q: %w", path, err)
	}

	var metadata []domain.Researcher
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("flat: decode metadata file %q: %w", path, domain.ErrCorruptIndex)
	}
	return metadata, nil
}
