package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"

	"github.com/oriumgames/voxelcore/voxel/world"
)

// ErrNotFound is returned by a Store when no snapshot exists for a chunk
// position. It mirrors leveldb.ErrNotFound so every backend reports
// "not found" the same way.
var ErrNotFound = leveldb.ErrNotFound

// Store persists and retrieves raw chunk snapshot bytes keyed by position.
type Store interface {
	Put(pos world.ChunkPos, data []byte) error
	Get(pos world.ChunkPos) ([]byte, error)
}

// MemStore is an in-process Store: snapshotting without touching disk,
// useful for tests and for a World that wants undo/rollback semantics.
type MemStore struct {
	data map[world.ChunkPos][]byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[world.ChunkPos][]byte)}
}

func (s *MemStore) Put(pos world.ChunkPos, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[pos] = cp
	return nil
}

func (s *MemStore) Get(pos world.ChunkPos) ([]byte, error) {
	d, ok := s.data[pos]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// LevelDBStore persists chunk snapshots in a LevelDB table, one key per
// ChunkPos, grounded on the teacher's use of LevelDB as the Pile format's
// on-disk backend.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (creating if needed) a LevelDB database at dir.
func OpenLevelDBStore(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("save: open leveldb at %q: %w", dir, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the underlying LevelDB handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func (s *LevelDBStore) Put(pos world.ChunkPos, data []byte) error {
	return s.db.Put(chunkKey(pos), data, nil)
}

func (s *LevelDBStore) Get(pos world.ChunkPos) ([]byte, error) {
	v, err := s.db.Get(chunkKey(pos), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save: get %+v: %w", pos, err)
	}
	return v, nil
}

func chunkKey(pos world.ChunkPos) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, int64(pos.X))
	_ = binary.Write(&buf, binary.BigEndian, int64(pos.Y))
	_ = binary.Write(&buf, binary.BigEndian, int64(pos.Z))
	return buf.Bytes()
}
