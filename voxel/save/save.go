// Package save is an optional, explicitly-out-of-the-hot-path snapshot
// codec for a World: it is not required for BitField/TypeRegistry/Block/
// Chunk/World to function, only an illustration of how the same repo would
// carry the ambient codec stack (compression, NBT side data, cross-save
// identifiers) the way the teacher's own world-format code does.
package save

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/sandertv/gophertunnel/minecraft/nbt"

	"github.com/oriumgames/voxelcore/voxel/world"
)

// CompressionLevel selects the zstd effort used when writing a snapshot,
// mirroring the teacher's CompressionLevel enum.
type CompressionLevel int

const (
	CompressionLevelNone CompressionLevel = iota
	CompressionLevelFast
	CompressionLevelDefault
	CompressionLevelBest
)

func (l CompressionLevel) zstdLevel() zstd.EncoderLevel {
	switch l {
	case CompressionLevelFast:
		return zstd.SpeedFastest
	case CompressionLevelBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

// magic identifies a voxel chunk snapshot header.
const magic = "VXCS"

// Meta is small side data attached to a snapshot: a stable per-snapshot
// identifier plus the name of whatever produced it. It exists for save
// browsing and test fixtures, not for anything the World reads back, and
// round-trips through NBT the way the teacher's settings file does.
type Meta struct {
	SnapshotID uuid.UUID `nbt:"snapshot_id"`
	Generator  string    `nbt:"generator"`
}

// EncodeChunk writes a chunk's raw packed cell grid plus meta to w,
// optionally zstd-compressed. Heap-stored blocks are captured only by
// their slot tag, since boxed block state has no generic serialization in
// the storage core itself — a full round trip of heap contents would
// require a per-type codec the spec does not define.
func EncodeChunk(w io.Writer, c *world.Chunk, meta Meta, level CompressionLevel) error {
	metaBytes, err := nbt.Marshal(meta)
	if err != nil {
		return fmt.Errorf("save: marshal meta: %w", err)
	}

	var body bytes.Buffer
	if err := binary.Write(&body, binary.BigEndian, uint32(len(metaBytes))); err != nil {
		return fmt.Errorf("save: write meta length: %w", err)
	}
	if _, err := body.Write(metaBytes); err != nil {
		return fmt.Errorf("save: write meta: %w", err)
	}
	cells := c.Cells()
	if err := binary.Write(&body, binary.BigEndian, cells); err != nil {
		return fmt.Errorf("save: write cells: %w", err)
	}

	compressed := level != CompressionLevelNone && body.Len() > 256
	header := [8]byte{}
	copy(header[:4], magic)
	if compressed {
		header[4] = 1
	}
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("save: write header: %w", err)
	}

	if !compressed {
		_, err := w.Write(body.Bytes())
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level.zstdLevel()))
	if err != nil {
		return fmt.Errorf("save: new zstd writer: %w", err)
	}
	if _, err := enc.Write(body.Bytes()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("save: compress body: %w", err)
	}
	return enc.Close()
}

// DecodedChunk is the result of decoding a snapshot: the metadata plus the
// raw cell grid it was written with.
type DecodedChunk struct {
	Meta  Meta
	Cells [world.ChunkVolume]uint16
}

// DecodeChunk reads a snapshot written by EncodeChunk.
func DecodeChunk(r io.Reader) (DecodedChunk, error) {
	var out DecodedChunk

	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return out, fmt.Errorf("save: read header: %w", err)
	}
	if string(header[:4]) != magic {
		return out, fmt.Errorf("save: bad magic %q", header[:4])
	}
	compressed := header[4] != 0

	var body io.Reader = r
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return out, fmt.Errorf("save: new zstd reader: %w", err)
		}
		defer dec.Close()
		body = dec
	}

	var metaLen uint32
	if err := binary.Read(body, binary.BigEndian, &metaLen); err != nil {
		return out, fmt.Errorf("save: read meta length: %w", err)
	}
	metaBytes := make([]byte, metaLen)
	if _, err := io.ReadFull(body, metaBytes); err != nil {
		return out, fmt.Errorf("save: read meta: %w", err)
	}
	if err := nbt.Unmarshal(metaBytes, &out.Meta); err != nil {
		return out, fmt.Errorf("save: unmarshal meta: %w", err)
	}

	if err := binary.Read(body, binary.BigEndian, &out.Cells); err != nil {
		return out, fmt.Errorf("save: read cells: %w", err)
	}
	return out, nil
}
