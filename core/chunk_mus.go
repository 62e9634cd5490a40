package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted in the chunk store.
// The record shape is small and flat, so the serializers are maintained by
// hand instead of generated.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// ChunkMetaMUS serializes chunk metadata snapshots.
var ChunkMetaMUS = chunkMetaMUS{}

type chunkMetaMUS struct{}

func (chunkMetaMUS) Marshal(m ChunkMeta, bs []byte) (n int) {
	n = ord.String.Marshal(m.ProductName, bs)
	n += ord.String.Marshal(m.Category, bs[n:])
	n += ord.String.Marshal(m.Season, bs[n:])
	n += varint.Int.Marshal(m.Stock, bs[n:])
	return n
}

func (chunkMetaMUS) Unmarshal(bs []byte) (m ChunkMeta, n int, err error) {
	var n1 int
	if m.ProductName, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if m.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.Season, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.Stock, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	return m, n, nil
}

func (chunkMetaMUS) Size(m ChunkMeta) (size int) {
	size = ord.String.Size(m.ProductName)
	size += ord.String.Size(m.Category)
	size += ord.String.Size(m.Season)
	size += varint.Int.Size(m.Stock)
	return size
}

// ChunkRecordMUS serializes chunk records, embedding vector included.
var ChunkRecordMUS = chunkRecordMUS{}

type chunkRecordMUS struct{}

func (chunkRecordMUS) Marshal(c ChunkRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.ProductId, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += ChunkMetaMUS.Marshal(c.Meta, bs[n:])
	n += varint.Int.Marshal(len(c.Vector), bs[n:])
	for _, f := range c.Vector {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (chunkRecordMUS) Unmarshal(bs []byte) (c ChunkRecord, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.ProductId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Index, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Meta, n1, err = ChunkMetaMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	var length int
	if length, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if length > 0 {
		c.Vector = make([]float32, length)
		for i := 0; i < length; i++ {
			if c.Vector[i], n1, err = varint.Float32.Unmarshal(bs[n:]); err != nil {
				return c, n + n1, err
			}
			n += n1
		}
	}
	return c, n, nil
}

func (chunkRecordMUS) Size(c ChunkRecord) (size int) {
	size = IDMUS.Size(c.Id)
	size += ord.String.Size(c.ProductId)
	size += varint.Int.Size(c.Index)
	size += ord.String.Size(c.Text)
	size += ChunkMetaMUS.Size(c.Meta)
	size += varint.Int.Size(len(c.Vector))
	for _, f := range c.Vector {
		size += varint.Float32.Size(f)
	}
	return size
}
