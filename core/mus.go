package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the catalog wire format. The Record schema is a
// single small struct, so the serializers are composed by hand from
// mus-go primitives rather than generated.

var (
	contentsMUS = ord.NewSliceSer[byte](varint.Byte)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// IDMUS serializes IDs as varint-encoded uint64 values.
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

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// RecordMUS serializes Records. Timestamps are encoded as Unix
// microseconds, matching the store's resolution.
var RecordMUS = recordMUS{}

type recordMUS struct{}

func (recordMUS) Marshal(r Record, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Title, bs[n:])
	n += ord.String.Marshal(r.Source, bs[n:])
	n += ord.String.Marshal(r.ContentType, bs[n:])
	n += contentsMUS.Marshal(r.Contents, bs[n:])
	n += metadataMUS.Marshal(r.Metadata, bs[n:])
	n += varint.Int64.Marshal(r.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(r.ModifiedAt.UnixMicro(), bs[n:])
	return n
}

func (recordMUS) Unmarshal(bs []byte) (r Record, n int, err error) {
	var n1 int
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.ContentType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Contents, n1, err = contentsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var usec int64
	usec, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.CreatedAt = time.UnixMicro(usec).UTC()
	usec, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.ModifiedAt = time.UnixMicro(usec).UTC()
	return
}

func (recordMUS) Size(r Record) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.Title)
	size += ord.String.Size(r.Source)
	size += ord.String.Size(r.ContentType)
	size += contentsMUS.Size(r.Contents)
	size += metadataMUS.Size(r.Metadata)
	size += varint.Int64.Size(r.CreatedAt.UnixMicro())
	size += varint.Int64.Size(r.ModifiedAt.UnixMicro())
	return size
}

func (recordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = contentsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = metadataMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < 2; i++ {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
