package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMUSRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	record := Record{
		Id:          IDFromContent([]byte("hello")),
		Title:       "hello.txt",
		Source:      "/data/inbox/hello.txt",
		ContentType: "text/plain",
		Contents:    []byte("hello world"),
		Metadata:    map[string]string{"transformer": "text"},
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	bs := make([]byte, RecordMUS.Size(record))
	n := RecordMUS.Marshal(record, bs)
	require.Equal(t, len(bs), n, "marshal should fill the sized buffer exactly")

	decoded, n, err := RecordMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)

	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.Title, decoded.Title)
	assert.Equal(t, record.Source, decoded.Source)
	assert.Equal(t, record.ContentType, decoded.ContentType)
	assert.Equal(t, record.Contents, decoded.Contents)
	assert.Equal(t, record.Metadata, decoded.Metadata)
	assert.True(t, record.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, record.ModifiedAt.Equal(decoded.ModifiedAt))
}

func TestRecordMUSZeroValue(t *testing.T) {
	var record Record

	bs := make([]byte, RecordMUS.Size(record))
	RecordMUS.Marshal(record, bs)

	decoded, _, err := RecordMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, ID(0), decoded.Id)
	assert.Empty(t, decoded.Title)
	assert.Empty(t, decoded.Contents)
}

func TestRecordMUSUnmarshalTruncated(t *testing.T) {
	record := Record{Title: "doc", Contents: []byte("0123456789")}
	bs := make([]byte, RecordMUS.Size(record))
	RecordMUS.Marshal(record, bs)

	_, _, err := RecordMUS.Unmarshal(bs[:3])
	require.Error(t, err)
}

func TestRecordMUSSkip(t *testing.T) {
	record := Record{Id: 42, Title: "doc", Contents: []byte("payload")}
	bs := make([]byte, RecordMUS.Size(record))
	n := RecordMUS.Marshal(record, bs)

	skipped, err := RecordMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)
}
