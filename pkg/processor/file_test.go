package processor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/storage"
)

func TestUploadKey(t *testing.T) {
	assert.Equal(t, "uploads/u1/a.pdf", processor.UploadKey("u1", "a.pdf"))
	assert.Equal(t, "uploads/u1/dir/a.pdf", processor.UploadKey("u1", "dir/a.pdf"))
	assert.Equal(t, "uploads/u1/etc/passwd", processor.UploadKey("u1", "../../etc/passwd"))
}

func TestInfoFile(t *testing.T) {
	blobs := storage.NewMemory()
	ctx := context.Background()
	require.Nil(t, blobs.Put(ctx, processor.UploadKey("u", "a.pdf"), []byte("12345"), "application/pdf"))
	require.Nil(t, blobs.Put(ctx, processor.UploadKey("u", "b.txt"), []byte("12"), "text/plain"))

	in := openaiInvocation(map[string]interface{}{"filename": []interface{}{"a.pdf", "b.txt"}})

	result, err := processor.NewInfoFile(blobs).Process(ctx, in)

	require.Nil(t, err)
	sizes, _ := result.Document.Get("file_size_bytes")
	types, _ := result.Document.Get("content_type")
	assert.Equal(t, []interface{}{int64(5), int64(2)}, sizes)
	assert.Equal(t, []interface{}{"application/pdf", "text/plain"}, types)
}

func TestInfoFileMissing(t *testing.T) {
	in := openaiInvocation(map[string]interface{}{"filename": "nope.pdf"})

	_, err := processor.NewInfoFile(storage.NewMemory()).Process(context.Background(), in)

	assert.ErrorIs(t, err, pe.ErrNonRetriable)
}
