package processor

import (
	"context"
	"errors"
	"path"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/storage"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	KeyFilename    = "filename"
	KeyFileSize    = "file_size_bytes"
	KeyContentType = "content_type"

	// files users upload live under uploads/{user_id}/
	uploadsPrefix = "uploads"
)

// InfoFile looks up the size & content type of the user's uploaded files
// named by `filename` (a string or a list of them).
type InfoFile struct {
	blobs storage.BlobStore
}

func NewInfoFile(blobs storage.BlobStore) *InfoFile {
	return &InfoFile{blobs: blobs}
}

// UploadKey is the blob key of a file a user has uploaded
func UploadKey(userID, filename string) string {
	return path.Join(uploadsPrefix, userID, path.Clean("/"+filename))
}

func (p *InfoFile) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	doc := in.Task.Document

	names, err := docStrings(doc, KeyFilename)
	if err != nil {
		return nil, err
	}

	sizes := make([]interface{}, len(names))
	types := make([]interface{}, len(names))
	for i, name := range names {
		info, err := p.blobs.Attrs(ctx, UploadKey(in.Task.UserID, name))
		if errors.Is(err, pe.ErrNotFound) {
			return nil, pe.NonRetriable("file %s not found", name)
		} else if err != nil {
			return nil, pe.RetriableWrap(err, "reading file attributes")
		}
		sizes[i] = info.Size
		types[i] = info.ContentType
	}

	doc.Set(KeyFileSize, sizes)
	doc.Set(KeyContentType, types)
	return in.Task, nil
}
