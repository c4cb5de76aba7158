package processor

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	KeyCollection = "collection"
	KeyVectorIDs  = "vector_ids"

	defCollection = "Document"
)

// WriteVector stores `texts` & their `embeddings` in a weaviate collection,
// writing the object ids to `vector_ids`.
//
// Object ids are derived from the task & position, so a repeated delivery
// overwrites rather than duplicates.
type WriteVector struct {
	client *weaviate.Client
}

func NewWriteVector(client *weaviate.Client) *WriteVector {
	return &WriteVector{client: client}
}

func (p *WriteVector) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	t := in.Task

	collection, err := docString(t.Document, KeyCollection, defCollection)
	if err != nil {
		return nil, err
	}
	texts, err := docStrings(t.Document, KeyTexts)
	if err != nil {
		return nil, err
	}
	raw, ok := t.Document.Get(KeyEmbeddings)
	if !ok {
		return nil, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", KeyEmbeddings)
	}
	vecs, err := vectors(KeyEmbeddings, raw)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, pe.NonRetriable("%d %s for %d %s", len(vecs), KeyEmbeddings, len(texts), KeyTexts)
	}

	ids := make([]interface{}, len(texts))
	objects := make([]*models.Object, len(texts))
	for i, text := range texts {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", t.ID, i))).String()
		ids[i] = id
		objects[i] = &models.Object{
			Class:  collection,
			ID:     strfmt.UUID(id),
			Vector: vecs[i],
			Properties: map[string]interface{}{
				"text":    text,
				"task_id": t.ID,
				"pipe_id": t.PipeID,
				"user_id": t.UserID,
			},
		}
	}

	result, err := p.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return nil, pe.RetriableWrap(err, "writing vectors")
	}
	for _, obj := range result {
		if obj.Result == nil || obj.Result.Errors == nil || len(obj.Result.Errors.Error) == 0 {
			continue
		}
		return nil, pe.NonRetriable("writing vector %s: %s", obj.ID, obj.Result.Errors.Error[0].Message)
	}

	t.Document.Set(KeyVectorIDs, ids)
	return t, nil
}
