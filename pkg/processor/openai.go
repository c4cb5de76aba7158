package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	// Document keys
	KeyOpenAIToken  = "openai_token"
	KeyModel        = "model"
	KeyPrompt       = "prompt"
	KeySystemPrompt = "system_prompt"
	KeyCompletion   = "completion"
	KeyTexts        = "texts"
	KeyEmbeddings   = "embeddings"
	KeyBoxKind      = "box_kind"

	defChatModel      = openai.GPT4oMini
	defEmbeddingModel = openai.SmallEmbedding3
	defBoxTimeout     = 60 * time.Second
)

type OpenAIOptions struct {
	// Token is used when the document carries no openai_token of its own
	Token string

	// BaseURL overrides the API endpoint (ie. for a compatible proxy)
	BaseURL string
}

func (o *OpenAIOptions) client(doc *structs.Document) (*openai.Client, error) {
	token, err := docString(doc, KeyOpenAIToken, "")
	if err != nil {
		return nil, err
	}
	if token == "" && o != nil {
		token = o.Token
	}
	if token == "" {
		return nil, pe.NonRetriable("no %s set", KeyOpenAIToken)
	}
	cfg := openai.DefaultConfig(token)
	if o != nil && o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// openaiError classifies an error from the openai client
func openaiError(err error, what string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classified(apiErr.HTTPStatusCode, err, what)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classified(reqErr.HTTPStatusCode, err, what)
	}
	return pe.RetriableWrap(err, what)
}

func classified(code int, err error, what string) error {
	msg := fmt.Sprintf("%s (status %d)", what, code)
	if IsRetriableStatus(code) {
		return pe.RetriableWrap(err, msg)
	}
	return pe.NonRetriableWrap(err, msg)
}

// Chat sends `prompt` (a string or a list of them) to a chat model, writing
// the reply (or replies) to `completion`.
type Chat struct {
	opts *OpenAIOptions
}

func NewChat(opts *OpenAIOptions) *Chat {
	return &Chat{opts: opts}
}

func (p *Chat) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	doc := in.Task.Document

	client, err := p.opts.client(doc)
	if err != nil {
		return nil, err
	}
	model, err := docString(doc, KeyModel, defChatModel)
	if err != nil {
		return nil, err
	}
	system, err := docString(doc, KeySystemPrompt, "")
	if err != nil {
		return nil, err
	}
	prompts, err := docStrings(doc, KeyPrompt)
	if err != nil {
		return nil, err
	}

	completions := make([]interface{}, len(prompts))
	for i, prompt := range prompts {
		msgs := []openai.ChatCompletionMessage{}
		if system != "" {
			msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

		resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{Model: model, Messages: msgs})
		if err != nil {
			return nil, openaiError(err, "chat completion")
		}
		if len(resp.Choices) == 0 {
			return nil, pe.Retriable("chat completion returned no choices")
		}
		completions[i] = resp.Choices[0].Message.Content
	}

	if _, isString := mustGet(doc, KeyPrompt).(string); isString {
		doc.Set(KeyCompletion, completions[0])
	} else {
		doc.Set(KeyCompletion, completions)
	}
	return in.Task, nil
}

// Embedding turns `texts` into `embeddings`, either via the openai API or, if
// `box_kind` is set, on one of our own worker boxes.
type Embedding struct {
	opts  *OpenAIOptions
	boxes Allocator
	http  *http.Client
}

// boxEmbedRequest & boxEmbedReply are the payloads of a box's /embed endpoint
type boxEmbedRequest struct {
	Model string   `json:"model,omitempty"`
	Texts []string `json:"texts"`
}

type boxEmbedReply struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func NewEmbedding(opts *OpenAIOptions, boxes Allocator) *Embedding {
	return &Embedding{opts: opts, boxes: boxes, http: &http.Client{Timeout: defBoxTimeout}}
}

func (p *Embedding) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	doc := in.Task.Document

	texts, err := docStrings(doc, KeyTexts)
	if err != nil {
		return nil, err
	}
	kind, err := docString(doc, KeyBoxKind, "")
	if err != nil {
		return nil, err
	}

	var vecs [][]float32
	if kind != "" {
		vecs, err = p.onBox(ctx, kind, doc, texts)
	} else {
		vecs, err = p.onOpenAI(ctx, doc, texts)
	}
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, pe.NonRetriable("got %d embeddings for %d texts", len(vecs), len(texts))
	}

	doc.Set(KeyEmbeddings, listOf(vecs))
	return in.Task, nil
}

func (p *Embedding) onOpenAI(ctx context.Context, doc *structs.Document, texts []string) ([][]float32, error) {
	client, err := p.opts.client(doc)
	if err != nil {
		return nil, err
	}
	model, err := docString(doc, KeyModel, string(defEmbeddingModel))
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, openaiError(err, "creating embeddings")
	}

	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })
	vecs := make([][]float32, len(resp.Data))
	for i, e := range resp.Data {
		vecs[i] = e.Embedding
	}
	return vecs, nil
}

func (p *Embedding) onBox(ctx context.Context, kind string, doc *structs.Document, texts []string) ([][]float32, error) {
	if p.boxes == nil {
		return nil, pe.NonRetriable("%s given but no boxes are configured", KeyBoxKind)
	}
	base, err := boxURL(ctx, p.boxes, kind)
	if err != nil {
		return nil, err
	}
	model, err := docString(doc, KeyModel, "")
	if err != nil {
		return nil, err
	}

	reply := &boxEmbedReply{}
	err = postJSON(ctx, p.http, base+"/embed", &boxEmbedRequest{Model: model, Texts: texts}, reply)
	return reply.Embeddings, err
}
