package processor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

// fakeOpenAI answers chat & embedding requests the way the openai API does
func fakeOpenAI(t *testing.T, status int) (*httptest.Server, *[]map[string]interface{}) {
	seen := []map[string]interface{}{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		req := map[string]interface{}{}
		json.NewDecoder(r.Body).Decode(&req)
		seen = append(seen, req)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": {"message": "nope", "type": "error", "code": "nope"}}`))
			return
		}

		switch r.URL.Path {
		case "/v1/chat/completions":
			msgs := req["messages"].([]interface{})
			last := msgs[len(msgs)-1].(map[string]interface{})
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "chatcmpl-1",
				"object": "chat.completion",
				"model":  req["model"],
				"choices": []interface{}{
					map[string]interface{}{
						"index":         0,
						"finish_reason": "stop",
						"message":       map[string]interface{}{"role": "assistant", "content": "re: " + last["content"].(string)},
					},
				},
			})
		case "/v1/embeddings":
			texts := req["input"].([]interface{})
			data := []interface{}{}
			for i := len(texts) - 1; i >= 0; i-- { // out of order on purpose
				data = append(data, map[string]interface{}{"object": "embedding", "index": i, "embedding": []float64{float64(i), 0.5}})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"object": "list", "model": req["model"], "data": data})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return srv, &seen
}

func openaiInvocation(doc map[string]interface{}) *processor.Invocation {
	return &processor.Invocation{
		Node: &structs.Node{ID: "n"},
		Task: structs.NewTask("u", "p", []string{"n"}, structs.DocumentFromMap(doc)),
	}
}

func TestChat(t *testing.T) {
	srv, seen := fakeOpenAI(t, http.StatusOK)
	defer srv.Close()

	chat := processor.NewChat(&processor.OpenAIOptions{Token: "sk-test", BaseURL: srv.URL + "/v1"})
	in := openaiInvocation(map[string]interface{}{"prompt": "hello", "system_prompt": "be brief"})

	result, err := chat.Process(context.Background(), in)

	require.Nil(t, err)
	got, _ := result.Document.Get("completion")
	assert.Equal(t, "re: hello", got)
	require.Len(t, *seen, 1)
	assert.Equal(t, "gpt-4o-mini", (*seen)[0]["model"])
	assert.Len(t, (*seen)[0]["messages"], 2)
}

func TestChatPromptList(t *testing.T) {
	srv, _ := fakeOpenAI(t, http.StatusOK)
	defer srv.Close()

	chat := processor.NewChat(&processor.OpenAIOptions{BaseURL: srv.URL + "/v1"})
	in := openaiInvocation(map[string]interface{}{
		"prompt":       []interface{}{"a", "b"},
		"model":        "gpt-4o",
		"openai_token": "sk-test",
	})

	result, err := chat.Process(context.Background(), in)

	require.Nil(t, err)
	got, _ := result.Document.Get("completion")
	assert.Equal(t, []interface{}{"re: a", "re: b"}, got)
}

func TestChatErrors(t *testing.T) {
	cases := []struct {
		Name      string
		Status    int
		Retriable bool
	}{
		{"RateLimited", http.StatusTooManyRequests, true},
		{"ServerError", http.StatusInternalServerError, true},
		{"BadRequest", http.StatusBadRequest, false},
		{"Unauthorized", http.StatusUnauthorized, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			srv, _ := fakeOpenAI(t, c.Status)
			defer srv.Close()

			chat := processor.NewChat(&processor.OpenAIOptions{Token: "sk-test", BaseURL: srv.URL + "/v1"})

			_, err := chat.Process(context.Background(), openaiInvocation(map[string]interface{}{"prompt": "hi"}))

			assert.NotNil(t, err)
			assert.Equal(t, c.Retriable, pe.IsRetriable(err))
		})
	}
}

func TestChatMissingInputs(t *testing.T) {
	chat := processor.NewChat(&processor.OpenAIOptions{})

	_, errNoToken := chat.Process(context.Background(), openaiInvocation(map[string]interface{}{"prompt": "hi"}))
	_, errNoPrompt := chat.Process(context.Background(), openaiInvocation(map[string]interface{}{"openai_token": "sk"}))

	assert.ErrorIs(t, errNoToken, pe.ErrNonRetriable)
	assert.ErrorIs(t, errNoPrompt, pe.ErrMissingInputField)
}

func TestEmbeddingOpenAI(t *testing.T) {
	srv, seen := fakeOpenAI(t, http.StatusOK)
	defer srv.Close()

	embed := processor.NewEmbedding(&processor.OpenAIOptions{Token: "sk-test", BaseURL: srv.URL + "/v1"}, nil)
	in := openaiInvocation(map[string]interface{}{"texts": []interface{}{"x", "y"}})

	result, err := embed.Process(context.Background(), in)

	require.Nil(t, err)
	got, _ := result.Document.Get("embeddings")
	assert.Equal(t, []interface{}{
		[]interface{}{float64(0), float64(0.5)},
		[]interface{}{float64(1), float64(0.5)},
	}, got)
	assert.Equal(t, "text-embedding-3-small", (*seen)[0]["model"])
}
