package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const treeListing = `[
	{
		"type": "file",
		"oid": "0e9e39f249a16976918f6564b8830bc894c89659",
		"size": 134,
		"path": "model-00001-of-00002.safetensors",
		"lfs": {
			"oid": "sha256:3f06b16d6b0c9d3b2e2b3c3f9a9e1f1d0c1b2a39",
			"size": 4913623248,
			"pointerSize": 134
		}
	},
	{
		"type": "file",
		"oid": "52b7bf1a0372e6b97bb5b60d23154e7f971fd94b",
		"size": 613,
		"path": "config.json"
	},
	{
		"type": "directory",
		"oid": "6cb18d44cb07a5578776c27327390882a5b28f82",
		"size": 0,
		"path": "original"
	}
]`

func TestListFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/models/meta-llama/Llama-3.3-70B-Instruct/tree/main", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("recursive"))
		require.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(treeListing))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	files, err := client.ListFiles(context.Background(), "meta-llama/Llama-3.3-70B-Instruct")
	require.NoError(t, err)
	require.Len(t, files, 3)

	require.True(t, files[0].IsFile())
	require.Equal(t, "model-00001-of-00002.safetensors", files[0].Path)
	require.Equal(t, int64(4913623248), files[0].Bytes(), "LFS blob size wins over pointer size")

	require.True(t, files[1].IsFile())
	require.Equal(t, int64(613), files[1].Bytes())

	require.False(t, files[2].IsFile())
}

func TestListFilesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL), WithToken("hf_test"))
	_, err := client.ListFiles(context.Background(), "org/gated-model")
	require.NoError(t, err)
}

func TestListFilesNotFound(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(WithEndpoint(server.URL))
		_, err := client.ListFiles(context.Background(), "org/missing")
		require.ErrorIs(t, err, ErrRepositoryNotFound, "status %d", status)

		var hubErr *Error
		require.ErrorAs(t, err, &hubErr)
		require.Equal(t, status, hubErr.StatusCode)
		require.Equal(t, "org/missing", hubErr.RepoID)

		server.Close()
	}
}

func TestListFilesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	_, err := client.ListFiles(context.Background(), "org/model")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRepositoryNotFound)
}

func TestListFilesBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a listing"`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	_, err := client.ListFiles(context.Background(), "org/model")
	require.Error(t, err)
}

func TestResolveURL(t *testing.T) {
	client := NewClient()
	require.Equal(t,
		"https://huggingface.co/TheBloke/Llama-2-7B-GGUF/resolve/main/llama-2-7b.Q4_K_M.gguf",
		client.ResolveURL("TheBloke/Llama-2-7B-GGUF", "llama-2-7b.Q4_K_M.gguf"))
}
