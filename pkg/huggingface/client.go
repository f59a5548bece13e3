package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the public Hugging Face hub.
	DefaultEndpoint = "https://huggingface.co"

	// DefaultUserAgent identifies this client to the hub.
	DefaultUserAgent = "modelfit"

	defaultTimeout = 30 * time.Second
)

// File is one entry of a repository tree listing.
type File struct {
	Type string   `json:"type"`
	Oid  string   `json:"oid"`
	Size int64    `json:"size"`
	Path string   `json:"path"`
	LFS  *LFSInfo `json:"lfs,omitempty"`
}

// LFSInfo carries the large-file-storage metadata of a tree entry.
type LFSInfo struct {
	Oid         string `json:"oid"`
	Size        int64  `json:"size"`
	PointerSize int64  `json:"pointerSize"`
}

// Bytes returns the effective size of the file. LFS-backed entries report
// the blob size, which is authoritative when present.
func (f File) Bytes() int64 {
	if f.LFS != nil && f.LFS.Size > f.Size {
		return f.LFS.Size
	}
	return f.Size
}

// IsFile reports whether the entry is a regular file rather than a
// directory.
func (f File) IsFile() bool {
	return f.Type == "file"
}

// Client lists model repositories through the hub HTTP API.
type Client struct {
	endpoint  string
	userAgent string
	token     string
	client    *http.Client
}

type ClientOption func(*Client)

// WithEndpoint points the client at an alternative hub endpoint. Used by
// tests and private mirrors.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithToken attaches a bearer token to every request, allowing gated
// repositories the token can read.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ListFiles returns every file in the repository's main revision, recursing
// into subdirectories. Directory entries are included; callers filter with
// File.IsFile.
func (c *Client) ListFiles(ctx context.Context, repoID string) ([]File, error) {
	url := fmt.Sprintf("%s/api/models/%s/tree/main?recursive=true", c.endpoint, repoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building tree request for %q: %w", repoID, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", repoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewListError(repoID, resp.StatusCode, nil)
	}

	var files []File
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("decoding tree listing for %q: %w", repoID, err)
	}
	return files, nil
}

// ResolveURL returns the direct download URL for a file in the repository's
// main revision.
func (c *Client) ResolveURL(repoID, filePath string) string {
	return fmt.Sprintf("%s/%s/resolve/main/%s", c.endpoint, repoID, filePath)
}
