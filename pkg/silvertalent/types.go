package silvertalent

import (
	"io"
	"net/http"
	"time"
)

// Config defines Silver Talent API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration // applied when HTTPClient is nil
	UserAgent  string
}

// Client talks to the Silver Talent REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// JobParams filter GET /jobs. Empty fields are not sent.
type JobParams struct {
	Query    string
	Category string
	Location string
	Type     string
}

// PostParams filter GET /blog/posts. Empty fields are not sent.
type PostParams struct {
	Search   string
	Category string // category slug
	Tag      string
}

// Upload is an optional file attached to a multipart create request
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// MutationResult is the envelope returned by write endpoints
type MutationResult[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}
