// Package client talks to the LAMMS backend over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

// DefaultBaseURL is the backend origin used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

const sectionsPath = "/api/sections"

// Body is a response body, kept as received. It is nil when the response had no content.
type Body []byte

// IsJSON reports whether the body holds a JSON document.
func (b Body) IsJSON() bool {
	return json.Valid(b)
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (b Body) Decode(v interface{}) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "decoding response body")
	}
	return nil
}

func (b Body) String() string {
	return string(b)
}

// MarshalJSON embeds a JSON body as is. Any other body becomes a JSON string.
func (b Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	if b.IsJSON() {
		return b, nil
	}
	return json.Marshal(string(b))
}

// ResponseError is returned for any response outside the 2xx range.
type ResponseError struct {
	Response *rest.Response
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.Response.StatusCode)
}

// SectionService is the remote section resource. No retries, no caching.
type SectionService struct {
	client  *rest.Client
	baseURL string
}

// NewSectionService returns a SectionService for the backend at baseURL (DefaultBaseURL if empty).
// A nil httpClient means http.DefaultClient.
func NewSectionService(baseURL string, httpClient *http.Client) *SectionService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SectionService{
		client:  &rest.Client{HTTPClient: httpClient},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (svc *SectionService) GetSections(ctx context.Context) (Body, error) {
	return svc.send(ctx, rest.Get, sectionsPath, nil)
}

func (svc *SectionService) CreateSection(ctx context.Context, data interface{}) (Body, error) {
	return svc.send(ctx, rest.Post, sectionsPath, data)
}

// UpdateSection replaces section `id`. The id is used as is in the path.
func (svc *SectionService) UpdateSection(ctx context.Context, id interface{}, data interface{}) (Body, error) {
	return svc.send(ctx, rest.Put, sectionsPath+"/"+fmt.Sprint(id), data)
}

func (svc *SectionService) DeleteSection(ctx context.Context, id interface{}) (Body, error) {
	return svc.send(ctx, rest.Delete, sectionsPath+"/"+fmt.Sprint(id), nil)
}

func (svc *SectionService) send(ctx context.Context, method rest.Method, path string, data interface{}) (Body, error) {
	req := rest.Request{
		Method:  method,
		BaseURL: svc.baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
	}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		req.Body = payload
		req.Headers["Content-Type"] = "application/json"
	}

	resp, err := svc.client.SendWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{Response: resp}
	}

	if strings.TrimSpace(resp.Body) == "" {
		return nil, nil
	}
	return Body(resp.Body), nil
}
