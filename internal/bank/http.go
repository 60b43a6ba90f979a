package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/abhisek/sbfquiz/internal/question"
)

// HTTPConfig configures an HTTPRepository.
type HTTPConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8000".
	BaseURL string

	// Timeout bounds a request when the context has no deadline. Default: 10s.
	Timeout time.Duration

	// Client overrides the fasthttp client (tests dial in-memory listeners).
	Client *fasthttp.Client
}

// DefaultHTTPConfig returns an HTTPConfig pointing at a local server.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		BaseURL: "http://localhost:8000",
		Timeout: 10 * time.Second,
	}
}

// HTTPRepository fetches questions from the question bank API. Failures
// are reported as *LoadError and never retried.
type HTTPRepository struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewHTTPRepository creates a repository for the API at cfg.BaseURL.
func NewHTTPRepository(cfg HTTPConfig) *HTTPRepository {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultHTTPConfig().Timeout
	}
	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{Name: "sbfquiz"}
	}
	return &HTTPRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		client:  client,
	}
}

// Questions requests GET /api/questions/?license=..&category=..
func (r *HTTPRepository) Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error) {
	loadErr := func(status int, err error) error {
		return &LoadError{LicenseID: licenseID, CategoryID: categoryID, Status: status, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, loadErr(0, err)
	}

	params := url.Values{}
	params.Set("license", licenseID)
	params.Set("category", categoryID)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.baseURL + "/api/questions/?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = r.client.DoDeadline(req, resp, deadline)
	} else {
		err = r.client.DoTimeout(req, resp, r.timeout)
	}
	if err != nil {
		return nil, loadErr(0, err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, loadErr(status, errors.New(strings.TrimSpace(fasthttp.StatusMessage(status))))
	}

	var qs []question.Question
	if err := json.Unmarshal(resp.Body(), &qs); err != nil {
		return nil, loadErr(status, fmt.Errorf("decode response: %w", err))
	}
	if err := question.ValidateAll(qs); err != nil {
		return nil, loadErr(status, err)
	}
	return qs, nil
}
