package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

const (
	defaultBaseURL = "https://services.leadconnectorhq.com"
	apiVersion     = "2021-07-28"
)

var (
	// ErrNotConfigured: no API key in the environment. Checked before any
	// request leaves the process.
	ErrNotConfigured = errors.New("GHL API key is not configured")
	// ErrInvalidCredentials: the API rejected the bearer token (401).
	ErrInvalidCredentials = errors.New("invalid or expired GHL API key")
	// ErrUnreachable: the request never got an HTTP answer.
	ErrUnreachable = errors.New("unable to connect to the GHL API")

	// 422 means "nothing matches", not "something broke".
	errEmptyResult = errors.New("ghl: empty result")
)

type Client struct {
	baseURL    string
	apiKey     string
	locationID string
	http       *http.Client
}

func NewClient(apiKey, locationID string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		locationID: locationID,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL exists for tests pointing at a local server.
func NewClientWithBaseURL(apiKey, locationID, baseURL string) *Client {
	c := NewClient(apiKey, locationID)
	c.baseURL = baseURL
	return c
}

// OpportunityPage is one page of the opportunity search, plus the
// conditional-fetch bookkeeping.
type OpportunityPage struct {
	Opportunities []entity.Opportunity
	Meta          entity.PageMeta
	NotModified   bool
	LastModified  string
}

type ContactPage struct {
	Contacts []entity.Contact
	Meta     entity.PageMeta
}

func (c *Client) ListPipelines(ctx context.Context) ([]entity.Pipeline, error) {
	query := url.Values{"locationId": {c.locationID}}

	resp, err := c.do(ctx, http.MethodGet, "/opportunities/pipelines", query, nil, "")
	if err != nil {
		return nil, err
	}

	var data pipelinesResponse
	if err := c.decode(resp, &data); err != nil {
		if errors.Is(err, errEmptyResult) {
			return []entity.Pipeline{}, nil
		}
		return nil, err
	}

	pipelines := make([]entity.Pipeline, 0, len(data.Pipelines))
	for _, raw := range data.Pipelines {
		pipelines = append(pipelines, mapPipeline(raw))
	}
	return pipelines, nil
}

// SearchOpportunities lists one page of a pipeline's opportunities. When
// ifModifiedSince carries the token from a previous page, an unchanged
// result comes back as NotModified with no payload.
func (c *Client) SearchOpportunities(ctx context.Context, pipelineID string, page, limit int, ifModifiedSince string) (*OpportunityPage, error) {
	query := url.Values{
		"locationId": {c.locationID},
		"pipelineId": {pipelineID},
		"page":       {strconv.Itoa(page)},
		"limit":      {strconv.Itoa(limit)},
	}

	resp, err := c.do(ctx, http.MethodGet, "/opportunities/search", query, nil, ifModifiedSince)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotModified {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return &OpportunityPage{NotModified: true, LastModified: ifModifiedSince}, nil
	}

	lastModified := resp.Header.Get("Last-Modified")

	var data opportunitiesResponse
	if err := c.decode(resp, &data); err != nil {
		if errors.Is(err, errEmptyResult) {
			return &OpportunityPage{
				Opportunities: []entity.Opportunity{},
				Meta:          entity.PageMeta{CurrentPage: page, TotalPages: 1},
			}, nil
		}
		return nil, err
	}

	return &OpportunityPage{
		Opportunities: mapOpportunities(data.Opportunities),
		Meta:          mapMeta(data.Meta, page),
		LastModified:  lastModified,
	}, nil
}

func (c *Client) CreateOpportunity(ctx context.Context, input CreateOpportunityInput) (*entity.Opportunity, error) {
	query := url.Values{"locationId": {c.locationID}}

	resp, err := c.do(ctx, http.MethodPost, "/opportunities/", query, input, "")
	if err != nil {
		return nil, err
	}

	return c.decodeOpportunity(resp)
}

func (c *Client) UpdateOpportunity(ctx context.Context, id string, input UpdateOpportunityInput) (*entity.Opportunity, error) {
	query := url.Values{"locationId": {c.locationID}}

	resp, err := c.do(ctx, http.MethodPut, "/opportunities/"+id, query, input, "")
	if err != nil {
		return nil, err
	}

	return c.decodeOpportunity(resp)
}

func (c *Client) ListContacts(ctx context.Context, page, limit int) (*ContactPage, error) {
	query := url.Values{
		"locationId": {c.locationID},
		"page":       {strconv.Itoa(page)},
		"limit":      {strconv.Itoa(limit)},
	}

	resp, err := c.do(ctx, http.MethodGet, "/contacts/", query, nil, "")
	if err != nil {
		return nil, err
	}

	var data contactsResponse
	if err := c.decode(resp, &data); err != nil {
		if errors.Is(err, errEmptyResult) {
			return &ContactPage{
				Contacts: []entity.Contact{},
				Meta:     entity.PageMeta{CurrentPage: page, TotalPages: 1},
			}, nil
		}
		return nil, err
	}

	return &ContactPage{
		Contacts: mapContacts(data.Contacts),
		Meta:     mapMeta(data.Meta, page),
	}, nil
}

func (c *Client) SearchContacts(ctx context.Context, searchQuery string, pageLimit int) ([]entity.Contact, error) {
	body := searchContactsRequest{
		LocationID: c.locationID,
		PageLimit:  pageLimit,
		Query:      searchQuery,
	}

	resp, err := c.do(ctx, http.MethodPost, "/contacts/search", nil, body, "")
	if err != nil {
		return nil, err
	}

	var data contactsResponse
	if err := c.decode(resp, &data); err != nil {
		if errors.Is(err, errEmptyResult) {
			return []entity.Contact{}, nil
		}
		return nil, err
	}

	return mapContacts(data.Contacts), nil
}

func (c *Client) CreateContact(ctx context.Context, input CreateContactInput) (*entity.Contact, error) {
	query := url.Values{"locationId": {c.locationID}}

	resp, err := c.do(ctx, http.MethodPost, "/contacts/", query, input, "")
	if err != nil {
		return nil, err
	}

	return c.decodeContact(resp)
}

func (c *Client) UpdateContact(ctx context.Context, id string, input CreateContactInput) (*entity.Contact, error) {
	query := url.Values{"locationId": {c.locationID}}

	resp, err := c.do(ctx, http.MethodPut, "/contacts/"+id, query, input, "")
	if err != nil {
		return nil, err
	}

	return c.decodeContact(resp)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, ifModifiedSince string) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Version", apiVersion)
	if ifModifiedSince != "" {
		req.Header.Set("If-Modified-Since", ifModifiedSince)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return resp, nil
}

func (c *Client) decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return ErrInvalidCredentials
	case resp.StatusCode == http.StatusUnprocessableEntity:
		io.Copy(io.Discard, resp.Body)
		return errEmptyResult
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ghl: unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) decodeOpportunity(resp *http.Response) (*entity.Opportunity, error) {
	var env opportunityEnvelope
	if err := c.decode(resp, &env); err != nil {
		if errors.Is(err, errEmptyResult) {
			return &entity.Opportunity{}, nil
		}
		return nil, err
	}

	raw := env.rawOpportunity
	if env.Opportunity != nil {
		raw = *env.Opportunity
	}
	opp := mapOpportunity(raw)
	return &opp, nil
}

func (c *Client) decodeContact(resp *http.Response) (*entity.Contact, error) {
	var env contactEnvelope
	if err := c.decode(resp, &env); err != nil {
		if errors.Is(err, errEmptyResult) {
			return &entity.Contact{}, nil
		}
		return nil, err
	}

	raw := env.rawContact
	if env.Contact != nil {
		raw = *env.Contact
	}
	contact := mapContact(raw)
	return &contact, nil
}
