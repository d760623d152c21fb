package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/me/langparse/pkg/model"
)

// Client is an HTTP client for the langparse API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a langparse API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// apiResponse is the parsed envelope.
type apiResponse struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

// send performs an HTTP request and returns the status and raw body.
func (c *Client) send(method, path string, body any) (int, []byte, error) {
	u := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		c.Logger.Debug("HTTP request body", "body", string(data))
	}

	req, err := http.NewRequest(method, u, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("HTTP request", "method", method, "url", u)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))
	return resp.StatusCode, respBody, nil
}

// do performs a request against an enveloped endpoint.
func (c *Client) do(method, path string, body any) (*apiResponse, error) {
	status, respBody, err := c.send(method, path, body)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(status, respBody)
}

func decodeEnvelope(status int, body []byte) (*apiResponse, error) {
	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w\nbody: %s", status, err, string(body))
	}
	if apiResp.Status == "error" && apiResp.Error != nil {
		return &apiResp, apiResp.Error
	}
	return &apiResp, nil
}

// Get performs a GET request.
func (c *Client) Get(path string) (*apiResponse, error) {
	return c.do("GET", path, nil)
}

// Parse submits a parse request for lang. Successful responses are not
// enveloped; errors are.
func (c *Client) Parse(lang model.Language, req *model.LanguageParsingRequest) (*model.LanguageParsingResponse, error) {
	status, body, err := c.send("POST", "/api/v1/languages/"+url.PathEscape(string(lang))+"/parse", req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		if _, err := decodeEnvelope(status, body); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected status %d", status)
	}
	var resp model.LanguageParsingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &resp, nil
}
