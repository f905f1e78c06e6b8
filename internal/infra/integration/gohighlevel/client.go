package gohighlevel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SubmitForm posts an already mapped record to the CRM form and returns the
// decoded partner response untouched. No retries are attempted.
func (c *Client) SubmitForm(ctx context.Context, formID string, data map[string]interface{}) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/forms/%s/submit", c.baseURL, url.PathEscape(formID))

	payload, err := json.Marshal(submitRequest{Data: data})
	if err != nil {
		return nil, &SubmissionError{FormID: formID, Message: "failed to encode payload: " + err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &SubmissionError{FormID: formID, Message: err.Error(), Err: err}
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmissionError{FormID: formID, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{FormID: formID, StatusCode: resp.StatusCode, Message: "failed to read response: " + err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SubmissionError{
			FormID:     formID,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp.StatusCode, body),
		}
	}

	result := map[string]interface{}{}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &SubmissionError{
			FormID:     formID,
			StatusCode: resp.StatusCode,
			Message:    "malformed partner response",
			Err:        err,
		}
	}

	return result, nil
}

func extractMessage(status int, body []byte) string {
	var pe partnerError
	if err := json.Unmarshal(body, &pe); err == nil {
		if text := pe.text(); text != "" {
			return text
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(status)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
