// Package nlu talks to the Rasa NLU server that labels /chat messages.
package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const parsePath = "/model/parse"

// Entity is a slot value extracted by the NLU model.
type Entity struct {
	Entity string      `json:"entity"`
	Value  interface{} `json:"value"`
}

// Result is the subset of the parse response the chat service consumes.
type Result struct {
	Intent     string
	Confidence float64
	Parameters map[string]interface{}
	QueryText  string
}

type parseResponse struct {
	Intent struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"intent"`
	Entities []Entity `json:"entities"`
	Text     string   `json:"text"`
}

// Client calls the Rasa HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client with a fixed request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Parse labels text with an intent, confidence and entity parameters.
func (c *Client) Parse(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encode parse request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+parsePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlu parse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nlu parse error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode parse response: %w", err)
	}

	result := &Result{
		Intent:     parsed.Intent.Name,
		Confidence: parsed.Intent.Confidence,
		Parameters: make(map[string]interface{}, len(parsed.Entities)),
		QueryText:  text,
	}
	for _, ent := range parsed.Entities {
		if ent.Entity != "" {
			result.Parameters[ent.Entity] = ent.Value
		}
	}
	return result, nil
}
