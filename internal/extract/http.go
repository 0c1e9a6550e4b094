package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPExtractor posts the crops to a structured-extraction service as
// base64 PNG payloads and decodes the JSON vessel description it returns.
type HTTPExtractor struct {
	Endpoint string
	Client   *http.Client
	Log      zerolog.Logger
}

// NewHTTPExtractor creates an extractor for the given endpoint.
func NewHTTPExtractor(endpoint string, timeout time.Duration, log zerolog.Logger) *HTTPExtractor {
	return &HTTPExtractor{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
		Log:      log,
	}
}

type extractRequest struct {
	Regions []extractRegion `json:"regions"`
}

type extractRegion struct {
	Kind string `json:"kind"`
	PNG  string `json:"png"`
}

// Extract implements Extractor.
func (e *HTTPExtractor) Extract(ctx context.Context, crops []Crop) (*Result, error) {
	if len(crops) == 0 {
		return nil, fmt.Errorf("no regions to extract")
	}

	req := extractRequest{}
	for _, c := range crops {
		var buf bytes.Buffer
		if err := png.Encode(&buf, c.Image); err != nil {
			return nil, fmt.Errorf("encode %s region: %w", c.Kind, err)
		}
		req.Regions = append(req.Regions, extractRegion{
			Kind: string(c.Kind),
			PNG:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	e.Log.Debug().Str("endpoint", e.Endpoint).Int("regions", len(crops)).Msg("extraction request")

	resp, err := e.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("extraction service returned %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	return &result, nil
}
