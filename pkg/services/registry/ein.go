package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultBaseURL points at the ProPublica Nonprofit Explorer public index.
const DefaultBaseURL = "https://projects.propublica.org/nonprofits/api/v2"

const defaultTimeout = 10 * time.Second

// Verifier confirms a tax ID against an external registry. Implementations
// must be safe for concurrent use; callers treat a returned error as a
// degraded (unverified) lookup, never as a fatal condition.
type Verifier interface {
	VerifyEIN(ctx context.Context, ein string) (domain.EINVerification, error)
}

type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

type Options struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

// VerifyEIN looks the tax ID up in the public index. A 200 confirms the EIN,
// a 404 reports it unknown; anything else is a transport-level error the
// caller degrades from.
func (c *Client) VerifyEIN(ctx context.Context, ein string) (domain.EINVerification, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(ein), "-", "")
	if normalized == "" {
		return domain.EINVerification{
			Confirmed:  false,
			Confidence: 0.5,
			Note:       "No EIN was reported on the filing.",
		}, nil
	}

	url := fmt.Sprintf("%s/organizations/%s.json", c.baseURL, normalized)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.EINVerification{}, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.EINVerification{}, fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return domain.EINVerification{
			Confirmed:  true,
			Confidence: 0.9,
			Note:       "EIN found in the public nonprofit index.",
		}, nil
	case http.StatusNotFound:
		return domain.EINVerification{
			Confirmed:  false,
			Confidence: 0.8,
			Note:       "EIN is not present in the public nonprofit index.",
		}, nil
	default:
		return domain.EINVerification{}, fmt.Errorf("unexpected registry response status %d", resp.StatusCode)
	}
}
