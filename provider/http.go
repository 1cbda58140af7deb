package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/log"
)

// maxBody bounds the response size read from municipal endpoints.
const maxBody = 8 << 20

// GetJSON performs a GET request and decodes the JSON response into target.
// Failures are mapped onto ErrNetwork, ErrRateLimited and ErrUpstreamFormat; context errors are returned as is.
func GetJSON(ctx context.Context, client *http.Client, endpoint string, query url.Values, target any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", endpoint)
	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	} else {
		defer resp.Body.Close()
	}

	if err := Classify(resp, err); err != nil {
		log.Errorf("GET %s: %v", endpoint, err)
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	return DecodeJSON(body, target)
}

// Classify maps a transport error or a non-2xx response onto provider errors.
// It returns nil for successful responses.
func Classify(resp *http.Response, err error) error {
	switch {
	case err != nil:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	case resp == nil:
		return fmt.Errorf("%w: empty response", ErrNetwork)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, resp.Status)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s", ErrNetwork, resp.Status)
	default:
		return nil
	}
}

// DecodeJSON decodes data into target, reporting failures as ErrUpstreamFormat.
func DecodeJSON(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamFormat, err)
	}
	return nil
}
