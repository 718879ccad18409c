package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	nivesh_errors "nivesh/internal"
)

// GetUpcomingIPOs pulls the IPO calendar feed configured on the client.
// The feed is a plain JSON array of listings; there is no per-symbol
// degradation here since the whole calendar comes in one document.
func (c *YahooClient) GetUpcomingIPOs(ctx context.Context) ([]IPO, error) {
	if c.IPOCalendarURL == "" {
		return nil, nivesh_errors.ErrGatewayUnavailable{
			Cause: fmt.Errorf("no IPO calendar feed configured"),
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.IPOCalendarURL, nil)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, nivesh_errors.ErrGatewayUnavailable{
			Cause: fmt.Errorf("IPO calendar returned status %d", response.StatusCode),
		}
	}

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	var ipos []IPO
	if err := json.Unmarshal(responseBytes, &ipos); err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	return ipos, nil
}
