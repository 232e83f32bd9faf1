package ads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/moviezone-io/web-ui/models"
)

// Ad networks get a longer leash than the metadata provider but are
// still bounded so a dead network cannot stall a render.
const (
	providerTimeout = 8 * time.Second
	fetchAttempts   = 2
)

type creativesResponse struct {
	Creatives []Creative `json:"creatives"`
}

// Client fetches creatives from remote ad providers, keyed by a
// bearer-style token per provider.
type Client struct {
	cl *http.Client
}

func NewClient(cl *http.Client) *Client {
	return &Client{cl: cl}
}

func (s *Client) Fetch(ctx context.Context, p *models.AdProvider, position models.AdPosition) ([]Creative, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	var creatives []Creative
	err := retry.Do(
		func() error {
			var err error
			creatives, err = s.fetchOnce(ctx, p, position)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return creatives, nil
}

func (s *Client) fetchOnce(ctx context.Context, p *models.AdProvider, position models.AdPosition) ([]Creative, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.ApiURL+"/creatives", nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	q := req.URL.Query()
	q.Set("position", string(position))
	q.Set("format", string(models.AdTypeBanner))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("provider %v returned status %v", p.Name, resp.StatusCode)
	}
	var res creativesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	for i := range res.Creatives {
		res.Creatives[i].Provider = p.Name
	}
	return res.Creatives, nil
}
