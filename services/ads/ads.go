package ads

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/moviezone-io/web-ui/models"
)

// fallbackLimit caps how many local placements one slot renders.
const fallbackLimit = 3

// Creative is one renderable ad, regardless of where it came from.
type Creative struct {
	Title     string `json:"title"`
	Format    string `json:"format"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Provider  string `json:"provider,omitempty"`
}

// Store backs the serving chain with provider and placement lookups.
type Store interface {
	ActiveProviders(ctx context.Context) ([]*models.AdProvider, error)
	ActivePlacements(ctx context.Context, position models.AdPosition, limit int64) ([]*models.AdPlacement, error)
}

// Serving resolves ads for a position: automated providers first, by
// ascending priority, then the local placement fallback. Provider
// failures never propagate, they just move the scan along.
type Serving struct {
	cl    *Client
	store Store
}

func New(cl *Client, store Store) *Serving {
	return &Serving{
		cl:    cl,
		store: store,
	}
}

func (s *Serving) Serve(ctx context.Context, position models.AdPosition) ([]Creative, error) {
	providers, err := s.store.ActiveProviders(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		creatives, err := s.cl.Fetch(ctx, p, position)
		if err != nil {
			log.WithError(err).Warnf("ad provider %v yielded nothing", p.Name)
			continue
		}
		if len(creatives) > 0 {
			return creatives, nil
		}
	}
	placements, err := s.store.ActivePlacements(ctx, position, fallbackLimit)
	if err != nil {
		return nil, err
	}
	var creatives []Creative
	for _, p := range placements {
		creatives = append(creatives, Creative{
			Title:     p.Title,
			Format:    string(p.Type),
			ImageURL:  p.ImageURL,
			TargetURL: p.TargetURL,
		})
	}
	return creatives, nil
}

// PageAds holds every slot a public page renders.
type PageAds struct {
	Header []Creative
	Middle []Creative
	Footer []Creative
}

// ForPage resolves all page slots best-effort; a failing slot renders
// empty instead of failing the page.
func (s *Serving) ForPage(ctx context.Context) *PageAds {
	p := &PageAds{}
	if s == nil {
		return p
	}
	var err error
	if p.Header, err = s.Serve(ctx, models.AdPositionHeader); err != nil {
		log.WithError(err).Warn("failed to serve header ads")
	}
	if p.Middle, err = s.Serve(ctx, models.AdPositionMiddle); err != nil {
		log.WithError(err).Warn("failed to serve middle ads")
	}
	if p.Footer, err = s.Serve(ctx, models.AdPositionFooter); err != nil {
		log.WithError(err).Warn("failed to serve footer ads")
	}
	return p
}
