package detail

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/ads"
	"github.com/moviezone-io/web-ui/services/enrich"
)

type Handler struct {
	db       *mongo.Database
	enricher *enrich.Enricher
	serving  *ads.Serving
}

func RegisterHandler(r *gin.Engine, db *mongo.Database, enricher *enrich.Enricher, serving *ads.Serving) {
	h := &Handler{
		db:       db,
		enricher: enricher,
		serving:  serving,
	}
	r.GET("/movie/:id", h.detail)
}

type detailData struct {
	Item       *models.ContentItem
	TrailerKey string
	Episodes   []models.Episode
	Ads        *ads.PageAds
}

// detail renders one item, lazily enriching it from TMDb. Enrichment and
// trailer lookup are best-effort, the page renders with whatever data
// exists.
func (s *Handler) detail(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := models.GetContentByID(ctx, s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load content")
	}
	if item == nil {
		c.HTML(http.StatusNotFound, "not_found", gin.H{
			"Message": "Content not found.",
		})
		return
	}
	var trailerKey string
	if s.enricher != nil {
		if err := s.enricher.Enrich(ctx, item, false); err != nil {
			log.WithError(err).Warnf("enrichment skipped for %q", item.Title)
		}
		if trailerKey, err = s.enricher.TrailerKey(ctx, item); err != nil {
			log.WithError(err).Warnf("trailer lookup skipped for %q", item.Title)
		}
	}
	c.HTML(http.StatusOK, "detail", &detailData{
		Item:       item,
		TrailerKey: trailerKey,
		Episodes:   item.SortedEpisodes(),
		Ads:        s.serving.ForPage(ctx),
	})
}
