package home

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/ads"
)

// homeSectionLimit is the display budget per carousel.
const homeSectionLimit = 18

type Handler struct {
	db      *mongo.Database
	serving *ads.Serving
}

func RegisterHandler(r *gin.Engine, db *mongo.Database, serving *ads.Serving) {
	h := &Handler{
		db:      db,
		serving: serving,
	}
	r.GET("/", h.index)
	r.GET("/movies", h.movies)
	r.GET("/series", h.series)
	r.GET("/trending", h.trending)
	r.GET("/coming-soon", h.comingSoon)
	r.GET("/recent", h.recent)
	r.GET("/genre/:name", h.genre)
	r.GET("/badge/:name", h.badge)
}

type indexData struct {
	Trending     []*models.ContentItem
	LatestMovies []*models.ContentItem
	LatestSeries []*models.ContentItem
	RecentlyAdd  []*models.ContentItem
	ComingSoon   []*models.ContentItem
	Ads          *ads.PageAds
}

type gridData struct {
	Title string
	Items []*models.ContentItem
	Ads   *ads.PageAds
}

func (s *Handler) index(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		s.grid(c, fmt.Sprintf("Results for %q", q), models.SearchFilter(q))
		return
	}
	ctx := c.Request.Context()
	data := &indexData{
		Ads: s.serving.ForPage(ctx),
	}
	var err error
	// Each section is its own independent query; coming-soon items stay
	// out of every section except their own.
	if data.Trending, err = models.ListContent(ctx, s.db, models.TrendingFilter(), homeSectionLimit); err != nil {
		s.renderError(c, err)
		return
	}
	if data.LatestMovies, err = models.ListContent(ctx, s.db, models.LatestFilter(models.ContentTypeMovie), homeSectionLimit); err != nil {
		s.renderError(c, err)
		return
	}
	if data.LatestSeries, err = models.ListContent(ctx, s.db, models.LatestFilter(models.ContentTypeSeries), homeSectionLimit); err != nil {
		s.renderError(c, err)
		return
	}
	if data.RecentlyAdd, err = models.ListContent(ctx, s.db, models.RecentFilter(), homeSectionLimit); err != nil {
		s.renderError(c, err)
		return
	}
	if data.ComingSoon, err = models.ListContent(ctx, s.db, models.ComingSoonFilter(), homeSectionLimit); err != nil {
		s.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index", data)
}

func (s *Handler) movies(c *gin.Context) {
	s.grid(c, "All Movies", models.LatestFilter(models.ContentTypeMovie))
}

func (s *Handler) series(c *gin.Context) {
	s.grid(c, "All Web Series", models.LatestFilter(models.ContentTypeSeries))
}

func (s *Handler) trending(c *gin.Context) {
	s.grid(c, "Trending Now", models.TrendingFilter())
}

func (s *Handler) comingSoon(c *gin.Context) {
	s.grid(c, "Coming Soon", models.ComingSoonFilter())
}

func (s *Handler) recent(c *gin.Context) {
	s.grid(c, "Recently Added", models.RecentFilter())
}

func (s *Handler) genre(c *gin.Context) {
	name := c.Param("name")
	s.grid(c, name, models.GenreFilter(name))
}

func (s *Handler) badge(c *gin.Context) {
	name := c.Param("name")
	s.grid(c, name, models.BadgeFilter(name))
}

// grid renders a full-page list without the carousel limit. An empty
// result set is a valid page, not an error.
func (s *Handler) grid(c *gin.Context, title string, filter bson.M) {
	ctx := c.Request.Context()
	items, err := models.ListContent(ctx, s.db, filter, 0)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "grid", &gridData{
		Title: title,
		Items: items,
		Ads:   s.serving.ForPage(ctx),
	})
}

func (s *Handler) renderError(c *gin.Context, err error) {
	log.WithError(err).Error("failed to query catalog")
	c.HTML(http.StatusInternalServerError, "not_found", gin.H{
		"Message": "Something went wrong.",
	})
}
