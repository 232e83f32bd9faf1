package watch

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/moviezone-io/web-ui/models"
)

type Handler struct {
	db *mongo.Database
}

func RegisterHandler(r *gin.Engine, db *mongo.Database) {
	h := &Handler{
		db: db,
	}
	r.GET("/watch/:id", h.watch)
}

// watch renders the full-screen embed player. The optional ep query
// selects a series episode's watch link.
func (s *Handler) watch(c *gin.Context) {
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
	watchLink := item.WatchLink
	title := item.Title
	if ep := c.Query("ep"); ep != "" && item.Type == models.ContentTypeSeries {
		if number, err := strconv.Atoi(ep); err == nil {
			if episode := item.FindEpisode(number); episode != nil {
				watchLink = episode.WatchLink
				title = fmt.Sprintf("%v - E%v: %v", item.Title, episode.Number, episode.Title)
			}
		}
	}
	if watchLink == "" {
		c.HTML(http.StatusNotFound, "not_found", gin.H{
			"Message": "Watch link not found for this content.",
		})
		return
	}
	c.HTML(http.StatusOK, "watch", gin.H{
		"Title":     title,
		"WatchLink": watchLink,
	})
}
