package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/moviezone-io/web-ui/models"
)

func (s *Handler) dashboard(c *gin.Context) {
	s.renderDashboard(c, "")
}

func (s *Handler) renderDashboard(c *gin.Context, formError string) {
	items, err := models.ListContent(c.Request.Context(), s.db, bson.M{}, 0)
	if err != nil {
		log.WithError(err).Error("failed to list content")
	}
	status := http.StatusOK
	if formError != "" {
		status = http.StatusBadRequest
	}
	c.HTML(status, "admin", gin.H{
		"Items": items,
		"Error": formError,
	})
}

func (s *Handler) create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		s.renderDashboard(c, "malformed form submission")
		return
	}
	item, err := parseContentForm(c.Request.PostForm)
	if err != nil {
		s.renderDashboard(c, err.Error())
		return
	}
	item.CreatedAt = time.Now()
	if _, err := models.InsertContent(c.Request.Context(), s.db, item); err != nil {
		log.WithError(err).Error("failed to insert content")
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (s *Handler) editForm(c *gin.Context) {
	item, err := models.GetContentByID(c.Request.Context(), s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load content")
	}
	if item == nil {
		c.String(http.StatusNotFound, "Content not found")
		return
	}
	c.HTML(http.StatusOK, "admin_edit", gin.H{
		"Item": item,
	})
}

// edit applies the submitted field set and retracts the payload family
// not matching the (possibly switched) content type, so no stale
// cross-type fields survive.
func (s *Handler) edit(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := models.GetContentByID(ctx, s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load content")
	}
	if item == nil {
		c.String(http.StatusNotFound, "Content not found")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "admin_edit", gin.H{
			"Item":  item,
			"Error": "malformed form submission",
		})
		return
	}
	parsed, err := parseContentForm(c.Request.PostForm)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_edit", gin.H{
			"Item":  item,
			"Error": err.Error(),
		})
		return
	}
	set, unset := contentUpdate(parsed)
	if err := models.UpdateContent(ctx, s.db, item.ID, set, unset); err != nil {
		log.WithError(err).Error("failed to update content")
	}
	c.Redirect(http.StatusFound, "/admin")
}

// contentUpdate maps a parsed item to the $set/$unset pair of an edit.
// The update replaces the submitted field set wholesale, last write wins.
func contentUpdate(item *models.ContentItem) (set bson.M, unset bson.M) {
	set = bson.M{
		"title":          item.Title,
		"type":           item.Type,
		"overview":       item.Overview,
		"poster":         item.Poster,
		"release_date":   item.ReleaseDate,
		"genres":         item.Genres,
		"poster_badge":   item.PosterBadge,
		"is_trending":    item.IsTrending,
		"is_coming_soon": item.IsComingSoon,
	}
	if item.Type == models.ContentTypeMovie {
		set["watch_link"] = item.WatchLink
		set["links"] = item.Links
		unset = bson.M{"episodes": ""}
		return
	}
	set["episodes"] = item.Episodes
	unset = bson.M{"watch_link": "", "links": ""}
	return
}

func (s *Handler) delete(c *gin.Context) {
	if err := models.DeleteContent(c.Request.Context(), s.db, c.Param("id")); err != nil {
		log.WithError(err).Error("failed to delete content")
	}
	c.Redirect(http.StatusFound, "/admin")
}
