package contact

import (
	"net/http"
	"strings"
	"time"

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
	r.GET("/contact", h.form)
	r.POST("/contact", h.submit)
}

func (s *Handler) form(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", gin.H{
		"Sent":      c.Query("sent") == "1",
		"ContentID": c.Query("content_id"),
	})
}

func (s *Handler) submit(c *gin.Context) {
	message := strings.TrimSpace(c.PostForm("message"))
	if message == "" {
		c.HTML(http.StatusBadRequest, "contact", gin.H{
			"Error": "Message is required.",
		})
		return
	}
	f := &models.Feedback{
		Message:   message,
		Email:     strings.TrimSpace(c.PostForm("email")),
		ContentID: strings.TrimSpace(c.PostForm("content_id")),
		CreatedAt: time.Now(),
	}
	if err := models.InsertFeedback(c.Request.Context(), s.db, f); err != nil {
		log.WithError(err).Error("failed to save feedback")
		c.HTML(http.StatusInternalServerError, "contact", gin.H{
			"Error": "Could not save your report, please try again.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/contact?sent=1")
}
