package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/moviezone-io/web-ui/models"
)

func (s *Handler) feedback(c *gin.Context) {
	list, err := models.ListFeedback(c.Request.Context(), s.db)
	if err != nil {
		log.WithError(err).Error("failed to list feedback")
	}
	c.HTML(http.StatusOK, "admin_feedback", gin.H{
		"Feedback": list,
	})
}

func (s *Handler) deleteFeedback(c *gin.Context) {
	if err := models.DeleteFeedback(c.Request.Context(), s.db, c.Param("id")); err != nil {
		log.WithError(err).Error("failed to delete feedback")
	}
	c.Redirect(http.StatusFound, "/admin/feedback")
}
