package admin

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	db *mongo.Database
}

func RegisterHandler(r *gin.Engine, guard gin.HandlerFunc, db *mongo.Database) {
	h := &Handler{
		db: db,
	}
	g := r.Group("/admin", guard)

	g.GET("", h.dashboard)
	g.POST("", h.create)
	g.GET("/edit/:id", h.editForm)
	g.POST("/edit/:id", h.edit)
	g.GET("/delete/:id", h.delete)

	g.GET("/ads", h.ads)
	g.POST("/ads", h.createAd)
	g.GET("/ads/edit/:id", h.editAdForm)
	g.POST("/ads/edit/:id", h.editAd)
	g.GET("/ads/delete/:id", h.deleteAd)

	g.GET("/providers", h.providers)
	g.POST("/providers", h.createProvider)
	g.GET("/providers/edit/:id", h.editProviderForm)
	g.POST("/providers/edit/:id", h.editProvider)
	g.GET("/providers/delete/:id", h.deleteProvider)

	g.GET("/feedback", h.feedback)
	g.GET("/feedback/delete/:id", h.deleteFeedback)
}
