package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/moviezone-io/web-ui/models"
)

func (s *Handler) ads(c *gin.Context) {
	s.renderAds(c, "")
}

func (s *Handler) renderAds(c *gin.Context, formError string) {
	ads, err := models.ListAds(c.Request.Context(), s.db)
	if err != nil {
		log.WithError(err).Error("failed to list ads")
	}
	status := http.StatusOK
	if formError != "" {
		status = http.StatusBadRequest
	}
	c.HTML(status, "admin_ads", gin.H{
		"Ads":   ads,
		"Error": formError,
	})
}

func parseAdForm(v url.Values) (*models.AdPlacement, error) {
	title := strings.TrimSpace(v.Get("title"))
	if title == "" {
		return nil, errors.New("title is required")
	}
	adType := models.AdType(v.Get("type"))
	switch adType {
	case models.AdTypeBanner, models.AdTypeNative, models.AdTypeInterstitial:
	default:
		return nil, errors.Errorf("unknown ad type %q", adType)
	}
	position := models.AdPosition(v.Get("position"))
	switch position {
	case models.AdPositionHeader, models.AdPositionMiddle, models.AdPositionFooter, models.AdPositionSidebar:
	default:
		return nil, errors.Errorf("unknown ad position %q", position)
	}
	priority, err := strconv.Atoi(strings.TrimSpace(v.Get("priority")))
	if err != nil {
		return nil, errors.Errorf("invalid priority %q", v.Get("priority"))
	}
	return &models.AdPlacement{
		Title:     title,
		Type:      adType,
		Position:  position,
		TargetURL: strings.TrimSpace(v.Get("target_url")),
		ImageURL:  strings.TrimSpace(v.Get("image_url")),
		Active:    v.Get("active") == "true",
		Priority:  priority,
	}, nil
}

func (s *Handler) createAd(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		s.renderAds(c, "malformed form submission")
		return
	}
	ad, err := parseAdForm(c.Request.PostForm)
	if err != nil {
		s.renderAds(c, err.Error())
		return
	}
	ad.CreatedAt = time.Now()
	if err := models.InsertAd(c.Request.Context(), s.db, ad); err != nil {
		log.WithError(err).Error("failed to insert ad")
	}
	c.Redirect(http.StatusFound, "/admin/ads")
}

func (s *Handler) editAdForm(c *gin.Context) {
	ad, err := models.GetAdByID(c.Request.Context(), s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load ad")
	}
	if ad == nil {
		c.String(http.StatusNotFound, "Ad not found")
		return
	}
	c.HTML(http.StatusOK, "admin_ad_edit", gin.H{
		"Ad": ad,
	})
}

func (s *Handler) editAd(c *gin.Context) {
	ctx := c.Request.Context()
	ad, err := models.GetAdByID(ctx, s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load ad")
	}
	if ad == nil {
		c.String(http.StatusNotFound, "Ad not found")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "admin_ad_edit", gin.H{"Ad": ad, "Error": "malformed form submission"})
		return
	}
	parsed, err := parseAdForm(c.Request.PostForm)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_ad_edit", gin.H{"Ad": ad, "Error": err.Error()})
		return
	}
	set := bson.M{
		"title":      parsed.Title,
		"type":       parsed.Type,
		"position":   parsed.Position,
		"target_url": parsed.TargetURL,
		"image_url":  parsed.ImageURL,
		"active":     parsed.Active,
		"priority":   parsed.Priority,
	}
	if err := models.UpdateAd(ctx, s.db, ad.ID, set); err != nil {
		log.WithError(err).Error("failed to update ad")
	}
	c.Redirect(http.StatusFound, "/admin/ads")
}

func (s *Handler) deleteAd(c *gin.Context) {
	if err := models.DeleteAd(c.Request.Context(), s.db, c.Param("id")); err != nil {
		log.WithError(err).Error("failed to delete ad")
	}
	c.Redirect(http.StatusFound, "/admin/ads")
}

func (s *Handler) providers(c *gin.Context) {
	s.renderProviders(c, "")
}

func (s *Handler) renderProviders(c *gin.Context, formError string) {
	providers, err := models.ListAdProviders(c.Request.Context(), s.db)
	if err != nil {
		log.WithError(err).Error("failed to list ad providers")
	}
	status := http.StatusOK
	if formError != "" {
		status = http.StatusBadRequest
	}
	c.HTML(status, "admin_providers", gin.H{
		"Providers": providers,
		"Error":     formError,
	})
}

func parseProviderForm(v url.Values) (*models.AdProvider, error) {
	name := strings.TrimSpace(v.Get("name"))
	if name == "" {
		return nil, errors.New("name is required")
	}
	apiURL := strings.TrimSpace(v.Get("api_url"))
	if apiURL == "" {
		return nil, errors.New("api url is required")
	}
	priority, err := strconv.Atoi(strings.TrimSpace(v.Get("priority")))
	if err != nil {
		return nil, errors.Errorf("invalid priority %q", v.Get("priority"))
	}
	return &models.AdProvider{
		Name:     name,
		ApiURL:   strings.TrimRight(apiURL, "/"),
		ApiKey:   strings.TrimSpace(v.Get("api_key")),
		Active:   v.Get("active") == "true",
		Priority: priority,
	}, nil
}

func (s *Handler) createProvider(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		s.renderProviders(c, "malformed form submission")
		return
	}
	p, err := parseProviderForm(c.Request.PostForm)
	if err != nil {
		s.renderProviders(c, err.Error())
		return
	}
	p.CreatedAt = time.Now()
	if err := models.InsertAdProvider(c.Request.Context(), s.db, p); err != nil {
		log.WithError(err).Error("failed to insert ad provider")
	}
	c.Redirect(http.StatusFound, "/admin/providers")
}

func (s *Handler) editProviderForm(c *gin.Context) {
	p, err := models.GetAdProviderByID(c.Request.Context(), s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load ad provider")
	}
	if p == nil {
		c.String(http.StatusNotFound, "Provider not found")
		return
	}
	c.HTML(http.StatusOK, "admin_provider_edit", gin.H{
		"Provider": p,
	})
}

func (s *Handler) editProvider(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := models.GetAdProviderByID(ctx, s.db, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("failed to load ad provider")
	}
	if p == nil {
		c.String(http.StatusNotFound, "Provider not found")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "admin_provider_edit", gin.H{"Provider": p, "Error": "malformed form submission"})
		return
	}
	parsed, err := parseProviderForm(c.Request.PostForm)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_provider_edit", gin.H{"Provider": p, "Error": err.Error()})
		return
	}
	set := bson.M{
		"name":     parsed.Name,
		"api_url":  parsed.ApiURL,
		"api_key":  parsed.ApiKey,
		"active":   parsed.Active,
		"priority": parsed.Priority,
	}
	if err := models.UpdateAdProvider(ctx, s.db, p.ID, set); err != nil {
		log.WithError(err).Error("failed to update ad provider")
	}
	c.Redirect(http.StatusFound, "/admin/providers")
}

func (s *Handler) deleteProvider(c *gin.Context) {
	if err := models.DeleteAdProvider(c.Request.Context(), s.db, c.Param("id")); err != nil {
		log.WithError(err).Error("failed to delete ad provider")
	}
	c.Redirect(http.StatusFound, "/admin/providers")
}
