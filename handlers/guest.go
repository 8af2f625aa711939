package handlers

import (
	"errors"
	"net/http"

	"github.com/Gautam5514/url-shortner/services"
	"github.com/gin-gonic/gin"
)

type GuestShortenRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required"`
}

// GuestHandler exposes anonymous link creation. No auth, no editing; the
// created link expires on its own after 24 hours.
type GuestHandler struct {
	service *services.LinkService
}

func NewGuestHandler(service *services.LinkService) *GuestHandler {
	return &GuestHandler{service: service}
}

func (h *GuestHandler) Shorten(c *gin.Context) {
	var req GuestShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Original URL is required"})
		return
	}

	link, err := h.service.CreateGuest(c.Request.Context(), req.OriginalURL)
	if err != nil {
		if errors.Is(err, services.ErrMissingURL) || errors.Is(err, services.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while creating link"})
		return
	}

	c.JSON(http.StatusCreated, link)
}
