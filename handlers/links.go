package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Gautam5514/url-shortner/auth"
	"github.com/Gautam5514/url-shortner/services"
	"github.com/Gautam5514/url-shortner/storage"
	"github.com/gin-gonic/gin"
)

type CreateLinkRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required"`
	CustomCode  string `json:"customCode"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateLinkRequest struct {
	OriginalURL *string `json:"originalUrl"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type LinkHandler struct {
	service *services.LinkService
}

func NewLinkHandler(service *services.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

func (h *LinkHandler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Original URL is required"})
		return
	}

	link, err := h.service.Create(c.Request.Context(), userID, services.CreateLinkInput{
		OriginalURL: req.OriginalURL,
		CustomCode:  req.CustomCode,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrCodeTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "That custom code is already in use"})
		case errors.Is(err, services.ErrMissingURL), errors.Is(err, services.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while creating link"})
		}
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *LinkHandler) List(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	links, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *LinkHandler) Get(c *gin.Context) {
	userID, id, ok := h.linkRequest(c)
	if !ok {
		return
	}

	link, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Update(c *gin.Context) {
	userID, id, ok := h.linkRequest(c)
	if !ok {
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.service.Update(c.Request.Context(), userID, id, services.UpdateLinkInput{
		OriginalURL: req.OriginalURL,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingURL),
			errors.Is(err, services.ErrInvalidURL),
			errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.writeLookupError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Delete(c *gin.Context) {
	userID, id, ok := h.linkRequest(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "URL and associated analytics removed successfully", "id": id})
}

func (h *LinkHandler) Stats(c *gin.Context) {
	userID, id, ok := h.linkRequest(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID, id)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *LinkHandler) linkRequest(c *gin.Context) (userID, linkID uint, ok bool) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return 0, 0, false
	}

	return userID, uint(id), true
}

func (h *LinkHandler) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized for this URL"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
