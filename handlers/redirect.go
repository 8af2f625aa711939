package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gautam5514/url-shortner/services"
	"github.com/Gautam5514/url-shortner/storage"
	"github.com/gin-gonic/gin"
)

// RedirectHandler serves the public redirect path. It answers with a 301 as
// soon as the code resolves and hands click accounting to the recorder
// without waiting on it.
type RedirectHandler struct {
	resolver *services.Resolver
	recorder *services.ClickRecorder
}

func NewRedirectHandler(resolver *services.Resolver, recorder *services.ClickRecorder) *RedirectHandler {
	return &RedirectHandler{resolver: resolver, recorder: recorder}
}

func (h *RedirectHandler) Redirect(c *gin.Context) {
	code := c.Param("code")

	res, err := h.resolver.Resolve(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.String(http.StatusNotFound, "URL not found or is inactive.")
		} else {
			c.String(http.StatusInternalServerError, "Server error")
		}
		return
	}

	h.recorder.Record(clickFromRequest(c, res))
	c.Redirect(http.StatusMovedPermanently, res.OriginalURL())
}

func clickFromRequest(c *gin.Context, res *services.Resolution) services.Click {
	referer := c.Request.Referer()
	if referer == "" {
		referer = "Direct"
	}

	click := services.Click{
		Time:      time.Now(),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   referer,
	}
	if res.IsGuest() {
		click.GuestCode = res.Guest.ShortCode
	} else {
		click.LinkID = res.Registered.ID
	}
	return click
}
