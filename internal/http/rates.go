package http

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /v1/rates
func (s *Server) getRates(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(s.cfg.ReqTimeoutSec)*time.Second)
	defer cancel()

	base := strings.ToUpper(strings.TrimSpace(c.Query("base")))
	if base == "" {
		base = s.cfg.DefaultCurrency
	}

	snap, err := s.rates.Rates(ctx, base)
	if err != nil {
		c.JSON(502, gin.H{"error": "rates_unavailable"})
		return
	}

	c.JSON(200, snap)
}
