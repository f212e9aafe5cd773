package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/api"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/share"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "http").Logger()

// NewRouter builds the HTTP routes:
//
//	GET /api/discover?artist=<name>&long=<bool>
//	GET /api/share?artist=<name>&text=<line>
//	GET /healthz
//	GET /metrics
func NewRouter(d api.Discoverer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/api/discover", func(c *gin.Context) {
		req, err := api.Request{Artist: c.Query("artist")}.Normalize()
		if err != nil {
			c.JSON(http.StatusBadRequest, api.FromError(err))
			return
		}
		if raw := c.Query("long"); raw != "" {
			req.PreferLong, err = strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "long must be a boolean"})
				return
			}
		}

		res, err := d.Discover(c.Request.Context(), req.Artist, req.PreferLong)
		if err != nil {
			c.JSON(statusFor(err), api.FromError(err))
			return
		}
		c.JSON(http.StatusOK, api.FromResult(res))
	})

	router.GET("/api/share", func(c *gin.Context) {
		f, err := share.FromValues(c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusBadRequest, api.FromError(err))
			return
		}
		c.JSON(http.StatusOK, api.FromFinding(f))
	})

	return router
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, music.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, api.ErrArtistRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}
