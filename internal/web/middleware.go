package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/store"
)

// requestLogger logs every request through zap. Client addresses are logged
// hashed.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", s.hashIP(c.ClientIP())),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			s.log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			s.log.Warn("request", fields...)
		default:
			s.log.Debug("request", fields...)
		}
	}
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/alert/",
	"/favicon",
	"/privacy",
	"/healthz",
}

// visitorTracking records page views with hashed addresses. Requests with
// Do Not Track set are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visitor{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.db.TrackVisitor(ctx, v); err != nil {
				s.log.Warn("recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}
