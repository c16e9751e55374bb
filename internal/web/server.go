// Package web serves the portfolio over HTTP.
package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/store"
)

// Options configures the HTTP server.
type Options struct {
	Addr          string
	Mode          string
	AlertTTL      time.Duration
	RelayTimeout  time.Duration
	RelayName     string
	AdminUsername string
	AdminPassword string
}

// Server is the portfolio HTTP server.
type Server struct {
	opts     Options
	db       *store.DB
	relay    contact.Relay
	log      *zap.Logger
	sections map[string]string
	router   *gin.Engine

	adminToken  string
	hashingSalt string

	// background visitor writes
	wg sync.WaitGroup
}

// New builds the server. db may be nil, in which case visitor tracking,
// the delivery journal and the admin area are disabled.
func New(opts Options, db *store.DB, relay contact.Relay, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.AlertTTL <= 0 {
		opts.AlertTTL = contact.DefaultAlertTTL
	}
	if opts.RelayName == "" {
		opts.RelayName = "relay"
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	sections, err := renderSections()
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:        opts,
		db:          db,
		relay:       relay,
		log:         log,
		sections:    sections,
		adminToken:  randomToken(),
		hashingSalt: randomToken(),
	}
	s.router = s.routes()
	return s, nil
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if s.db != nil {
		r.Use(s.visitorTracking())
	}

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/contact", s.handleContact)
	r.GET("/alert/dismiss", func(c *gin.Context) {
		c.String(http.StatusOK, "")
	})
	r.GET("/privacy", func(c *gin.Context) {
		render(c, http.StatusOK, messagePage("Privacy Policy",
			"Visits are logged with a salted hash of your address, never the address itself. "+
				"Requests carrying Do Not Track are not logged. Visit records are deleted after 12 months. "+
				"Contact messages are forwarded by email and not stored here."))
	})

	if s.db != nil {
		s.setupAdminRoutes(r)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.db != nil {
		go s.retentionLoop(ctx)
		if s.opts.Mode == gin.DebugMode {
			s.log.Debug("admin token (dev only)", zap.String("token", s.adminToken))
		}
		s.log.Info("admin access available", zap.String("path", "/admin/login"))
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("portfolio listening", zap.String("addr", s.opts.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.wg.Wait()
	return err
}

// Wait blocks until background visitor writes have finished.
func (s *Server) Wait() { s.wg.Wait() }

// retentionLoop removes visitor records past retention at startup and then
// daily.
func (s *Server) retentionLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		s.cleanupVisitors(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) cleanupVisitors(ctx context.Context) {
	n, err := s.db.CleanupVisitors(ctx, time.Now().Add(-store.VisitorRetention))
	if err != nil {
		s.log.Error("cleaning up old visitor data", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("privacy cleanup removed visitor records", zap.Int64("rows", n))
	}
}

// hashIP hashes an address with the per-process salt so visits can be
// counted without storing who made them.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(sum[:])[:16]
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("generating token: %v", err))
	}
	return hex.EncodeToString(b)
}

func render(c *gin.Context, status int, n g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := n.Render(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
