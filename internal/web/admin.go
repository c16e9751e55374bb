package web

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/store"
)

const adminCookie = "admin_token"

// adminAuth redirects to the login page unless the request carries the
// admin cookie.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) credentialsMatch(username, password string) bool {
	wantUser, wantPass := s.opts.AdminUsername, s.opts.AdminPassword
	if wantUser == "" || wantPass == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPass)) == 1
	return userOK && passOK
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if s.opts.AdminUsername == "" || s.opts.AdminPassword == "" {
		s.log.Warn("admin credentials not configured; admin login disabled")
	}

	r.GET("/admin/login", func(c *gin.Context) {
		render(c, http.StatusOK, loginPage(""))
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", c.Request.TLS != nil, true)
			s.log.Info("admin login", zap.String("client", s.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.log.Warn("failed admin login attempt", zap.String("client", s.hashIP(c.ClientIP())))
		render(c, http.StatusUnauthorized, loginPage("Invalid credentials"))
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			s.log.Error("loading admin stats", zap.Error(err))
			render(c, http.StatusInternalServerError, messagePage("Error", "Failed to load statistics"))
			return
		}
		render(c, http.StatusOK, dashboardPage(stats))
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			render(c, http.StatusInternalServerError, messagePage("Error", "Failed to load visitors"))
			return
		}
		render(c, http.StatusOK, layout("Visitors", h.Main(h.H1(g.Text("Visitors")), visitorTable(visitors))))
	})

	admin.GET("/deliveries", func(c *gin.Context) {
		deliveries, err := s.db.RecentDeliveries(c.Request.Context(), 200)
		if err != nil {
			render(c, http.StatusInternalServerError, messagePage("Error", "Failed to load deliveries"))
			return
		}
		render(c, http.StatusOK, layout("Deliveries", h.Main(h.H1(g.Text("Contact deliveries")), deliveryTable(deliveries))))
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.db.CleanupVisitors(c.Request.Context(), time.Now().Add(-store.VisitorRetention))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("admin stats exported", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}

func loginPage(errMsg string) g.Node {
	return layout("Admin Login",
		h.Main(
			h.H1(g.Text("Admin Login")),
			g.If(errMsg != "", failureNotice(errMsg)),
			h.Form(h.Method("post"), h.Action("/admin/login"),
				h.Label(h.For("username"), g.Text("Username")),
				h.Input(h.ID("username"), h.Name("username"), h.Type("text"), h.Required()),
				h.Label(h.For("password"), g.Text("Password")),
				h.Input(h.ID("password"), h.Name("password"), h.Type("password"), h.Required()),
				h.Button(h.Type("submit"), g.Text("Log in")),
			),
		),
	)
}

func dashboardPage(stats *store.Stats) g.Node {
	stat := func(label string, v int64) g.Node {
		return h.Li(h.Strong(g.Text(label+": ")), g.Text(strconv.FormatInt(v, 10)))
	}
	return layout("Dashboard",
		h.Main(
			h.H1(g.Text("Dashboard")),
			h.Ul(
				stat("Total visitors", stats.TotalVisitors),
				stat("Unique visitors", stats.UniqueVisitors),
				stat("Visitors today", stats.VisitorsToday),
				stat("Visitors this week", stats.VisitorsThisWeek),
				stat("Messages sent", stats.DeliveriesSent),
				stat("Messages failed", stats.DeliveriesFailed),
			),
			h.H2(g.Text("Recent deliveries")),
			deliveryTable(stats.RecentDeliveries),
			h.H2(g.Text("Recent visitors")),
			visitorTable(stats.RecentVisitors),
			h.P(
				h.A(h.Href("/admin/export/stats"), g.Text("Export")),
				g.Text(" · "),
				h.A(h.Href("/admin/logout"), g.Text("Log out")),
			),
		),
	)
}

func visitorTable(visitors []store.Visitor) g.Node {
	return h.Table(
		h.THead(h.Tr(h.Th(g.Text("When")), h.Th(g.Text("Visitor")), h.Th(g.Text("Path")), h.Th(g.Text("User agent")))),
		h.TBody(g.Map(visitors, func(v store.Visitor) g.Node {
			return h.Tr(
				h.Td(g.Text(v.Timestamp.Format(time.DateTime))),
				h.Td(g.Text(v.HashedIP)),
				h.Td(g.Text(v.Path)),
				h.Td(g.Text(v.UserAgent)),
			)
		})),
	)
}

func deliveryTable(deliveries []contact.Delivery) g.Node {
	return h.Table(
		h.THead(h.Tr(h.Th(g.Text("When")), h.Th(g.Text("Relay")), h.Th(g.Text("Status")), h.Th(g.Text("Error")))),
		h.TBody(g.Map(deliveries, func(d contact.Delivery) g.Node {
			return h.Tr(
				h.Td(g.Text(d.At.Format(time.DateTime))),
				h.Td(g.Text(d.Relay)),
				h.Td(g.Text(string(d.Status))),
				h.Td(g.Text(d.Error)),
			)
		})),
	)
}
