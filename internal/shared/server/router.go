package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/shared/config"
	"cvtoaster-backend/internal/shared/server/middleware"
	"cvtoaster-backend/internal/shared/server/respond"
)

// Registrar attaches a handler's routes to a router group.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up. Nil fields are
// skipped, which lets tests build partial routers.
type RouterDeps struct {
	Config          config.Config
	UserHandler     Registrar
	ResumeHandler   Registrar
	InsightsHandler Registrar
	GoogleAuth      Registrar
}

// generationGroup limits expensive endpoints harder than the rest of the
// API: each of these requests costs at least one external model call.
const generationGroup = "GENERATION"

var generationPrefixes = []string{
	"/api/v1/roast",
	"/api/v1/feedback",
	"/api/v1/improve_content",
	"/api/v1/ats_analysis",
	"/api/v1/generate_cover_letter",
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generationGroup: {Rate: 0.5, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				path := c.Request.URL.Path
				if c.Request.Method != http.MethodGet {
					for _, prefix := range generationPrefixes {
						if strings.HasPrefix(path, prefix) {
							return generationGroup
						}
					}
				}
				return ""
			},
		}),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	for _, registrar := range []Registrar{
		deps.GoogleAuth,
		deps.UserHandler,
		deps.ResumeHandler,
		deps.InsightsHandler,
	} {
		if registrar != nil {
			registrar.RegisterRoutes(api)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
