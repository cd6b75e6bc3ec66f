package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/appointment"
	apptHttp "github.com/nekogravitycat/barber-booking-backend/internal/appointment/http"
	"github.com/nekogravitycat/barber-booking-backend/internal/auth"
	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	barberHttp "github.com/nekogravitycat/barber-booking-backend/internal/barber/http"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/ratelimit"
)

// Config holds everything the router needs to assemble handlers.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	JWTManager  *auth.JWTManager
	Verifier    auth.Verifier
	CodeTTL     time.Duration
	CodeLimiter *ratelimit.Limiter

	Directory    barber.Directory
	Appointments appointment.Service
	Location     *time.Location
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Structured request log through zap.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.Middleware(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks the token's admin claim.
	adminMiddleware := auth.RequireAdmin()

	authHandler := NewAuthHandler(cfg.Verifier, cfg.CodeTTL, !cfg.IsProduction)
	barberHandler := barberHttp.NewHandler(cfg.Directory)
	apptHandler := apptHttp.NewHandler(cfg.Appointments, cfg.Location)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		registerAuthRoutes(v1, authHandler, authMiddleware, cfg.CodeLimiter)
		barberHttp.RegisterRoutes(v1, barberHandler, authMiddleware, adminMiddleware)
		apptHttp.RegisterRoutes(v1, apptHandler, authMiddleware)
	}

	return r
}

func registerAuthRoutes(g *gin.RouterGroup, h *AuthHandler, authMiddleware gin.HandlerFunc, limiter *ratelimit.Limiter) {
	group := g.Group("/auth")

	sendCode := []gin.HandlerFunc{h.SendCode}
	if limiter != nil {
		sendCode = append([]gin.HandlerFunc{limiter.Middleware(ratelimit.ByClientIP)}, sendCode...)
	}

	group.POST("/code", sendCode...)                // Request a verification code
	group.POST("/verify", h.Verify)                 // Exchange a code for an access token
	group.POST("/logout", authMiddleware, h.Logout) // Drop pending codes
	group.GET("/me", authMiddleware, h.Me)          // Current customer
}

// allowedOrigins returns the local dev origins, or PROD_ORIGINS split on commas in production.
func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{
			"http://localhost:8081",
			"http://localhost:19006",
			"http://localhost:3000",
		}
	}

	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
