package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/JeonHyeonsu/gaongill/internal/auth"
	"github.com/JeonHyeonsu/gaongill/internal/config"
	"github.com/JeonHyeonsu/gaongill/internal/handlers"
	"github.com/JeonHyeonsu/gaongill/internal/metrics"
	"github.com/JeonHyeonsu/gaongill/internal/middleware"
	"github.com/JeonHyeonsu/gaongill/internal/services"
	"github.com/JeonHyeonsu/gaongill/internal/store"
	"github.com/JeonHyeonsu/gaongill/internal/templates"

	"github.com/appleboy/graceful"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize store
	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize metrics
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}

	// Initialize authentication
	localProvider := auth.NewLocalProvider(db)
	facebookProvider := initializeFacebookProvider(cfg)

	// Initialize services
	userService := services.NewUserService(db, localProvider, cfg.OAuthAutoRegister)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, prometheusMetrics)
	oauthHandler := handlers.NewOAuthHandler(
		facebookProvider,
		userService,
		&http.Client{Timeout: 15 * time.Second},
		prometheusMetrics,
	)

	// Setup Gin
	setupGinMode(cfg)
	r := gin.New()
	// Metrics middleware must run before the routes it observes
	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())

	// Setup session middleware
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,     // Require HTTPS in production
		SameSite: http.SameSiteLaxMode, // Lax mode required for OAuth callbacks
	})
	r.Use(sessions.Sessions("gaongill_session", sessionStore))

	// Load embedded page templates
	templates.Load(r)

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Prometheus metrics endpoint (with optional authentication)
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuth(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Setup rate limiting
	rateLimiters, redisClient := setupRateLimiting(cfg)

	// Public routes
	r.GET("/", authHandler.Home)
	r.GET("/signup", authHandler.SignupPage)
	r.POST("/signup", rateLimiters.signup, authHandler.Signup)
	r.GET("/signin", authHandler.SigninPage)
	r.POST("/signin", rateLimiters.signin, authHandler.Signin)
	r.GET("/signout", authHandler.Signout)

	// Signed-in-only routes
	r.GET("/profile", middleware.RequireAuth(), authHandler.Profile)

	// Federated login routes
	r.GET("/facebook", oauthHandler.LoginWithProvider)
	r.GET("/facebook/callback", oauthHandler.OAuthCallback)

	if facebookProvider != nil {
		log.Printf("Facebook OAuth configured: redirect=%s", cfg.FacebookOAuthRedirectURL)
	}
	log.Printf("Auth server starting on %s", cfg.ServerAddr)

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Create graceful manager
	m := graceful.NewManager()

	// Add server as a running job
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})

	// Add shutdown job for HTTP server
	m.AddShutdownJob(func() error {
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
			return err
		}

		log.Println("Server exited")
		return nil
	})

	// Add shutdown job for Redis client (if used)
	if redisClient != nil {
		m.AddShutdownJob(func() error {
			log.Println("Closing Redis connection...")
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis client: %v", err)
				return err
			}
			log.Println("Redis connection closed")
			return nil
		})
	}

	// Wait for graceful shutdown
	<-m.Done()
}

// initializeFacebookProvider creates the Facebook OAuth provider when configured
func initializeFacebookProvider(cfg *config.Config) *auth.OAuthProvider {
	switch {
	case !cfg.FacebookOAuthEnabled:
		return nil
	case cfg.FacebookClientID == "" || cfg.FacebookClientSecret == "":
		log.Printf("Warning: Facebook OAuth enabled but CLIENT_ID or CLIENT_SECRET missing")
		return nil
	default:
		return auth.NewFacebookProvider(auth.OAuthProviderConfig{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  cfg.FacebookOAuthRedirectURL,
			Scopes:       cfg.FacebookOAuthScopes,
		})
	}
}

// createHealthCheckHandler creates the health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// rateLimitMiddlewares holds rate limiting middlewares for the credential endpoints
type rateLimitMiddlewares struct {
	signup gin.HandlerFunc
	signin gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
// Returns rate limit middlewares and optional Redis client (needs cleanup on shutdown)
func setupRateLimiting(cfg *config.Config) (rateLimitMiddlewares, *redis.Client) {
	noOpMiddleware := func(c *gin.Context) { c.Next() }

	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{signup: noOpMiddleware, signin: noOpMiddleware}, nil
	}

	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	var sharedRedisClient *redis.Client

	// Create shared Redis client for all limiters when using Redis store
	if storeType == middleware.RateLimitStoreRedis {
		var err error
		sharedRedisClient, err = middleware.CreateRedisClient(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
		)
		if err != nil {
			log.Fatalf("Failed to create shared Redis client: %v", err)
		}
		log.Printf("Redis rate limiting configured: %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)
	} else {
		log.Printf("In-memory rate limiting configured (single instance only)")
	}

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       sharedRedisClient, // Shared client (nil for memory store)
			RedisAddr:         cfg.RedisAddr,
			RedisPassword:     cfg.RedisPassword,
			RedisDB:           cfg.RedisDB,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create rate limiter for %s: %v", endpoint, err)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		signup: createLimiter(cfg.SignupRateLimit, "/signup"),
		signin: createLimiter(cfg.SigninRateLimit, "/signin"),
	}, sharedRedisClient
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
		log.Printf("Gin mode: Release (production)")
		return
	}
	gin.SetMode(gin.DebugMode)
	log.Printf("Gin mode: Debug (development)")
}
