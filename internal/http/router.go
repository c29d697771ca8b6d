// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, rate
// limiting, CORS, security headers, and the access policy.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Authorization declared next to each route via the policy table
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/access"
	"github.com/dkosteva/go-airport-backend/internal/config"
	"github.com/dkosteva/go-airport-backend/internal/http/handlers"
	"github.com/dkosteva/go-airport-backend/internal/http/middleware"
	"github.com/dkosteva/go-airport-backend/internal/services"
	"github.com/dkosteva/go-airport-backend/internal/storage"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, identity resolution, health and metrics endpoints,
// and then mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter, gzip
//  6. Metrics
//  7. Identity: resolve the principal from the gateway headers
//  8. Rate limiter (per user/IP, needs the principal)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, images *storage.ImageStore, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB; image uploads get the configured
	// cap instead) and response compression
	r.Use(bodyLimits(1<<20, cfg.MaxImageSize))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Principal from the identity-provider headers
	r.Use(middleware.Identity())

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderUserID, middleware.HeaderUserStaff},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist.
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderUserID, middleware.HeaderUserStaff},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/storage
	locSvc := &services.LocationService{DB: db}
	fleetSvc := &services.FleetService{DB: db, Images: images}
	flightSvc := &services.FlightService{DB: db}
	orderSvc := &services.OrderService{DB: db}
	chatSvc := services.NewChatService(db)
	h := handlers.New(locSvc, fleetSvc, flightSvc, orderSvc, chatSvc, &cfg)

	// Policy shorthands; every route declares its (resource, action) pair.
	read := func(res access.Resource) gin.HandlerFunc { return middleware.Require(res, access.ActionRead) }
	write := func(res access.Resource) gin.HandlerFunc { return middleware.Require(res, access.ActionWrite) }
	manage := func(res access.Resource) gin.HandlerFunc { return middleware.Require(res, access.ActionManage) }

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Countries
		api.GET("/countries", read(access.ResourceCountry), h.ListCountries)
		api.GET("/countries/:id", read(access.ResourceCountry), h.GetCountry)
		api.POST("/countries", write(access.ResourceCountry), h.CreateCountry)
		api.PUT("/countries/:id", write(access.ResourceCountry), h.UpdateCountry)
		api.DELETE("/countries/:id", write(access.ResourceCountry), h.DeleteCountry)

		// Cities
		api.GET("/cities", read(access.ResourceCity), h.ListCities)
		api.GET("/cities/:id", read(access.ResourceCity), h.GetCity)
		api.POST("/cities", write(access.ResourceCity), h.CreateCity)
		api.PUT("/cities/:id", write(access.ResourceCity), h.UpdateCity)
		api.DELETE("/cities/:id", write(access.ResourceCity), h.DeleteCity)

		// Airports
		api.GET("/airports", read(access.ResourceAirport), h.ListAirports)
		api.GET("/airports/:id", read(access.ResourceAirport), h.GetAirport)
		api.POST("/airports", write(access.ResourceAirport), h.CreateAirport)
		api.PUT("/airports/:id", write(access.ResourceAirport), h.UpdateAirport)
		api.DELETE("/airports/:id", write(access.ResourceAirport), h.DeleteAirport)

		// Airplane types
		api.GET("/airplane_types", read(access.ResourceAirplaneType), h.ListAirplaneTypes)
		api.GET("/airplane_types/:id", read(access.ResourceAirplaneType), h.GetAirplaneType)
		api.POST("/airplane_types", write(access.ResourceAirplaneType), h.CreateAirplaneType)
		api.PUT("/airplane_types/:id", write(access.ResourceAirplaneType), h.UpdateAirplaneType)
		api.DELETE("/airplane_types/:id", write(access.ResourceAirplaneType), h.DeleteAirplaneType)

		// Airplanes
		api.GET("/airplanes", read(access.ResourceAirplane), h.ListAirplanes)
		api.GET("/airplanes/:id", read(access.ResourceAirplane), h.GetAirplane)
		api.POST("/airplanes", write(access.ResourceAirplane), h.CreateAirplane)
		api.PUT("/airplanes/:id", write(access.ResourceAirplane), h.UpdateAirplane)
		api.DELETE("/airplanes/:id", write(access.ResourceAirplane), h.DeleteAirplane)
		api.POST("/airplanes/:id/upload-image", manage(access.ResourceAirplane), h.UploadAirplaneImage)

		// Crews
		api.GET("/crews", read(access.ResourceCrew), h.ListCrews)
		api.GET("/crews/:id", read(access.ResourceCrew), h.GetCrew)
		api.POST("/crews", write(access.ResourceCrew), h.CreateCrew)
		api.PUT("/crews/:id", write(access.ResourceCrew), h.UpdateCrew)
		api.DELETE("/crews/:id", write(access.ResourceCrew), h.DeleteCrew)

		// Routes
		api.GET("/routes", read(access.ResourceRoute), h.ListRoutes)
		api.GET("/routes/:id", read(access.ResourceRoute), h.GetRoute)
		api.POST("/routes", write(access.ResourceRoute), h.CreateRoute)
		api.PUT("/routes/:id", write(access.ResourceRoute), h.UpdateRoute)
		api.DELETE("/routes/:id", write(access.ResourceRoute), h.DeleteRoute)

		// Flights
		api.GET("/flights", read(access.ResourceFlight), h.ListFlights)
		api.GET("/flights/:id", read(access.ResourceFlight), h.GetFlight)
		api.POST("/flights", write(access.ResourceFlight), h.CreateFlight)
		api.PUT("/flights/:id", write(access.ResourceFlight), h.UpdateFlight)
		api.DELETE("/flights/:id", write(access.ResourceFlight), h.DeleteFlight)

		// Orders
		api.GET("/orders", read(access.ResourceOrder), h.ListOrders)
		api.GET("/orders/:id", read(access.ResourceOrder), h.GetOrder)
		api.POST("/orders", write(access.ResourceOrder), h.CreateOrder)

		// Support chat
		api.GET("/chat_support", read(access.ResourceChatSupport), h.ListChats)
		api.GET("/chat_support/:id", read(access.ResourceChatSupport), h.GetChat)
		api.POST("/chat_support", write(access.ResourceChatSupport), h.CreateChat)
		api.PUT("/chat_support/:id", manage(access.ResourceChatSupport), h.UpdateChat)
		api.DELETE("/chat_support/:id", manage(access.ResourceChatSupport), h.DeleteChat)
		api.POST("/chat_support/:id/create_message", write(access.ResourceChatSupport), h.CreateChatMessage)
		api.PUT("/chat_support/:id/update_message/:message_id", write(access.ResourceChatSupport), h.UpdateChatMessage)
		api.DELETE("/chat_support/:id/delete_message/:message_id", write(access.ResourceChatSupport), h.DeleteChatMessage)
		api.PUT("/chat_support/:id/connect_support_to_chat", manage(access.ResourceChatSupport), h.ConnectToChat)
		api.PUT("/chat_support/:id/disconnect_user_from_chat", manage(access.ResourceChatSupport), h.DisconnectFromChat)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// bodyLimits caps request bodies at defBytes, except on the image upload
// route, where the configured image cap applies (never below defBytes, so a
// misconfigured cap cannot block uploads the default would allow).
func bodyLimits(defBytes, imageBytes int64) gin.HandlerFunc {
	if imageBytes < defBytes {
		imageBytes = defBytes
	}
	return func(c *gin.Context) {
		limit := defBytes
		if strings.HasSuffix(c.FullPath(), "/upload-image") {
			limit = imageBytes
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
