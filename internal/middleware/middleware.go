package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rakaarfi/roster-system-be/internal/config"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// SetupGlobalMiddleware mendaftarkan middleware global sesuai urutan eksekusi
func SetupGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	// 1. Recover (paling awal), stack trace hanya di luar production
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))

	// 2. Request ID
	app.Use(requestid.New())

	// 3. CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 4. Rate Limiter per IP
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			zlog.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("Rate limit reached")
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
				Success: false, Message: "Too many requests",
			})
		},
	}))

	// 5. Logger Request
	app.Use(requestLogger)

	// 6. Compression
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	zlog.Info().Str("cors_origins", cfg.CORSAllowOrigins).Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Msg("Global middleware registered")
}

// requestLogger mencatat setiap request setelah handler selesai
func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()

	var event *zerolog.Event
	switch {
	case err != nil:
		event = zlog.Warn().Err(err)
	case status >= fiber.StatusInternalServerError:
		event = zlog.Error()
	case status >= fiber.StatusBadRequest:
		event = zlog.Warn()
	default:
		event = zlog.Info()
	}

	event = event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("ip", c.IP())

	if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
		event = event.Str("request_id", requestID)
	}
	// Principal hanya ada untuk route yang dilindungi
	if p, ok := c.Locals(utils.LocalsPrincipal).(models.Principal); ok {
		event = event.Str("user_id", p.UserID).Str("role", p.Role)
	}
	event.Msg("Request handled")
	return err
}
