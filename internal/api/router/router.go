package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/config"
	"github.com/proj-int-univesp/lai-cmg/internal/api/handler"
	"github.com/proj-int-univesp/lai-cmg/internal/api/middleware"
	"github.com/proj-int-univesp/lai-cmg/pkg/jwt"
	"github.com/proj-int-univesp/lai-cmg/pkg/redis"
)

// globalBodyLimit caps JSON payloads; the multipart fulfillment route gets
// its own, larger allowance.
const (
	globalBodyLimit     = 1 << 20
	attachmentBodyLimit = 12 << 20
)

// Setup builds the Gin engine with all routes wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (public)
		auth := v1.Group("/auth")
		auth.Use(middleware.BodyLimit(globalBodyLimit))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", middleware.BodyLimit(globalBodyLimit), h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// information requests
			requests := authorized.Group("/requests")
			{
				requests.POST("", middleware.BodyLimit(globalBodyLimit), h.Request.Create)
				requests.GET("/mine", h.Request.ListMine)
				requests.GET("/queues/:stage", h.Request.Queue)
				requests.GET("/search", h.Request.Search)
				requests.GET("/:id", h.Request.Get)
				requests.GET("/:id/attachment", h.Request.DownloadAttachment)

				// lifecycle transitions; unit authorization happens in the
				// service against the routing configuration
				requests.POST("/:id/triage", middleware.BodyLimit(globalBodyLimit), h.Request.Triage)
				requests.POST("/:id/fulfill", middleware.BodyLimit(attachmentBodyLimit), h.Request.Fulfill)
				requests.POST("/:id/opinion", middleware.BodyLimit(globalBodyLimit), h.Request.Opine)
				requests.POST("/:id/decision", middleware.BodyLimit(globalBodyLimit), h.Request.DecideInitial)
				requests.POST("/:id/first-appeal", middleware.BodyLimit(globalBodyLimit), h.Request.FileFirstAppeal)
				requests.POST("/:id/first-appeal/decision", middleware.BodyLimit(globalBodyLimit), h.Request.DecideFirstAppeal)
				requests.POST("/:id/second-appeal", middleware.BodyLimit(globalBodyLimit), h.Request.FileSecondAppeal)
				requests.POST("/:id/second-appeal/decision", middleware.BodyLimit(globalBodyLimit), h.Request.DecideSecondAppeal)
			}

			// organizational units
			units := authorized.Group("/units")
			units.Use(middleware.BodyLimit(globalBodyLimit))
			{
				units.GET("", h.Unit.List)
				units.GET("/:id", h.Unit.Get)
				units.POST("", middleware.RoleAuth("admin"), h.Unit.Create)
				units.PUT("/:id", middleware.RoleAuth("admin"), h.Unit.Update)
				units.DELETE("/:id", middleware.RoleAuth("admin"), h.Unit.Delete)
			}

			// staff members (admin)
			staff := authorized.Group("/staff")
			staff.Use(middleware.BodyLimit(globalBodyLimit))
			staff.Use(middleware.RoleAuth("admin"))
			{
				staff.GET("", h.Staff.List)
				staff.GET("/:id", h.Staff.Get)
				staff.POST("", h.Staff.Create)
				staff.PUT("/:id", h.Staff.Update)
				staff.DELETE("/:id", h.Staff.Delete)
			}

			// responsibility routing (admin-managed, staff-readable)
			routing := authorized.Group("/routing-config")
			routing.Use(middleware.BodyLimit(globalBodyLimit))
			{
				routing.GET("", middleware.RoleAuth("admin", "staff"), h.Routing.Get)
				routing.PUT("", middleware.RoleAuth("admin"), h.Routing.Update)
			}

			// register export; the service additionally checks the caller's
			// unit against the routing configuration
			export := authorized.Group("/export")
			{
				export.GET("/register", middleware.RoleAuth("staff"), h.Export.ExportRegister)
			}
		}
	}

	return r
}
