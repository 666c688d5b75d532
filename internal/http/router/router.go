package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/handler"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// Handlers объединяет HTTP обработчики, которые подключает роутер.
type Handlers struct {
	Skill   *handler.SkillHandler
	Request *handler.RequestHandler
	User    *handler.UserHandler
	WS      *handler.WSHandler
	Health  *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.GET("/ws", middleware.QueryTokenAuth(tokenManager), h.WS.Handle)

	// Публичные маршруты
	api.GET("/skills", h.Skill.ListSkills)
	api.GET("/skills/:id", middleware.UUIDValidator("id"), h.Skill.GetSkill)
	api.GET("/skills/:id/reviews", middleware.UUIDValidator("id"), h.Skill.ListReviews)
	api.GET("/users/:id/skills", middleware.UUIDValidator("id"), h.User.ListSkills)
	api.GET("/users/:id/progress", middleware.UUIDValidator("id"), h.User.GetProgress)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/requests/sent", h.Request.ListSent)
		protected.GET("/requests/received", h.Request.ListReceived)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), h.Request.GetRequest)
	}

	// Изменения дополнительно ограничены по частоте.
	mutations := api.Group("/")
	mutations.Use(middleware.AuthMiddleware(tokenManager), middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		mutations.POST("/skills", h.Skill.CreateSkill)
		mutations.PUT("/skills/:id", middleware.UUIDValidator("id"), h.Skill.UpdateSkill)
		mutations.DELETE("/skills/:id", middleware.UUIDValidator("id"), h.Skill.DeleteSkill)
		mutations.POST("/skills/:id/reviews", middleware.UUIDValidator("id"), h.Skill.AddReview)
		mutations.POST("/skills/:id/requests", middleware.UUIDValidator("id"), h.Request.CreateRequest)
		mutations.PUT("/requests/:id/status", middleware.UUIDValidator("id"), h.Request.UpdateStatus)
	}

	return r
}
