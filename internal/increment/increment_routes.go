package increment

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	increments := r.Group("/increments")
	increments.Use(middleware.AuthMiddleware())
	{
		increments.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("HR", "ACCOUNTS", "ADMIN"),
			handler.GetHistory,
		)
		increments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("HR", "ADMIN"),
			handler.Apply,
		)
		increments.POST("/bulk",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RoleMiddleware("ADMIN"),
			handler.ApplyBulk,
		)
	}
}
