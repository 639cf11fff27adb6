package staff

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware())
	{
		staff.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("HR", "ACCOUNTS", "ADMIN"),
			handler.GetAll,
		)
		staff.GET("/options",
			middleware.RateLimitByUser(5, 10),
			middleware.RoleMiddleware("HR", "ACCOUNTS", "ADMIN"),
			handler.GetOptions,
		)
		staff.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("HR", "ACCOUNTS", "ADMIN"),
			handler.GetById,
		)
		staff.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("HR"),
			handler.Create,
		)
		staff.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("HR"),
			handler.Update,
		)
		staff.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("HR"),
			handler.Deactivate,
		)
		staff.POST("/:id/reactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("HR"),
			handler.Reactivate,
		)
	}
}
