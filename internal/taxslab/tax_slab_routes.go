package taxslab

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	slabs := r.Group("/tax-slabs")
	slabs.Use(middleware.AuthMiddleware())
	{
		slabs.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.GetAll,
		)
		slabs.GET("/lookup",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.Lookup,
		)
		slabs.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.GetById,
		)
		slabs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("ACCOUNTS"),
			handler.Create,
		)
		slabs.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("ACCOUNTS"),
			handler.Update,
		)
		slabs.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.Delete,
		)
	}
}
