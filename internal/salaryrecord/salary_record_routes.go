package salaryrecord

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	records := r.Group("/salary-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.GetAllFinalized,
		)
		records.GET("/lop",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.GetLOP,
		)
		records.POST("/lop",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware("ACCOUNTS"),
			handler.SetLOP,
		)
		if redisClient != nil {
			records.POST("/finalize",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(1, 3),
				middleware.RoleMiddleware("ACCOUNTS"),
				handler.Finalize,
			)
		} else {
			records.POST("/finalize",
				middleware.RateLimitByUser(1, 3),
				middleware.RoleMiddleware("ACCOUNTS"),
				handler.Finalize,
			)
		}
		records.POST("/estimate",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.Estimate,
		)
		records.POST("/:id/payslip",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.GeneratePayslip,
		)
		records.GET("/:id/payslip/download",
			middleware.RateLimitByUser(2, 5),
			middleware.RoleMiddleware("ACCOUNTS", "ADMIN"),
			handler.DownloadPayslip,
		)
	}
}
