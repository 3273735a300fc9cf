package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/valeriaulyamaeva/wallet-api/internal/auth"
	"github.com/valeriaulyamaeva/wallet-api/internal/handlers"
	"github.com/valeriaulyamaeva/wallet-api/internal/mailer"
	"github.com/valeriaulyamaeva/wallet-api/internal/ratelimit"
)

const tokenTTL = 72 * time.Hour

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// SetupRouter собирает все маршруты приложения и их зависимости
func SetupRouter(pool *pgxpool.Pool, redisClient *redis.Client, jwtSecret []byte) *gin.Engine {
	sessions := auth.NewSessionStore(redisClient)
	limiter := ratelimit.NewLimiter(redisClient)
	authHandler := &handlers.AuthHandler{
		Pool:      pool,
		Sessions:  sessions,
		Resets:    auth.NewResetStore(redisClient),
		Mailer:    mailer.NewFromEnv(),
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}

	r := gin.Default()
	r.Use(CORSMiddleware())

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/forgot-password", ratelimit.ForgotPassword(limiter), authHandler.ForgotPassword)
	r.POST("/auth/reset-password", authHandler.ResetPassword)

	protected := r.Group("/", auth.Middleware(jwtSecret, sessions))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.PUT("/user/change-name", authHandler.ChangeName)

	protected.GET("/category/user-categories", handlers.ListCategoriesHandler(pool))
	protected.POST("/category/user-categories/store", handlers.CreateCategoryHandler(pool))
	protected.GET("/category/user-categories/:id", handlers.GetCategoryHandler(pool))
	protected.PUT("/category/user-categories/update/:id", handlers.UpdateCategoryHandler(pool))
	protected.DELETE("/category/user-categories/delete/:id", handlers.DeleteCategoryHandler(pool))

	protected.GET("/wallet/user-wallets", handlers.AllWalletsHandler(pool))
	protected.GET("/wallet/user-wallets/active", handlers.ActiveWalletsHandler(pool))
	protected.GET("/wallet/user-wallets/archived", handlers.ArchivedWalletsHandler(pool))
	protected.POST("/wallet/user-wallets/store", handlers.CreateWalletHandler(pool))
	protected.GET("/wallet/user-wallets/:id", handlers.GetWalletHandler(pool))
	protected.PUT("/wallet/user-wallets/update/:id", handlers.UpdateWalletHandler(pool))
	protected.DELETE("/wallet/user-wallets/delete/:id", handlers.DeleteWalletHandler(pool))

	protected.POST("/transaction/user-transactions/store", handlers.CreateTransactionHandler(pool))
	protected.GET("/transaction/user-transactions/list/:id", handlers.TransactionsByCategoryHandler(pool))

	return r
}
