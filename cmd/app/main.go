package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"astracms/cmd/fx/auth_fx"
	"astracms/cmd/fx/controllers_fx"
	"astracms/cmd/fx/db_fx"
	"astracms/cmd/fx/mail_fx"
	"astracms/cmd/fx/users_fx"
	"astracms/internal/api/controllers"
	"astracms/internal/models/db_models"
	"astracms/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		auth_fx.Module,
		users_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "3001"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	usersController *controllers.UsersController,
	secret auth_fx.JWTSecret) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, authController, usersController, []byte(secret))

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	usersController *controllers.UsersController,
	secret []byte) {

	api := r.Group("/api/admin")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/verify-email", authController.VerifyEmail)
	auth.POST("/resend-verification", authController.ResendVerification)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)
	auth.POST("/check-status", authController.CheckStatus)
	auth.POST("/logout", middleware.RequireAuth(secret), authController.Logout)
	auth.GET("/verify", middleware.RequireAuth(secret), authController.Verify)
	auth.POST("/change-password", middleware.RequireAuth(secret), authController.ChangePassword)

	users := api.Group("/users",
		middleware.RequireAuth(secret),
		middleware.RequireRole(db_models.RoleSuperAdmin))
	users.GET("", usersController.ListUsers)
	users.GET("/:id", usersController.GetUser)
	users.PUT("/:id", usersController.UpdateUser)
	users.DELETE("/:id", usersController.DeleteUser)
	users.PATCH("/:id/activate", usersController.ActivateUser)
	users.PATCH("/:id/suspend", usersController.SuspendUser)
}
