package routes

import (
	"github.com/gin-gonic/gin"

	"jobboard/internal/authz"
	"jobboard/internal/handlers"
	"jobboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	categoryHandler *handlers.CategoryHandler,
	applicationHandler *handlers.ApplicationHandler,
	favoriteHandler *handlers.FavoriteHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/signup/send-otp", authHandler.SendSignupOTP)
		auth.POST("/signup/verify", authHandler.VerifySignupOTP)
		auth.POST("/login/send-otp", authHandler.SendLoginOTP)
		auth.POST("/login/verify", authHandler.VerifyLoginOTP)
		auth.POST("/forgot-password/send-otp", authHandler.SendForgotPasswordOTP)
		auth.POST("/forgot-password/verify", authHandler.VerifyForgotPasswordOTP)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	r.GET("/jobs", jobHandler.List)
	r.GET("/jobs/:id", jobHandler.GetByID)
	r.GET("/categories", categoryHandler.List)

	// ---- authenticated
	authed := r.Group("", middleware.AuthMiddleware(jwtSecret))
	{
		authed.GET("/users/me", userHandler.GetProfile)
		authed.PUT("/users/me", userHandler.UpdateProfile)

		authed.GET("/favorites", favoriteHandler.List)
		authed.POST("/favorites/:id", favoriteHandler.Add)
		authed.DELETE("/favorites/:id", favoriteHandler.Remove)

		authed.POST("/jobs/:id/apply", applicationHandler.Apply)
		authed.GET("/applications/my", applicationHandler.ListMine)
	}

	// ---- staff and up
	staff := authed.Group("", middleware.RequireRoles(authz.RoleStaff, authz.RoleAdmin, authz.RoleSuperAdmin))
	{
		staff.POST("/jobs", jobHandler.Create)
		staff.PUT("/jobs/:id", jobHandler.Update)
		staff.DELETE("/jobs/:id", jobHandler.Delete)
		staff.POST("/jobs/:id/close", jobHandler.Close)

		staff.GET("/jobs/:id/applications", applicationHandler.ListByJob)
		staff.GET("/jobs/:id/applications/export", applicationHandler.ExportPDF)
		staff.POST("/applications/:id/status", applicationHandler.UpdateStatus)
	}

	// ---- admin and up
	admin := authed.Group("", middleware.RequireRoles(authz.RoleAdmin, authz.RoleSuperAdmin))
	{
		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/users", userHandler.ListUsers)
		admin.GET("/users/count", userHandler.GetUserCount)
		admin.GET("/users/count/role/:role", userHandler.GetUserCountByRole)
		admin.GET("/users/:id", userHandler.GetUserByID)
		admin.DELETE("/users/:id", userHandler.DeleteUser)
	}

	return r
}
