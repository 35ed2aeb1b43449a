package routes

import (
	"profilematch/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController, middlewares ...gin.HandlerFunc) {
	userRoutes := router.Group("/users")
	userRoutes.Use(middlewares...)
	{
		userRoutes.POST("/", userController.CreateUser)
		userRoutes.GET("/", userController.ListUsers)
		userRoutes.GET("/:id", userController.GetUser)
		userRoutes.PATCH("/:id", userController.UpdateUser)
		userRoutes.DELETE("/:id", userController.DeactivateUser)
		userRoutes.GET("/:id/matches", userController.FindMatches)
	}
}
