package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/okanyildiz/schoolroster/internal/app/controllers"
	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	studentController *controllers.StudentController,
	transitionController *controllers.TransitionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

	authenticated.GET("/auth/profile", authController.GetProfile)

	// Class routes
	classes := authenticated.Group("/classes")
	{
		classes.GET("", classController.ListClasses)
		classes.GET("/:id", classController.GetClass)
		classes.POST("", adminOnly, classController.CreateClass)
		classes.PUT("/:id", adminOnly, classController.UpdateClass)
		classes.DELETE("/:id", adminOnly, classController.DeleteClass)
	}

	// Student routes
	students := authenticated.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudent)
		students.POST("", adminOnly, studentController.CreateStudent)
		students.PUT("/:id", adminOnly, studentController.UpdateStudent)
		students.DELETE("/:id", adminOnly, studentController.DeactivateStudent)
	}

	// Year transition workflow. Reads are open to any authenticated user,
	// every mutation is admin-only.
	transitions := authenticated.Group("/transitions")
	{
		transitions.GET("/:toYear/progress", transitionController.GetProgress)
		transitions.GET("/:toYear/unassigned-students", transitionController.GetUnassignedStudents)

		transitions.POST("/classes", adminOnly, transitionController.CreateNextYearClasses)
		transitions.POST("/assignments", adminOnly, transitionController.AssignStudent)
		transitions.DELETE("/assignments", adminOnly, transitionController.RemoveAssignment)
		transitions.POST("/auto-assign", adminOnly, transitionController.AutoAssign)
		transitions.POST("/confirm", adminOnly, transitionController.Confirm)
		transitions.POST("/execute", adminOnly, transitionController.Execute)
		transitions.DELETE("/:toYear/classes", adminOnly, transitionController.DeleteNextYearClasses)
	}
}
