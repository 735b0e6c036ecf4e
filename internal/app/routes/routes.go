package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerem/schoolhub/internal/app/controllers"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/middleware"
	"github.com/kerem/schoolhub/internal/pkg/ws"
	"github.com/rs/zerolog"
)

// SetupRouter configures all application routes under /api/v1. Everything
// except login requires a bearer token; write operations carry role
// restrictions on top.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	feeController *controllers.FeeController,
	salaryController *controllers.SalaryController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	feedHub *ws.Hub,
	logger zerolog.Logger,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	anyAdmin := authMiddleware.RequireRoles()
	recorder := authMiddleware.RequireRoles(models.RoleSuper, models.RoleSub)
	superOnly := authMiddleware.RequireRoles(models.RoleSuper)

	classes := authenticated.Group("/classes")
	{
		classes.GET("", anyAdmin, classController.GetClasses)
		classes.GET("/:id", anyAdmin, classController.GetClass)
		classes.GET("/:id/students", anyAdmin, classController.GetClassStudents)
		classes.POST("", recorder, classController.CreateClass)
		classes.PUT("/:id", superOnly, classController.UpdateClass)
		classes.DELETE("/:id", superOnly, classController.DeleteClass)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", anyAdmin, studentController.GetStudents)
		students.GET("/:id", anyAdmin, studentController.GetStudent)
		students.POST("", recorder, studentController.CreateStudent)
		students.PUT("/:id", superOnly, studentController.UpdateStudent)
		students.DELETE("/:id", superOnly, studentController.DeleteStudent)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", anyAdmin, teacherController.GetTeachers)
		teachers.GET("/:id", anyAdmin, teacherController.GetTeacher)
		teachers.POST("", recorder, teacherController.CreateTeacher)
		teachers.PUT("/:id", superOnly, teacherController.UpdateTeacher)
		teachers.PUT("/:id/classes", superOnly, teacherController.AssignClasses)
		teachers.DELETE("/:id", superOnly, teacherController.DeleteTeacher)
	}

	fees := authenticated.Group("/fees")
	{
		fees.GET("", anyAdmin, feeController.ListPayments)
		fees.GET("/student/:studentId", anyAdmin, feeController.StudentHistory)
		fees.GET("/debt-report", anyAdmin, feeController.DebtReport)
		fees.POST("", recorder, feeController.RecordPayment)
		fees.PUT("/:studentId/:paymentId", superOnly, feeController.UpdatePayment)
		fees.DELETE("/:studentId/:paymentId", superOnly, feeController.DeletePayment)
	}

	salaries := authenticated.Group("/salaries")
	{
		salaries.GET("", anyAdmin, salaryController.ListPayments)
		salaries.GET("/teacher/:teacherId", anyAdmin, salaryController.TeacherHistory)
		salaries.POST("", recorder, salaryController.RecordPayment)
		salaries.PUT("/:teacherId/:paymentId", superOnly, salaryController.UpdatePayment)
		salaries.DELETE("/:teacherId/:paymentId", superOnly, salaryController.DeletePayment)
	}

	dashboard := authenticated.Group("/dashboard")
	{
		dashboard.GET("/stats", anyAdmin, dashboardController.Stats)
		dashboard.GET("/activity-feed", anyAdmin, ws.ServeWS(feedHub, logger))
	}
}
