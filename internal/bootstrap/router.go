package bootstrap

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/escola-api/api/swagger"
	"github.com/noah-isme/escola-api/internal/handler"
	"github.com/noah-isme/escola-api/internal/middleware"
	"github.com/noah-isme/escola-api/pkg/config"
	"github.com/noah-isme/escola-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/escola-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/escola-api/pkg/middleware/requestid"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(cfg *config.Config, logr *zap.Logger, svc *Services, db handler.Pinger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svc.Metrics))

	metricsHandler := handler.NewMetricsHandler(svc.Metrics, db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	home := handler.NewHomeHandler(svc.Summary)
	r.GET("/home", home.Summary)

	auth := handler.NewAuthHandler(svc.Auth)
	r.POST("/login", auth.Login)
	r.POST("/register/aluno", auth.Register)
	r.GET("/me", middleware.JWT(svc.Auth), auth.Me)

	teachers := handler.NewTeacherHandler(svc.Teachers)
	tg := r.Group("/professores")
	collection(tg, "GET", teachers.List)
	collection(tg, "POST", teachers.Create)
	tg.GET("/:id", teachers.Get)
	tg.PUT("/:id", teachers.Update)
	tg.DELETE("/:id", teachers.Delete)
	tg.GET("/:id/turmas", teachers.Classes)

	students := handler.NewStudentHandler(svc.Students)
	sg := r.Group("/alunos")
	collection(sg, "GET", students.List)
	collection(sg, "POST", students.Create)
	sg.GET("/:id", students.Get)
	sg.PUT("/:id", students.Update)
	sg.DELETE("/:id", students.Delete)
	sg.GET("/:id/turmas", students.Classes)

	courses := handler.NewCourseHandler(svc.Courses)
	cg := r.Group("/cursos")
	collection(cg, "GET", courses.List)
	collection(cg, "POST", courses.Create)
	cg.GET("/:id", courses.Get)
	cg.DELETE("/:id", courses.Delete)

	classes := handler.NewClassHandler(svc.Classes, svc.Export)
	clg := r.Group("/turmas")
	collection(clg, "GET", classes.List)
	collection(clg, "POST", classes.Create)
	clg.GET("/:id", classes.Get)
	clg.DELETE("/:id", classes.Delete)
	clg.GET("/:id/alunos", classes.Students)
	clg.GET("/:id/alunos/export", classes.Export)

	enrollments := handler.NewEnrollmentHandler(svc.Enrollments)
	eg := r.Group("/matriculas")
	collection(eg, "GET", enrollments.List)
	collection(eg, "POST", enrollments.Enroll)
	eg.DELETE("/:id", enrollments.Delete)

	return r
}

// collection registers h on the group root with and without the trailing
// slash so neither form is answered with a redirect.
func collection(g *gin.RouterGroup, method string, h gin.HandlerFunc) {
	g.Handle(method, "", h)
	g.Handle(method, "/", h)
}
