package bootstrap

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/repository"
	"github.com/noah-isme/escola-api/internal/service"
	"github.com/noah-isme/escola-api/pkg/config"
)

// Services holds every service the HTTP layer depends on.
type Services struct {
	Teachers    *service.TeacherService
	Students    *service.StudentService
	Courses     *service.CourseService
	Classes     *service.ClassService
	Enrollments *service.EnrollmentService
	Auth        *service.AuthService
	Summary     *service.SummaryService
	Export      *service.ExportService
	Metrics     *service.MetricsService
}

// NewServices builds the service graph on top of db. cacheRepo may be nil,
// in which case the home summary is always read from the database.
func NewServices(cfg *config.Config, db *sqlx.DB, cacheRepo service.CacheRepository, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := service.NewMetricsService()
	store := repository.NewStore(db, metrics.ObserveDBQuery)
	uow := NewUnitOfWork(store)
	validate := dto.NewValidator()
	pager := service.Pager{DefaultLimit: cfg.Paging.DefaultLimit, MaxLimit: cfg.Paging.MaxLimit}

	cache := service.NewCacheService(cacheRepo, metrics, cfg.Summary.CacheTTL, logger, cfg.Redis.Enabled && cacheRepo != nil)
	summary := service.NewSummaryService(uow, cache, cfg.Summary.CacheTTL, logger)
	classes := service.NewClassService(uow, summary, pager, validate, logger)

	return &Services{
		Teachers:    service.NewTeacherService(uow, summary, pager, validate, logger),
		Students:    service.NewStudentService(uow, summary, pager, validate, logger),
		Courses:     service.NewCourseService(uow, summary, pager, validate, logger),
		Classes:     classes,
		Enrollments: service.NewEnrollmentService(uow, pager, validate, logger),
		Auth: service.NewAuthService(uow, summary, validate, logger, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            cfg.JWT.Issuer,
			AutoRegister:      cfg.Auth.AutoRegister,
		}),
		Summary: summary,
		Export:  service.NewExportService(classes, logger),
		Metrics: metrics,
	}
}
