package services

import (
	"time"

	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/config"
	"github.com/kerem/schoolhub/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService      *AuthService
	ClassService     *ClassService
	StudentService   *StudentService
	TeacherService   *TeacherService
	FeeService       *FeeService
	SalaryService    *SalaryService
	DashboardService *DashboardService
	ActivityService  *ActivityService
}

// NewServices wires all services onto the repositories. feed may be nil when
// no live activity feed is attached.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, feed Broadcaster, cfg *config.Config) *Services {
	activity := NewActivityService(repos.ActivityRepository, feed, time.Now)

	scope := cfg.Reports.FilterScope
	if scope == "" {
		scope = config.FilterScopePage
	}

	return &Services{
		AuthService:      NewAuthService(repos.AdminRepository, jwtService),
		ClassService:     NewClassService(repos.ClassRepository, activity),
		StudentService:   NewStudentService(repos.StudentRepository, repos.ClassRepository, activity),
		TeacherService:   NewTeacherService(repos.TeacherRepository, repos.ClassRepository, activity),
		FeeService:       NewFeeService(repos.FeeRepository, repos.StudentRepository, activity, nil, scope, time.Now),
		SalaryService:    NewSalaryService(repos.SalaryRepository, repos.TeacherRepository, activity, scope, time.Now),
		DashboardService: NewDashboardService(repos.StudentRepository, repos.TeacherRepository, repos.ClassRepository, repos.FeeRepository, repos.SalaryRepository, activity, time.Now),
		ActivityService:  activity,
	}
}
