package app

import (
	"database/sql"

	"go-hrms/internal/asset"
	"go-hrms/internal/attendance"
	"go-hrms/internal/attendancereport"
	"go-hrms/internal/auth"
	"go-hrms/internal/codepattern"
	"go-hrms/internal/company"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/goal"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/notification"
	"go-hrms/internal/payroll"
	"go-hrms/internal/position"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/review"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	assetRepo := asset.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceReportRepo := attendancereport.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	codePatternRepo := codepattern.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	goalRepo := goal.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	assetService := asset.NewService(db, assetRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo)
	attendanceReportService := attendancereport.NewService(attendanceReportRepo)
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	codePatternService := codepattern.NewService(codePatternRepo)
	companyService := company.NewService(companyRepo)
	departmentService := department.NewService(db, departmentRepo, rdb)
	employeeSalaryService := employeesalary.NewService(db, employeeSalaryRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, codePatternService, outboxRepo, rdb)
	goalService := goal.NewService(db, goalRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, counterRepo, outboxRepo, rdb)
	positionService := position.NewService(db, positionRepo, rdb)
	reviewService := review.NewServiceWithOutbox(db, reviewRepo, outboxRepo)
	userService := user.NewService(userRepo, rbac.NewRoleAssigner(gormDB))

	var notificationService notification.Service
	if mailer, err := notification.NewSMTPMailerFromEnv(); err != nil {
		logger.Warn("smtp mailer not configured, email delivery disabled", zap.Error(err))
		notificationService = notification.NewService(db, notificationRepo)
	} else {
		notificationService = notification.NewServiceWithMailer(db, notificationRepo, mailer)
	}

	// --- Handlers ---
	assetHandler := asset.NewHandler(assetService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	attendanceReportHandler := attendancereport.NewHandler(attendanceReportService)
	authHandler := auth.NewHandler(authService)
	codePatternHandler := codepattern.NewHandler(codePatternService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	goalHandler := goal.NewHandler(goalService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	positionHandler := position.NewHandler(positionService)
	rbacHandler := rbac.NewHandler(rbacService)
	reviewHandler := review.NewHandler(reviewService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		asset.RegisterRoutes(api, assetHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		attendancereport.RegisterRoutes(api, attendanceReportHandler, rbacService)
		auth.RegisterRoutes(api, authHandler)
		codepattern.RegisterRoutes(api, codePatternHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService)
		goal.RegisterRoutes(api, goalHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		position.RegisterRoutes(api, positionHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		review.RegisterRoutes(api, reviewHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
	}

	return nil
}
