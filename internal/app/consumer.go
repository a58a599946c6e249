package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hrms/internal/employeesalary"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/notification"
	"go-hrms/internal/payroll"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/counter"

	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	employeeSalaryService := employeesalary.NewService(sqlDB, employeeSalaryRepo)

	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	payrollService := payroll.NewService(sqlDB, payrollRepo, counterRepo)

	notificationRepo := notification.NewRepository(gormDB)
	var notificationService notification.Service
	if mailer, err := notification.NewSMTPMailerFromEnv(); err != nil {
		logger.Warn("smtp mailer not configured, email delivery disabled", zap.Error(err))
		notificationService = notification.NewService(sqlDB, notificationRepo)
	} else {
		notificationService = notification.NewServiceWithMailer(sqlDB, notificationRepo, mailer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	salaryConsumer := employeesalary.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"go-hrms-employee-salary",
		employeeSalaryService,
	)
	go salaryConsumer.Start(ctx)

	notificationConsumer := notification.NewEventConsumer(
		kafkaBroker,
		"go-hrms-notification",
		notificationService,
	)
	go notificationConsumer.Start(ctx)

	payslipReader := consumer.NewReader(
		kafkaBroker,
		events.PayrollPayslipRequestedTopic,
		"go-hrms-payroll-payslip",
	)
	defer payslipReader.Close()
	go consumer.ConsumePayrollPayslipRequested(ctx, payslipReader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
