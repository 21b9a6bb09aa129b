package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/config"
	appHTTP "github.com/fieldserve/rostering-backend-go/internal/handler/http"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/cron"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/jwt"
	"github.com/fieldserve/rostering-backend-go/internal/repository/postgresql"
	budgetService "github.com/fieldserve/rostering-backend-go/internal/service/budget"
	clockService "github.com/fieldserve/rostering-backend-go/internal/service/clockevent"
	timesheetService "github.com/fieldserve/rostering-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc := cfg.Location()

	clockEventRepo := postgresql.NewClockEventRepository(db)
	complianceLogRepo := postgresql.NewComplianceLogRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	budgetLedgerRepo := postgresql.NewBudgetLedgerRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	appointmentRepo := postgresql.NewAppointmentRepository(db)
	holidayRepo := postgresql.NewHolidayCalendarRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	clockSvc := clockService.NewClockService(
		txManager,
		clockEventRepo,
		complianceLogRepo,
		staffRepo,
		appointmentRepo,
		cfg.Attendance.GPSRadiusMeters,
	)
	decomposer := timesheetService.NewDecomposer(holidayRepo, loc)
	timesheetSvc := timesheetService.NewTimesheetService(
		txManager,
		timesheetRepo,
		clockEventRepo,
		appointmentRepo,
		staffRepo,
		decomposer,
		loc,
	)
	posterSvc := budgetService.NewPosterService(txManager, budgetLedgerRepo, timesheetRepo)

	clockHandler := appHTTP.NewClockHandler(clockSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, posterSvc, loc)

	scheduler := cron.NewScheduler()
	cron.NewTimesheetJobs(timesheetSvc, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App.Env, JWTService, clockHandler, timesheetHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
