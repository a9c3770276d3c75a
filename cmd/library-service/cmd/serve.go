package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/ipryshchepa/FTG12-sub001/internal/app"
	"github.com/ipryshchepa/FTG12-sub001/internal/config"
	"github.com/ipryshchepa/FTG12-sub001/internal/constants"
	"github.com/ipryshchepa/FTG12-sub001/internal/controllers"
	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, application, err := bootstrap()
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to initialize library-service")
		return err
	}
	defer cfg.Close()
	defer application.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if migrateOnStart {
		if _, err := app.Migrate(ctx, application.DB); err != nil {
			return err
		}
	}

	// Repositories
	repos := newRepositories(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(ctx, repos); err != nil {
			return err
		}
	}

	// Services
	healthService := services.NewHealthService(application.DB)
	bookService := services.NewBookService(repos.Books, repos.Loans, repos.Ratings, repos.ReadingStatuses)
	loanService := services.NewLoanService(repos.Books, repos.Loans, cfg.LDFlag_OverdueLoanDays)
	ratingService := services.NewRatingService(repos.Books, repos.Ratings)
	readingStatusService := services.NewReadingStatusService(repos.Books, repos.ReadingStatuses)

	mapper := middleware.NewProblemMapper(cfg.LDFlag_ExposeInternalErrorDetail, utils.Logger)
	if mapper.DiagnosticMode() {
		utils.Logger.Warn("Internal error detail is exposed to clients")
	}

	// Controllers
	router := app.NewRouter(app.Controllers{
		Health:        controllers.NewHealthController(healthService, mapper),
		Books:         controllers.NewBookController(bookService, mapper),
		Loans:         controllers.NewLoanController(loanService, mapper, cfg.LDFlag_OverdueLoanDays),
		Ratings:       controllers.NewRatingController(ratingService, mapper),
		ReadingStatus: controllers.NewReadingStatusController(readingStatusService, mapper),
	}, mapper)

	scheduler, err := startOverdueSweep(cfg, loanService)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           co.Handler(router),
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if err != nil {
			utils.Logger.WithError(err).Error("library-service failed to start")
			return err
		}
		return nil
	case sig := <-sigCh:
		utils.Logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func startOverdueSweep(cfg *config.Config, loans services.LoanService) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	spec := constants.OverdueLoanSweepCronSpec
	if cfg.IsDev() {
		spec = constants.ShortOverdueLoanSweepCronSpec
		utils.Logger.Warnf("Using short overdue sweep cron spec: '%s'", spec)
	}

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.OverdueLoanSweepJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting overdue loan sweep cron job...")
		if _, err := loans.SweepOverdueLoans(ctx); err != nil {
			utils.Logger.WithError(err).Error("Failed to sweep overdue loans")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	utils.Logger.Infof("Scheduled overdue loan sweep (%s)", spec)
	return c, nil
}
