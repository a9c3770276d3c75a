package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ipryshchepa/FTG12-sub001/internal/app"
	"github.com/ipryshchepa/FTG12-sub001/internal/config"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "library-service",
	Short: "Personal book library API",
	Long: `library-service serves the personal book library over HTTP/JSON.

Commands:
  serve    - run the HTTP API and the overdue-loan sweep
  migrate  - apply pending database migrations
  seed     - insert the demo library (idempotent)

Configuration is read from the environment (DB_URL, APP_PORT, ENV,
LOG_LEVEL, LD_SDK_KEY, ...).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(config.AppName)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads config and connects to the database.
func bootstrap() (*config.Config, *app.App, error) {
	cfg := config.LoadConfig()
	application, err := app.NewApp(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, application, nil
}

func newRepositories(db repositories.DB) app.Repositories {
	return app.Repositories{
		Books:           repositories.NewBookRepository(db),
		Loans:           repositories.NewLoanRepository(db),
		Ratings:         repositories.NewRatingRepository(db),
		ReadingStatuses: repositories.NewReadingStatusRepository(db),
	}
}
