package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ipryshchepa/FTG12-sub001/internal/app"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, application, err := bootstrap()
		if err != nil {
			return err
		}
		defer cfg.Close()
		defer application.Close()

		version, err := app.Migrate(cmd.Context(), application.DB)
		if err != nil {
			utils.Logger.WithError(err).Error("Migration failed")
			return err
		}
		utils.Logger.WithField("version", version).Info("Migrations finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
