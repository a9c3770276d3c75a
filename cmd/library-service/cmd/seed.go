package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ipryshchepa/FTG12-sub001/internal/app"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, application, err := bootstrap()
		if err != nil {
			return err
		}
		defer cfg.Close()
		defer application.Close()

		if err := app.SeedAllTestData(cmd.Context(), newRepositories(application.DB)); err != nil {
			utils.Logger.WithError(err).Error("Seeding failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
