package command

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio/internal/seed"
)

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty database with placeholder content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			return seed.Run(cmd.Context(), logger, store)
		},
	}
}
