package command

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio/internal/sec"
)

func adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account commands",
	}
	cmd.AddCommand(
		adminCreateCommand(),
		adminPasswdCommand(),
		adminDeleteCommand(),
		adminSessionsCommand(),
	)
	return cmd
}

func adminCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create admin account",
		Long: "Creates an admin account for the provided username and password. Passwords\n" +
			"may be provided via stdin or through the interactive prompt.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			username := args[0]
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			svc := sec.NewService(store, store)
			if _, err := svc.CreateAccount(cmd.Context(), username, string(passwd)); err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created admin account", slog.String("username", username))
			return nil
		},
	}
}

func adminPasswdCommand() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "passwd USERNAME",
		Short: "Change an account password",
		Long: "Changes the account's password after re-verifying the current one. With\n" +
			"--revoke, every outstanding session for the account is also deleted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			username := args[0]
			current, err := prompt("current password: ", true)
			if err != nil {
				return err
			}
			next, err := prompt("new password: ", true)
			if err != nil {
				return err
			}

			svc := sec.NewService(store, store)
			if err := svc.ChangePassword(cmd.Context(), username, string(current), string(next)); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "password changed", slog.String("username", username))

			if revoke {
				acct, err := store.GetAccountByUsername(cmd.Context(), username)
				if err != nil {
					return err
				}
				n, err := svc.RevokeSessions(cmd.Context(), acct.ID)
				if err != nil {
					return err
				}
				logger.InfoContext(cmd.Context(), "revoked sessions", slog.Int64("count", n))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "delete all outstanding sessions for the account")
	return cmd
}

func adminDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete admin account",
		Long: "Permanently deletes the account and all of its sessions. " +
			"This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			username := args[0]
			logger = logger.With(slog.String("username", username))
			acct, err := store.GetAccountByUsername(cmd.Context(), username)
			if err != nil {
				return err
			}
			resp, err := prompt("Are you sure you want to delete this account? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted account deletion")
				return err
			}
			if err = store.DeleteAccount(cmd.Context(), acct.ID); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "account deleted")
			return nil
		},
	}
}

func adminSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge USERNAME",
		Short: "Delete all sessions for an account",
		Long: "Deletes every outstanding session for the account, forcing it to log in\n" +
			"again everywhere.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			acct, err := store.GetAccountByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			svc := sec.NewService(store, store)
			n, err := svc.RevokeSessions(cmd.Context(), acct.ID)
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "purged sessions",
				slog.String("username", acct.Username),
				slog.Int64("count", n),
			)
			return nil
		},
	})
	return cmd
}
