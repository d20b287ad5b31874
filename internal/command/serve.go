package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foliohq/folio/internal/app"
	"github.com/foliohq/folio/internal/sec"
	"github.com/foliohq/folio/internal/server"
	"github.com/foliohq/folio/internal/storage"
)

// Default first-run credentials. The operator is warned at startup until the
// password is changed.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// reapInterval is how often expired sessions are swept. Lazy expiration on
// validation already keeps stale sessions unusable; the sweep just bounds
// table growth.
const reapInterval = time.Hour

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the portfolio site API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			svc := sec.NewService(store, store)
			if err := bootstrapAdmin(cmd.Context(), logger, store, svc); err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			reapSessions(ctx, grp, logger, store)

			srv := app.New(cfg, logger, svc, store)

			listener, err := server.Listen(ctx, cfg.Address)
			if err != nil {
				return err
			}
			logger.InfoContext(ctx,
				"starting app server...",
				slog.String("address", cfg.Address),
			)
			server.Serve(ctx, grp, srv.Server, listener, server.ShutdownTimeout)
			return grp.Wait()
		},
	}
}

// bootstrapAdmin creates the default admin account on a database with no
// accounts at all, so a fresh install is immediately usable.
func bootstrapAdmin(
	ctx context.Context,
	logger *slog.Logger,
	store storage.Store,
	svc *sec.Service,
) error {
	count, err := store.CountAccounts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	acct, err := svc.CreateAccount(ctx, defaultAdminUsername, defaultAdminPassword)
	if err != nil {
		return err
	}
	logger.WarnContext(ctx,
		"created default admin account with a well-known password, change it immediately",
		slog.String("username", acct.Username),
	)
	return nil
}

func reapSessions(
	ctx context.Context,
	grp *errgroup.Group,
	logger *slog.Logger,
	sessions storage.Sessions,
) {
	grp.Go(func() error {
		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := sessions.DeleteExpiredSessions(ctx, time.Now().UTC())
				if err != nil {
					logger.ErrorContext(ctx, "session sweep failed", slog.Any("error", err))
					continue
				}
				if n > 0 {
					logger.DebugContext(ctx, "swept expired sessions", slog.Int64("count", n))
				}
			}
		}
	})
}
