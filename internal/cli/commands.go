package cli

import (
	"context"
	"fmt"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd, func(ctx context.Context, _ *config.Config, db *pgxpool.Pool) error {
			applied, err := database.Migrate(ctx, db)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
			}
			return nil
		})
	},
}

var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Deactivate jobs whose expiry has passed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd, func(ctx context.Context, _ *config.Config, db *pgxpool.Pool) error {
			n, err := usecase.NewReaperUsecase(postgres.NewJobRepository(db)).ReapExpired(ctx)
			if err != nil {
				return fmt.Errorf("expiry sweep failed: %w", apperror.Cause(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d expired jobs\n", n)
			return nil
		})
	},
}

var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute application counters from the ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd, func(ctx context.Context, _ *config.Config, db *pgxpool.Pool) error {
			n, err := usecase.NewReaperUsecase(postgres.NewJobRepository(db)).RecountApplications(ctx)
			if err != nil {
				return fmt.Errorf("recount failed: %w", apperror.Cause(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corrected %d job counters\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, reapCmd, recountCmd)
}
