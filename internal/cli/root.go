package cli

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "jobctl",
	Short: "Operator commands for the job board database",
	Long: `jobctl runs maintenance tasks against the job board database
using the same environment configuration as the API.

Example:
  jobctl migrate
  jobctl reap
  jobctl recount`,
	SilenceUsage: true,
}

// Execute runs the command selected by os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "maximum time a command may run")
}

// withPool loads config, opens a pool and hands it to fn under the command timeout.
func withPool(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) error) error {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := database.NewPostgresConnection(ctx, cfg.DBUrl, 2)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(ctx, cfg, db)
}
