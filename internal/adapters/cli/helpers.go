package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/planner-go/internal/infrastructure/database"
	"github.com/andrescamacho/planner-go/internal/infrastructure/logging"
)

// session bundles what every command needs: validated config, a logger and cleanup hooks
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	closers  []func() error
	database *gorm.DB
}

// newSession loads configuration from --config, env and defaults and builds the logger
func newSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return newSessionFromConfig(cfg)
}

func newSessionFromConfig(cfg *config.Config) (*session, error) {
	if verbose {
		cfg.Logging.Level = "debug"
	}
	logger, closer, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:     cfg,
		logger:  logger,
		closers: []func() error{closer.Close},
	}, nil
}

// context attaches the plan logger used by application handlers
func (s *session) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return common.WithLogger(ctx, logging.NewPlanLogger(s.logger))
}

// db opens (and migrates) the configured database once per session
func (s *session) db() (*gorm.DB, error) {
	if s.database != nil {
		return s.database, nil
	}
	db, err := database.Open(&s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", s.cfg.Database.Type, err)
	}
	s.database = db
	s.closers = append(s.closers, func() error { return database.Close(db) })
	return db, nil
}

// output returns the report destination: the configured file or stdout
func (s *session) output(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	s.closers = append(s.closers, f.Close)
	return f, nil
}

// Close releases resources in reverse order of acquisition
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("cleanup failed", "error", err)
		}
	}
	s.closers = nil
}

// maskPassword hides the password in a postgres URL for display
func maskPassword(url string) string {
	return passwordPattern.ReplaceAllString(url, "${1}****@")
}
