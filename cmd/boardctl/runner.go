package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"project-board/internal/config"
	"project-board/internal/dto"
	"project-board/internal/infra/adapter/persistence/postgres"
	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/infra/db"
	"project-board/internal/repository"
	accountUC "project-board/internal/usecase/account"
)

// Runner holds what every subcommand shares.
type Runner struct {
	Logger *slog.Logger
}

// session is an open database plus the configuration it came from.
type session struct {
	cfg     *config.Config
	conn    *sql.DB
	dialect db.Dialect
}

func (s *session) Close() error { return s.conn.Close() }

func (s *session) txManager() repository.TxManager {
	if s.dialect == db.DialectSQLite {
		return sqlite.NewTxManager(s.conn, nil)
	}
	return postgres.NewTxManager(s.conn, nil)
}

// loadConfig layers the file and environment over the defaults. Only the
// database settings matter here, so the server checks in Validate are skipped.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (r *Runner) open(ctx context.Context, cmd *cli.Command) (*session, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dialect, err := db.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(ctx, db.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Pool:   db.DefaultConnectionConfig(),
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, conn: conn, dialect: dialect}, nil
}

// MigrateUp applies the schema.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	s, err := r.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := db.MigrateUp(ctx, s.conn, s.dialect); err != nil {
		return err
	}
	r.Logger.Info("schema applied", "dialect", string(s.dialect))
	return nil
}

// MigrateDown drops the board tables.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	s, err := r.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := db.MigrateDown(ctx, s.conn); err != nil {
		return err
	}
	r.Logger.Warn("schema dropped", "dialect", string(s.dialect))
	return nil
}

// AddUser registers one account.
func (r *Runner) AddUser(ctx context.Context, cmd *cli.Command) error {
	s, err := r.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	accounts := &accountUC.Service{Tx: s.txManager(), BcryptCost: s.cfg.Auth.BcryptCost}
	d := dto.UserAccountDTO{
		UserID:   strings.TrimSpace(cmd.String("user-id")),
		Email:    strings.TrimSpace(cmd.String("email")),
		Nickname: strings.TrimSpace(cmd.String("nickname")),
	}
	if memo := cmd.String("memo"); memo != "" {
		d.Memo = &memo
	}

	created, err := accounts.Register(ctx, "", d, cmd.String("password"))
	if errors.Is(err, accountUC.ErrUserIDTaken) {
		return fmt.Errorf("user %q already exists", d.UserID)
	}
	if err != nil {
		return err
	}
	r.Logger.Info("user added", "user_id", created.UserID, "id", created.ID)
	return nil
}

// Seed loads the demo board.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	s, err := r.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if cmd.Bool("migrate") {
		if err := db.MigrateUp(ctx, s.conn, s.dialect); err != nil {
			return err
		}
	}
	res, err := seedBoard(ctx, s.txManager(), s.cfg.Auth.BcryptCost, r.Logger)
	if err != nil {
		return err
	}
	r.Logger.Info("seed complete",
		"users", res.Users,
		"articles", res.Articles,
		"comments", res.Comments)
	return nil
}
