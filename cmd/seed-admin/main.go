// Command seed-admin creates the first administrator account, or promotes an
// existing account with the same email.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/infrastructure/datasources/postgres"
	"gem-auction.backend/pkg/crypto"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const minPasswordLength = 8

type seedAdmin struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	At           time.Time
}

type adminStore interface {
	// Promote returns false when no account has the email
	Promote(ctx context.Context, admin seedAdmin, resetPassword bool) (bool, error)
	Insert(ctx context.Context, admin seedAdmin) error
}

type sqlAdminStore struct {
	db *sql.DB
}

func (s sqlAdminStore) Promote(ctx context.Context, admin seedAdmin, resetPassword bool) (bool, error) {
	query := `UPDATE users SET role = $1, status = $2, updated_at = $3 WHERE email = $4`
	args := []interface{}{string(entities.UserRoleAdmin), string(entities.UserStatusActive), admin.At, admin.Email}
	if resetPassword {
		query = `UPDATE users SET role = $1, status = $2, updated_at = $3, password = $4 WHERE email = $5`
		args = []interface{}{string(entities.UserRoleAdmin), string(entities.UserStatusActive), admin.At, admin.PasswordHash, admin.Email}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s sqlAdminStore) Insert(ctx context.Context, admin seedAdmin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		admin.ID.String(), admin.Name, admin.Email, admin.PasswordHash,
		string(entities.UserRoleAdmin), string(entities.UserStatusActive), admin.At,
	)
	return err
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminStore, io.Closer, error)
	hash    func(password string) (string, error)
	now     func() time.Time
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminStore, io.Closer, error) {
			db, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return sqlAdminStore{db: db}, db, nil
		},
		hash: crypto.HashPassword,
		now:  time.Now,
		out:  os.Stdout,
	}
}

func parseAdminEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("--email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email %q: %w", raw, err)
	}
	return email, nil
}

func runSeedAdmin(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.now == nil {
		deps.now = def.now
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", os.Getenv("ADMIN_EMAIL"), "admin email (required)")
	passwordFlag := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (required)")
	nameFlag := fs.String("name", "Administrator", "display name for a new account")
	resetFlag := fs.Bool("reset-password", false, "overwrite the password of an existing account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := parseAdminEmail(*emailFlag)
	if err != nil {
		return err
	}
	if len(*passwordFlag) < minPasswordLength {
		return fmt.Errorf("--password must be at least %d characters", minPasswordLength)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	hash, err := deps.hash(*passwordFlag)
	if err != nil {
		return err
	}

	store, closer, err := deps.prepare(deps.loadCfg())
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	admin := seedAdmin{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(*nameFlag),
		Email:        email,
		PasswordHash: hash,
		At:           deps.now().UTC(),
	}

	ctx := context.Background()
	promoted, err := store.Promote(ctx, admin, *resetFlag)
	if err != nil {
		return fmt.Errorf("failed to promote %s: %w", email, err)
	}
	if promoted {
		_, _ = fmt.Fprintf(deps.out, "Promoted existing account to ADMIN\nemail=%s\n", email)
		return nil
	}

	if err := store.Insert(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin %s: %w", email, err)
	}
	_, _ = fmt.Fprintf(deps.out, "Created ADMIN account\nuser_id=%s\nemail=%s\n", admin.ID, email)
	return nil
}

func main() {
	if err := runSeedAdmin(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
