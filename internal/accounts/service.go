package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/minidocs/minidocs/internal/db"
	"github.com/minidocs/minidocs/internal/db/sqlc"
)

const pgUniqueViolation = "23505"

// Service manages user accounts.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
	cost    int
}

func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "accounts")),
		cost:    bcrypt.DefaultCost,
	}
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Account, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return Account{}, fmt.Errorf("username and password are required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Username:     username,
		PasswordHash: string(hashed),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Account{}, ErrUsernameTaken
		}
		return Account{}, fmt.Errorf("create user: %w", err)
	}
	return toAccount(row), nil
}

// Authenticate checks the password for username and returns the account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	row, err := s.queries.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, fmt.Errorf("get user: %w", err)
	}
	if !row.IsActive {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return toAccount(row), nil
}

func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return Account{}, err
	}
	row, err := s.queries.GetUserByID(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, fmt.Errorf("get user: %w", err)
	}
	return toAccount(row), nil
}

// GetByUsername looks up an account without checking credentials.
func (s *Service) GetByUsername(ctx context.Context, username string) (Account, error) {
	row, err := s.queries.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, fmt.Errorf("get user: %w", err)
	}
	return toAccount(row), nil
}

// EnsureUser creates the user unless it already exists.
func (s *Service) EnsureUser(ctx context.Context, username, password string) (Account, error) {
	existing, err := s.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return Account{}, err
	}
	created, err := s.Create(ctx, CreateRequest{Username: username, Password: password})
	if err != nil {
		return Account{}, err
	}
	s.logger.Info("bootstrap user created", slog.String("username", created.Username))
	return created, nil
}

func toAccount(row sqlc.User) Account {
	return Account{
		ID:        db.UUIDString(row.ID),
		Username:  row.Username,
		IsActive:  row.IsActive,
		CreatedAt: db.Time(row.CreatedAt),
	}
}
