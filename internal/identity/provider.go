package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/storepilot/storepilot/internal/shared"
)

// ErrDuplicateEmail indicates a sign-up with an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// SignUpRequest carries the attributes for creating a new identity.
type SignUpRequest struct {
	Email    string
	Password string
	Name     string
	// Role is the default role claim stored on the base profile row.
	Role Role
}

// Provider is the boundary to the identity backend. The rest of the system
// treats identity creation and credential checks as opaque.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, req SignUpRequest) (*Identity, error)
	Get(ctx context.Context, identityID string) (*Identity, error)
}

const uniqueViolation = "23505"

// PGProvider implements Provider against the service_users table with
// bcrypt password hashes.
type PGProvider struct {
	pool *pgxpool.Pool
}

// NewProvider constructs a PostgreSQL-backed identity provider.
func NewProvider(pool *pgxpool.Pool) *PGProvider {
	return &PGProvider{pool: pool}
}

// Authenticate validates email/password credentials.
func (p *PGProvider) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	var (
		ident Identity
		hash  string
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM service_users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&ident.ID, &ident.Email, &ident.Name, &hash, &ident.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return &ident, nil
}

// SignUp creates a new identity with the supplied role claim.
func (p *PGProvider) SignUp(ctx context.Context, req SignUpRequest) (*Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ident := &Identity{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO service_users (id, email, name, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ident.ID, ident.Email, ident.Name, string(hash), string(req.Role), ident.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return ident, nil
}

// Get fetches an identity by id.
func (p *PGProvider) Get(ctx context.Context, identityID string) (*Identity, error) {
	var ident Identity
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, name, created_at FROM service_users WHERE id = $1`,
		identityID,
	).Scan(&ident.ID, &ident.Email, &ident.Name, &ident.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ident, nil
}

var _ Provider = (*PGProvider)(nil)
