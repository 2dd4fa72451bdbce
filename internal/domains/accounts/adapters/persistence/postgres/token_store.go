package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountports "github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

// TokenStore persists login tokens in PostgreSQL.
type TokenStore struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

// DefaultTokenTTL provides the fallback TTL when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// NewTokenStore wires a PostgreSQL-backed token store. Caller owns DB lifecycle.
func NewTokenStore(db *gorm.DB, tokenTTL time.Duration) *TokenStore {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &TokenStore{db: db, tokenTTL: tokenTTL}
}

type tokenRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Email     string     `gorm:"column:email;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (tokenRecord) TableName() string { return "user_sessions" }

// Save upserts a login token keyed by email.
func (s *TokenStore) Save(ctx context.Context, email, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	token = strings.TrimSpace(token)
	if email == "" || token == "" {
		return errors.New("email and token are required")
	}
	expiry := time.Now().Add(s.tokenTTL)
	rec := tokenRecord{Email: email, Token: token, ExpiresAt: &expiry}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete removes all tokens issued to an email.
func (s *TokenStore) Delete(ctx context.Context, email string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&tokenRecord{}, "email = ?", email).Error
}

// PurgeExpired removes all expired tokens. Use for housekeeping or cron.
func (s *TokenStore) PurgeExpired(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	now := time.Now()
	return s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&tokenRecord{}).Error
}

func (s *TokenStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres token store not configured")
	}
	return nil
}

var _ accountports.TokenStore = (*TokenStore)(nil)
