package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory persists account documents in PostgreSQL, keeping the remote
// document-store shape: collections keyed by role (plus sellerapply),
// documents keyed by email.
type Directory struct {
	db *gorm.DB
}

// NewDirectory wires a PostgreSQL-backed directory. The caller owns the DB lifecycle.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

type accountRecord struct {
	Collection string    `gorm:"primaryKey;column:collection;size:32"`
	Email      string    `gorm:"primaryKey;column:email;size:255"`
	Name       string    `gorm:"column:name"`
	Password   string    `gorm:"column:password"`
	Role       string    `gorm:"column:role;size:16"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "account_documents" }

// Get fetches the document keyed by (collection, email).
func (d *Directory) Get(ctx context.Context, collection, email string) (*domain.Account, error) {
	if err := d.ensureDB(); err != nil {
		return nil, err
	}
	var record accountRecord
	if err := d.db.WithContext(ctx).First(&record, "collection = ? AND email = ?", collection, email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAccountNotFound
		}
		return nil, err
	}
	return record.toAccount(), nil
}

// Put creates or overwrites the document keyed by the account's email.
func (d *Directory) Put(ctx context.Context, collection string, account *domain.Account) error {
	if err := d.ensureDB(); err != nil {
		return err
	}
	if account == nil {
		return errors.New("cannot store nil account")
	}
	record := accountRecord{
		Collection: collection,
		Email:      account.Email,
		Name:       account.Name,
		Password:   account.Password,
		Role:       string(account.Role),
	}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "collection"}, {Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"password":   record.Password,
				"role":       record.Role,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

// Delete removes the document; missing keys are reported as not found.
func (d *Directory) Delete(ctx context.Context, collection, email string) error {
	if err := d.ensureDB(); err != nil {
		return err
	}
	result := d.db.WithContext(ctx).Where("collection = ? AND email = ?", collection, email).Delete(&accountRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrAccountNotFound
	}
	return nil
}

// List enumerates a collection ordered by email.
func (d *Directory) List(ctx context.Context, collection string) ([]*domain.Account, error) {
	if err := d.ensureDB(); err != nil {
		return nil, err
	}
	var records []accountRecord
	if err := d.db.WithContext(ctx).Where("collection = ?", collection).Order("email ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Account, 0, len(records))
	for i := range records {
		list = append(list, records[i].toAccount())
	}
	return list, nil
}

func (d *Directory) ensureDB() error {
	if d == nil || d.db == nil {
		return errors.New("postgres account directory not configured")
	}
	return nil
}

func (rec accountRecord) toAccount() *domain.Account {
	return &domain.Account{
		Name:     rec.Name,
		Email:    rec.Email,
		Password: rec.Password,
		Role:     domain.Role(rec.Role),
	}
}
