package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption applications in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type applicationRecord struct {
	ID                string    `gorm:"primaryKey;column:id;size:64"`
	PetID             string    `gorm:"column:pet_id;size:64;index"`
	PetName           string    `gorm:"column:pet_name"`
	ApplicantName     string    `gorm:"column:applicant_name"`
	ApplicantEmail    string    `gorm:"column:applicant_email;index"`
	ApplicantPhone    string    `gorm:"column:applicant_phone"`
	Address           string    `gorm:"column:address"`
	Experience        string    `gorm:"column:experience"`
	LivingSituation   string    `gorm:"column:living_situation"`
	HasYard           bool      `gorm:"column:has_yard"`
	OtherPets         string    `gorm:"column:other_pets"`
	ReasonForAdoption string    `gorm:"column:reason_for_adoption"`
	Status            string    `gorm:"column:status;index"`
	SubmittedAt       time.Time `gorm:"column:submitted_at"`
	Position          int64     `gorm:"column:position;autoIncrement;uniqueIndex"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (applicationRecord) TableName() string { return "adoption_applications" }

func newApplicationRecord(a *domain.Application) applicationRecord {
	return applicationRecord{
		ID:                a.ID,
		PetID:             a.PetID,
		PetName:           a.PetName,
		ApplicantName:     a.ApplicantName,
		ApplicantEmail:    a.ApplicantEmail,
		ApplicantPhone:    a.ApplicantPhone,
		Address:           a.Address,
		Experience:        a.Experience,
		LivingSituation:   string(a.LivingSituation),
		HasYard:           a.HasYard,
		OtherPets:         a.OtherPets,
		ReasonForAdoption: a.ReasonForAdoption,
		Status:            string(a.Status),
		SubmittedAt:       a.CreatedAt,
	}
}

// Save inserts or updates an application. The position column keeps insertion
// order stable so List can reproduce it. Only the decision status moves after
// submission, but the upsert rewrites the form fields for symmetry.
func (r *Repository) Save(ctx context.Context, application *domain.Application) (*types.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if application == nil {
		return nil, errors.New("cannot save nil application")
	}
	record := newApplicationRecord(application)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"pet_name":            record.PetName,
				"applicant_name":      record.ApplicantName,
				"applicant_email":     record.ApplicantEmail,
				"applicant_phone":     record.ApplicantPhone,
				"address":             record.Address,
				"experience":          record.Experience,
				"living_situation":    record.LivingSituation,
				"has_yard":            record.HasYard,
				"other_pets":          record.OtherPets,
				"reason_for_adoption": record.ReasonForAdoption,
				"status":              record.Status,
				"updated_at":          gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, application.ID)
}

// GetByID fetches an application by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*types.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record applicationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection()
}

// Delete removes an application.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&applicationRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns applications in insertion order.
func (r *Repository) List(ctx context.Context) ([]*types.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []applicationRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*types.ApplicationProjection, 0, len(records))
	for i := range records {
		projection, err := records[i].toProjection()
		if err != nil {
			return nil, err
		}
		list = append(list, projection)
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres application repository not configured")
	}
	return nil
}

func (rec applicationRecord) toProjection() (*types.ApplicationProjection, error) {
	app, err := domain.NewApplication(rec.ID, rec.PetID, rec.PetName, rec.ApplicantName, rec.ApplicantEmail, rec.ApplicantPhone, rec.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if err := app.SetLivingSituation(domain.LivingSituation(rec.LivingSituation)); err != nil {
		app.LivingSituation = domain.LivingOther
	}
	app.SetNarrative(rec.Address, rec.Experience, rec.OtherPets, rec.ReasonForAdoption, rec.HasYard)
	switch domain.Status(rec.Status) {
	case domain.StatusApproved:
		app.Status = domain.StatusApproved
	case domain.StatusRejected:
		app.Status = domain.StatusRejected
	}
	return types.NewApplicationProjection(app, rec.CreatedAt, rec.UpdatedAt), nil
}
