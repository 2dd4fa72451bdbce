package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists listings in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Name        string         `gorm:"column:name"`
	Breed       string         `gorm:"column:breed"`
	Age         string         `gorm:"column:age"`
	Description string         `gorm:"column:description"`
	Type        string         `gorm:"column:pet_type;index"`
	Location    string         `gorm:"column:location"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	Available   bool           `gorm:"column:available;index"`
	Size        string         `gorm:"column:size"`
	Gender      string         `gorm:"column:gender"`
	Vaccinated  bool           `gorm:"column:vaccinated"`
	Neutered    bool           `gorm:"column:neutered"`
	Shelter     string         `gorm:"column:shelter"`
	Position    int64          `gorm:"column:position;autoIncrement;uniqueIndex"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		Type:        p.Type,
		Location:    p.Location,
		Images:      append(pq.StringArray{}, p.Images...),
		Available:   p.Available,
		Size:        p.Traits.Size,
		Gender:      p.Traits.Gender,
		Vaccinated:  p.Traits.Vaccinated,
		Neutered:    p.Traits.Neutered,
		Shelter:     p.Shelter,
	}
}

// Save inserts or updates a listing aggregate. The position column keeps
// insertion order stable so List can reproduce it.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*types.ListingProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"breed":       record.Breed,
				"age":         record.Age,
				"description": record.Description,
				"pet_type":    record.Type,
				"location":    record.Location,
				"images":      record.Images,
				"available":   record.Available,
				"size":        record.Size,
				"gender":      record.Gender,
				"vaccinated":  record.Vaccinated,
				"neutered":    record.Neutered,
				"shelter":     record.Shelter,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, pet.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*types.ListingProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection()
}

// Delete removes a listing.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&petRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns the catalog in insertion order.
func (r *Repository) List(ctx context.Context) ([]*types.ListingProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*types.ListingProjection, 0, len(records))
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
		return errors.New("postgres listing repository not configured")
	}
	return nil
}

func (rec petRecord) toProjection() (*types.ListingProjection, error) {
	pet, err := domain.NewPet(rec.ID, rec.Name, rec.Breed, rec.Age, rec.Type, rec.Location)
	if err != nil {
		return nil, err
	}
	pet.SetDescription(rec.Description)
	pet.ReplaceImages(rec.Images)
	pet.SetAvailability(rec.Available)
	pet.SetTraits(domain.Traits{
		Size:       rec.Size,
		Gender:     rec.Gender,
		Vaccinated: rec.Vaccinated,
		Neutered:   rec.Neutered,
	})
	pet.SetShelter(rec.Shelter)
	return types.NewListingProjection(pet, rec.CreatedAt, rec.UpdatedAt), nil
}
