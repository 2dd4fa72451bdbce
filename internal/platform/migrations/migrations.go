package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&petRecord{},
		&idempotencyRecord{},
		&applicationRecord{},
		&accountRecord{},
		&tokenRecord{},
	)
}

// Listing schema mirrors the listings Postgres adapter.
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

// Idempotency ledger backing listing creation replays.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ListingID   string    `gorm:"column:listing_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "listing_idempotency_keys" }

// Application schema mirrors the adoptions Postgres adapter.
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

// Account schema mirrors the accounts directory adapter.
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

// Session token schema mirrors the accounts token store.
type tokenRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Email     string     `gorm:"column:email;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (tokenRecord) TableName() string { return "user_sessions" }
