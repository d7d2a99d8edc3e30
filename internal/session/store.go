package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"bagelbot/internal/models"
)

// Record persists one conversation session's Order between turns. The
// engine itself is stateless; this store is the caller-side persistence
// boundary.
type Record struct {
	ID        string `gorm:"primary_key"`
	OrderJSON string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the gorm table name explicit
func (Record) TableName() string { return "sessions" }

// TurnRecord persists one exchange of a session's transcript
type TurnRecord struct {
	ID        uint   `gorm:"primary_key"`
	SessionID string `gorm:"index"`
	Seq       int
	UserText  string `gorm:"type:text"`
	Reply     string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName keeps the gorm table name explicit
func (TurnRecord) TableName() string { return "turns" }

// Store loads and saves Orders by session id
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the session database at the given path
func Open(path string) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}, &TurnRecord{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a fresh order and returns it
func (s *Store) Create() (models.Order, error) {
	order := models.NewOrder()
	if err := s.Save(order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Load returns the order for a session id
func (s *Store) Load(id string) (models.Order, error) {
	var rec Record
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return models.Order{}, fmt.Errorf("session %s not found: %w", id, err)
	}
	var order models.Order
	if err := json.Unmarshal([]byte(rec.OrderJSON), &order); err != nil {
		return models.Order{}, fmt.Errorf("session %s is corrupt: %w", id, err)
	}
	return order, nil
}

// Save upserts the order under its own id
func (s *Store) Save(order models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	rec := Record{ID: order.ID, OrderJSON: string(raw)}
	if s.db.Model(&Record{}).Where("id = ?", order.ID).
		Update("order_json", rec.OrderJSON).RowsAffected == 0 {
		return s.db.Create(&rec).Error
	}
	return nil
}

// AppendTurn records one exchange at the end of a session's transcript
func (s *Store) AppendTurn(sessionID, userText, reply string) error {
	var count int
	if err := s.db.Model(&TurnRecord{}).
		Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count turns for %s: %w", sessionID, err)
	}
	turn := TurnRecord{SessionID: sessionID, Seq: count + 1, UserText: userText, Reply: reply}
	if err := s.db.Create(&turn).Error; err != nil {
		return fmt.Errorf("failed to record turn for %s: %w", sessionID, err)
	}
	return nil
}

// Transcript returns a session's recorded turns in order
func (s *Store) Transcript(sessionID string) ([]TurnRecord, error) {
	var turns []TurnRecord
	if err := s.db.Where("session_id = ?", sessionID).
		Order("seq asc").Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("failed to load transcript for %s: %w", sessionID, err)
	}
	return turns, nil
}
