// Package store persists materials and demands with gorm, on sqlite or
// postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced material does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for input the store refuses to persist.
	ErrInvalid = errors.New("invalid input")
)

// MaterialRecord represents the materials table.
type MaterialRecord struct {
	Seq          uint            `gorm:"primaryKey;autoIncrement"`
	ID           string          `gorm:"uniqueIndex;size:36;not null"`
	Name         string          `gorm:"size:128;not null"`
	StockLength  float64         `gorm:"not null"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (MaterialRecord) TableName() string {
	return "materials"
}

// DemandRecord represents the demands table. Seq preserves insertion order.
type DemandRecord struct {
	Seq        uint    `gorm:"primaryKey;autoIncrement"`
	ID         string  `gorm:"uniqueIndex;size:36;not null"`
	Project    string  `gorm:"size:128"`
	MaterialID string  `gorm:"index;size:36;not null"`
	Length     float64 `gorm:"not null"`
}

func (DemandRecord) TableName() string {
	return "demands"
}

// Store is the gorm-backed repository for materials and demands.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres when databaseURL is set, or to the sqlite file
// at dataPath otherwise, and migrates the schema.
func Open(databaseURL, dataPath string) (*Store, error) {
	var dialector gorm.Dialector
	cfg := &gorm.Config{}
	if databaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		})
		cfg.PrepareStmt = false
	} else {
		dialector = sqlite.Open(dataPath)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return New(db)
}

// New wraps an open connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&MaterialRecord{}, &DemandRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Materials returns all materials in insertion order.
func (s *Store) Materials(ctx context.Context) ([]model.Material, error) {
	var records []MaterialRecord
	if err := s.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	materials := make([]model.Material, len(records))
	for i, r := range records {
		materials[i] = r.toModel()
	}
	return materials, nil
}

// Material returns one material by ID.
func (s *Store) Material(ctx context.Context, id string) (model.Material, error) {
	var r MaterialRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Material{}, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Material{}, err
	}
	return r.toModel(), nil
}

// CreateMaterial stores a material, assigning an ID when it has none.
func (s *Store) CreateMaterial(ctx context.Context, m model.Material) (model.Material, error) {
	if m.Name == "" || !model.ValidLength(m.StockLength) {
		return model.Material{}, fmt.Errorf("material needs a name and a positive stock length: %w", ErrInvalid)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()[:8]
	}
	r := materialRecord(m)
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return model.Material{}, err
	}
	return m, nil
}

// DeleteMaterial removes a material and every demand that references it.
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&MaterialRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("material %q: %w", id, ErrNotFound)
		}
		return tx.Where("material_id = ?", id).Delete(&DemandRecord{}).Error
	})
}

// Demands returns all demands in insertion order.
func (s *Store) Demands(ctx context.Context) ([]model.Demand, error) {
	var records []DemandRecord
	if err := s.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	demands := make([]model.Demand, len(records))
	for i, r := range records {
		demands[i] = r.toModel()
	}
	return demands, nil
}

// CreateDemands stores count identical demands for an existing material.
func (s *Store) CreateDemands(ctx context.Context, project, materialID string, length float64, count int) ([]model.Demand, error) {
	if count < 1 || !model.ValidLength(length) {
		return nil, fmt.Errorf("count and length must be positive: %w", ErrInvalid)
	}
	if count > model.MaxDemandCount {
		return nil, fmt.Errorf("count %d exceeds the limit of %d: %w", count, model.MaxDemandCount, ErrInvalid)
	}
	if _, err := s.Material(ctx, materialID); err != nil {
		return nil, err
	}

	demands := model.NewDemands(project, materialID, length, count)
	records := make([]DemandRecord, len(demands))
	for i, d := range demands {
		records[i] = demandRecord(d)
	}
	if err := s.db.WithContext(ctx).CreateInBatches(records, 100).Error; err != nil {
		return nil, err
	}
	return demands, nil
}

// ImportDemands stores already built demands in order, for example the
// output of a file import. Every referenced material must exist.
func (s *Store) ImportDemands(ctx context.Context, demands []model.Demand) error {
	if len(demands) == 0 {
		return nil
	}
	known := make(map[string]bool)
	records := make([]DemandRecord, len(demands))
	for i, d := range demands {
		if !model.ValidLength(d.Length) {
			return fmt.Errorf("demand %s: length must be positive: %w", d.ID, ErrInvalid)
		}
		if !known[d.MaterialID] {
			if _, err := s.Material(ctx, d.MaterialID); err != nil {
				return err
			}
			known[d.MaterialID] = true
		}
		records[i] = demandRecord(d)
	}
	return s.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

// DeleteDemands removes the demands with the given IDs. Unknown IDs are
// ignored. It returns the number of rows removed.
func (s *Store) DeleteDemands(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&DemandRecord{})
	return res.RowsAffected, res.Error
}

// DeleteAllDemands empties the demand list.
func (s *Store) DeleteAllDemands(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&DemandRecord{})
	return res.RowsAffected, res.Error
}

// Snapshot returns materials and demands read in one transaction.
func (s *Store) Snapshot(ctx context.Context) ([]model.Material, []model.Demand, error) {
	var (
		materials []model.Material
		demands   []model.Demand
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := &Store{db: tx}
		var err error
		if materials, err = inner.Materials(ctx); err != nil {
			return err
		}
		demands, err = inner.Demands(ctx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return materials, demands, nil
}

func materialRecord(m model.Material) MaterialRecord {
	return MaterialRecord{
		ID:           m.ID,
		Name:         m.Name,
		StockLength:  m.StockLength,
		PricePerUnit: m.PricePerUnit,
	}
}

func (r MaterialRecord) toModel() model.Material {
	return model.Material{
		ID:           r.ID,
		Name:         r.Name,
		StockLength:  r.StockLength,
		PricePerUnit: r.PricePerUnit,
	}
}

func demandRecord(d model.Demand) DemandRecord {
	return DemandRecord{
		ID:         d.ID,
		Project:    d.Project,
		MaterialID: d.MaterialID,
		Length:     d.Length,
	}
}

func (r DemandRecord) toModel() model.Demand {
	return model.Demand{
		ID:         r.ID,
		Project:    r.Project,
		MaterialID: r.MaterialID,
		Length:     r.Length,
	}
}
