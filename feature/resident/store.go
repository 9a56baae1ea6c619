package resident

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no resident has the requested NIK.
	ErrNotFound = errors.New("resident not found")
	// ErrDuplicateNIK is returned when creating a resident whose NIK is taken.
	ErrDuplicateNIK = errors.New("NIK sudah terdaftar dalam sistem")
)

// Store is the resident datastore used by the CRUD service and the sync feature.
type Store interface {
	FindByNIK(ctx context.Context, nik string) (*Resident, error)
	Create(ctx context.Context, r *Resident) error
	Update(ctx context.Context, r *Resident) error
	Delete(ctx context.Context, nik string) error
	List(ctx context.Context, filter Filter) ([]Resident, error)
	ListByCreated(ctx context.Context) ([]Resident, error)
}

// Filter narrows List results.
type Filter struct {
	// Search matches name, NIK or family-card number.
	Search string
	// Gender and MaritalStatus match exactly; empty or "all" disables them.
	Gender        string
	MaritalStatus string
}

// GormStore implements Store on top of gorm.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a gorm-backed resident store.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// FindByNIK returns the resident with the given NIK or ErrNotFound.
func (s *GormStore) FindByNIK(ctx context.Context, nik string) (*Resident, error) {
	var r Resident
	err := s.db.WithContext(ctx).Where("nik = ?", nik).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find resident %s: %w", nik, err)
	}
	return &r, nil
}

// Create inserts a new resident. Zero timestamps are filled by gorm.
func (s *GormStore) Create(ctx context.Context, r *Resident) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create resident %s: %w", r.NIK, err)
	}
	return nil
}

// Update overwrites every mutable column of the resident identified by r.NIK,
// including blank ones, and bumps updated_at. r is refreshed from the database.
func (s *GormStore) Update(ctx context.Context, r *Resident) error {
	if r.Status == "" {
		r.Status = StatusActive
	}

	res := s.db.WithContext(ctx).Model(&Resident{}).Where("nik = ?", r.NIK).Updates(r.assignments(s.now()))
	if res.Error != nil {
		return fmt.Errorf("failed to update resident %s: %w", r.NIK, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	fresh, err := s.FindByNIK(ctx, r.NIK)
	if err != nil {
		return err
	}
	*r = *fresh
	return nil
}

// Delete removes the resident with the given NIK.
func (s *GormStore) Delete(ctx context.Context, nik string) error {
	res := s.db.WithContext(ctx).Where("nik = ?", nik).Delete(&Resident{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete resident %s: %w", nik, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns residents matching the filter, newest first.
func (s *GormStore) List(ctx context.Context, filter Filter) ([]Resident, error) {
	q := s.db.WithContext(ctx).Model(&Resident{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR nik LIKE ? OR no_kk LIKE ?", like, like, like)
	}
	if filter.Gender != "" && filter.Gender != "all" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.MaritalStatus != "" && filter.MaritalStatus != "all" {
		q = q.Where("marital_status = ?", filter.MaritalStatus)
	}

	var out []Resident
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	return out, nil
}

// ListByCreated returns every resident in creation order, the layout used by push and export.
func (s *GormStore) ListByCreated(ctx context.Context) ([]Resident, error) {
	var out []Resident
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	return out, nil
}
