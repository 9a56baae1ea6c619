package resident

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ChangeNotifier is told about every successful resident mutation.
// Implementations must not block.
type ChangeNotifier interface {
	ResidentSaved(r Resident)
	ResidentDeleted(nik string)
}

// Service implements resident CRUD on top of a Store.
type Service struct {
	store    Store
	notifier ChangeNotifier
	logger   *zap.Logger
}

// NewService creates a new resident service. notifier may be nil.
func NewService(store Store, notifier ChangeNotifier, logger *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger}
}

// List returns residents matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Resident, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.store.List(ctx, filter)
}

// Get returns the resident with the given NIK.
func (s *Service) Get(ctx context.Context, nik string) (*Resident, error) {
	return s.store.FindByNIK(ctx, nik)
}

// Create registers a new resident. The NIK must not already exist.
func (s *Service) Create(ctx context.Context, r *Resident) error {
	_, err := s.store.FindByNIK(ctx, r.NIK)
	switch {
	case err == nil:
		return ErrDuplicateNIK
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if err := s.store.Create(ctx, r); err != nil {
		return err
	}

	s.logger.Info("Resident created", zap.String("nik", r.NIK))
	if s.notifier != nil {
		s.notifier.ResidentSaved(*r)
	}
	return nil
}

// Update overwrites the resident identified by r.NIK.
func (s *Service) Update(ctx context.Context, r *Resident) error {
	if err := s.store.Update(ctx, r); err != nil {
		return err
	}

	s.logger.Info("Resident updated", zap.String("nik", r.NIK))
	if s.notifier != nil {
		s.notifier.ResidentSaved(*r)
	}
	return nil
}

// Delete removes the resident with the given NIK.
func (s *Service) Delete(ctx context.Context, nik string) error {
	if err := s.store.Delete(ctx, nik); err != nil {
		return err
	}

	s.logger.Info("Resident deleted", zap.String("nik", nik))
	if s.notifier != nil {
		s.notifier.ResidentDeleted(nik)
	}
	return nil
}
