// Package services – FleetService
//
// This file implements the FleetService, which manages airplane types,
// airplanes (including their image attachment), and crew members. It
// validates seat grids and foreign-key references, and coordinates the
// image store with the database record so the stored key always points at
// the latest upload (last-write-wins, no versioning).
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/repo"
	"github.com/dkosteva/go-airport-backend/internal/storage"
)

// FleetService provides airplane type, airplane, and crew operations.
type FleetService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Images persists airplane image blobs. May be nil in deployments
	// without upload support; UploadImage then fails.
	Images *storage.ImageStore
}

// CreateAirplaneType validates and inserts an airplane type.
func (s *FleetService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	t := &domain.AirplaneType{Name: name}
	if err := repo.CreateAirplaneType(ctx, s.DB, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, NewValidationError("name", "airplane type with this name already exists")
		}
		return nil, err
	}
	return t, nil
}

// ListAirplaneTypes returns all airplane types.
func (s *FleetService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return repo.ListAirplaneTypes(ctx, s.DB)
}

// GetAirplaneType fetches one airplane type or ErrAirplaneTypeNotFound.
func (s *FleetService) GetAirplaneType(ctx context.Context, id uint) (*domain.AirplaneType, error) {
	t, err := repo.GetAirplaneType(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAirplaneTypeNotFound
	}
	return t, err
}

// UpdateAirplaneType renames an airplane type.
func (s *FleetService) UpdateAirplaneType(ctx context.Context, id uint, name string) (*domain.AirplaneType, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	t := &domain.AirplaneType{ID: id, Name: name}
	if err := repo.UpdateAirplaneType(ctx, s.DB, t); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrAirplaneTypeNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
			return nil, NewValidationError("name", "airplane type with this name already exists")
		}
		return nil, err
	}
	return t, nil
}

// DeleteAirplaneType removes an airplane type.
func (s *FleetService) DeleteAirplaneType(ctx context.Context, id uint) error {
	err := repo.DeleteAirplaneType(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAirplaneTypeNotFound
	}
	return err
}

// validateAirplane checks the seat grid and the airplane type reference.
func (s *FleetService) validateAirplane(ctx context.Context, name string, rows, seats int, typeID uint) error {
	verr := &ValidationError{}
	if normalizeName(name) == "" {
		verr.Add("name", "must not be empty")
	}
	if rows < 1 {
		verr.Add("rows", "must be >= 1")
	}
	if seats < 1 {
		verr.Add("seats_in_row", "must be >= 1")
	}
	if _, err := repo.GetAirplaneType(ctx, s.DB, typeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			verr.Add("airplane_type_id", "unknown airplane type")
		} else {
			return err
		}
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

// CreateAirplane validates and inserts an airplane.
func (s *FleetService) CreateAirplane(ctx context.Context, name string, rows, seats int, typeID uint) (*domain.Airplane, error) {
	if err := s.validateAirplane(ctx, name, rows, seats, typeID); err != nil {
		return nil, err
	}
	a := &domain.Airplane{
		Name:           normalizeName(name),
		Rows:           rows,
		SeatsInRow:     seats,
		AirplaneTypeID: typeID,
	}
	if err := repo.CreateAirplane(ctx, s.DB, a); err != nil {
		return nil, err
	}
	return repo.GetAirplane(ctx, s.DB, a.ID)
}

// ListAirplanes returns all airplanes with their types.
func (s *FleetService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return repo.ListAirplanes(ctx, s.DB)
}

// GetAirplane fetches one airplane or ErrAirplaneNotFound.
func (s *FleetService) GetAirplane(ctx context.Context, id uint) (*domain.Airplane, error) {
	a, err := repo.GetAirplane(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAirplaneNotFound
	}
	return a, err
}

// UpdateAirplane revalidates and saves an airplane.
func (s *FleetService) UpdateAirplane(ctx context.Context, id uint, name string, rows, seats int, typeID uint) (*domain.Airplane, error) {
	if err := s.validateAirplane(ctx, name, rows, seats, typeID); err != nil {
		return nil, err
	}
	a := &domain.Airplane{
		ID:             id,
		Name:           normalizeName(name),
		Rows:           rows,
		SeatsInRow:     seats,
		AirplaneTypeID: typeID,
	}
	if err := repo.UpdateAirplane(ctx, s.DB, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	return repo.GetAirplane(ctx, s.DB, id)
}

// DeleteAirplane removes an airplane and best-effort drops its image blob.
func (s *FleetService) DeleteAirplane(ctx context.Context, id uint) error {
	a, err := repo.GetAirplane(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAirplaneNotFound
		}
		return err
	}
	if err := repo.DeleteAirplane(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAirplaneNotFound
		}
		return err
	}
	if s.Images != nil && a.ImagePath != "" {
		_ = s.Images.Remove(a.ImagePath)
	}
	return nil
}

// UploadImage validates the payload as an image, stores it under the
// airplane's key, and records the key on the row. Re-uploading replaces the
// previous image.
func (s *FleetService) UploadImage(ctx context.Context, id uint, data []byte) (*domain.Airplane, error) {
	if s.Images == nil {
		return nil, errors.New("image storage not configured")
	}
	if _, err := repo.GetAirplane(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	key, err := s.Images.Put(id, data)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return nil, NewValidationError("image", "payload is not a valid image")
		}
		return nil, err
	}
	if err := repo.SetAirplaneImage(ctx, s.DB, id, key); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	return repo.GetAirplane(ctx, s.DB, id)
}

// CreateCrew validates and inserts a crew member.
func (s *FleetService) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	firstName, lastName = normalizeName(firstName), normalizeName(lastName)
	verr := &ValidationError{}
	if firstName == "" {
		verr.Add("first_name", "must not be empty")
	}
	if lastName == "" {
		verr.Add("last_name", "must not be empty")
	}
	if !verr.Empty() {
		return nil, verr
	}
	c := &domain.Crew{FirstName: firstName, LastName: lastName}
	if err := repo.CreateCrew(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCrews returns all crew members.
func (s *FleetService) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	return repo.ListCrews(ctx, s.DB)
}

// GetCrew fetches one crew member or ErrCrewNotFound.
func (s *FleetService) GetCrew(ctx context.Context, id uint) (*domain.Crew, error) {
	c, err := repo.GetCrew(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCrewNotFound
	}
	return c, err
}

// UpdateCrew saves a crew member.
func (s *FleetService) UpdateCrew(ctx context.Context, id uint, firstName, lastName string) (*domain.Crew, error) {
	firstName, lastName = normalizeName(firstName), normalizeName(lastName)
	verr := &ValidationError{}
	if firstName == "" {
		verr.Add("first_name", "must not be empty")
	}
	if lastName == "" {
		verr.Add("last_name", "must not be empty")
	}
	if !verr.Empty() {
		return nil, verr
	}
	c := &domain.Crew{ID: id, FirstName: firstName, LastName: lastName}
	if err := repo.UpdateCrew(ctx, s.DB, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return c, nil
}

// DeleteCrew removes a crew member.
func (s *FleetService) DeleteCrew(ctx context.Context, id uint) error {
	err := repo.DeleteCrew(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCrewNotFound
	}
	return err
}
