// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the fleet
// aggregates: AirplaneType, Airplane, and Crew.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// CreateAirplaneType inserts a new airplane type row.
func CreateAirplaneType(ctx context.Context, db *gorm.DB, t *domain.AirplaneType) error {
	return db.WithContext(ctx).Create(t).Error
}

// ListAirplaneTypes returns all airplane types ordered by id.
func ListAirplaneTypes(ctx context.Context, db *gorm.DB) ([]domain.AirplaneType, error) {
	var out []domain.AirplaneType
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// GetAirplaneType fetches an airplane type by id, or ErrNotFound.
func GetAirplaneType(ctx context.Context, db *gorm.DB, id uint) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateAirplaneType renames an airplane type. Returns ErrNotFound when missing.
func UpdateAirplaneType(ctx context.Context, db *gorm.DB, t *domain.AirplaneType) error {
	res := db.WithContext(ctx).Model(&domain.AirplaneType{}).
		Where("id = ?", t.ID).
		Update("name", t.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAirplaneType removes an airplane type by id. Returns ErrNotFound when missing.
func DeleteAirplaneType(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.AirplaneType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAirplane inserts a new airplane row.
func CreateAirplane(ctx context.Context, db *gorm.DB, a *domain.Airplane) error {
	return db.WithContext(ctx).Create(a).Error
}

// ListAirplanes returns all airplanes with their type preloaded.
func ListAirplanes(ctx context.Context, db *gorm.DB) ([]domain.Airplane, error) {
	var out []domain.Airplane
	err := db.WithContext(ctx).Preload("AirplaneType").Order("id").Find(&out).Error
	return out, err
}

// GetAirplane fetches an airplane with its type, or ErrNotFound.
func GetAirplane(ctx context.Context, db *gorm.DB, id uint) (*domain.Airplane, error) {
	var a domain.Airplane
	if err := db.WithContext(ctx).Preload("AirplaneType").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAirplane saves mutable airplane fields (not the image; see
// SetAirplaneImage). Returns ErrNotFound when missing.
func UpdateAirplane(ctx context.Context, db *gorm.DB, a *domain.Airplane) error {
	res := db.WithContext(ctx).Model(&domain.Airplane{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"name":             a.Name,
			"rows":             a.Rows,
			"seats_in_row":     a.SeatsInRow,
			"airplane_type_id": a.AirplaneTypeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAirplaneImage records the storage key of the uploaded image.
// Returns ErrNotFound when the airplane does not exist.
func SetAirplaneImage(ctx context.Context, db *gorm.DB, id uint, key string) error {
	res := db.WithContext(ctx).Model(&domain.Airplane{}).
		Where("id = ?", id).
		Update("image_path", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAirplane removes an airplane by id. Returns ErrNotFound when missing.
func DeleteAirplane(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Airplane{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCrew inserts a new crew member row.
func CreateCrew(ctx context.Context, db *gorm.DB, c *domain.Crew) error {
	return db.WithContext(ctx).Create(c).Error
}

// ListCrews returns all crew members ordered by id.
func ListCrews(ctx context.Context, db *gorm.DB) ([]domain.Crew, error) {
	var out []domain.Crew
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// GetCrew fetches a crew member by id, or ErrNotFound.
func GetCrew(ctx context.Context, db *gorm.DB, id uint) (*domain.Crew, error) {
	var c domain.Crew
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCrew saves mutable crew fields. Returns ErrNotFound when missing.
func UpdateCrew(ctx context.Context, db *gorm.DB, c *domain.Crew) error {
	res := db.WithContext(ctx).Model(&domain.Crew{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{"first_name": c.FirstName, "last_name": c.LastName})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCrew removes a crew member by id. Returns ErrNotFound when missing.
func DeleteCrew(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Crew{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
