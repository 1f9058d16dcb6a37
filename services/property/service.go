package property

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"keyless-stay/apperror"
	propertyModel "keyless-stay/models/property"
	propertyTypes "keyless-stay/types/property"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9ก-๙\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	fallbackSlug = "property"
)

// Service handles property persistence and ownership checks
type Service struct {
	DB *gorm.DB
}

// NewPropertyService creates a new property service
func NewPropertyService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// WithTx returns a copy bound to tx
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{DB: tx}
}

// Slugify lower-cases name and keeps latin letters, digits, Thai characters and hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "- ")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// GenerateSlug returns a slug for name that no other active property uses.
// Collisions get -1, -2, ... appended. excludeID lets a property keep its own slug.
func (s *Service) GenerateSlug(ctx context.Context, name, excludeID string) (string, error) {
	base := Slugify(name)
	slug := base
	for counter := 1; ; counter++ {
		taken, err := s.slugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *Service) slugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	query := s.DB.WithContext(ctx).Model(&propertyModel.Property{}).
		Where("slug = ? AND is_active = ?", slug, true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// Create stores a new property owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID string, req propertyTypes.PropertyCreateRequest) (*propertyModel.Property, error) {
	var created propertyModel.Property
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := s.WithTx(tx).GenerateSlug(ctx, req.Name, "")
		if err != nil {
			return err
		}

		created = propertyModel.Property{
			OwnerID:      ownerID,
			Name:         strings.TrimSpace(req.Name),
			Slug:         slug,
			Description:  req.Description,
			Address:      req.Address,
			Phone:        req.Phone,
			Email:        req.Email,
			Amenities:    datatypes.NewJSONSlice(nonNil(req.Amenities)),
			CheckInTime:  defaultString(req.CheckInTime, "14:00"),
			CheckOutTime: defaultString(req.CheckOutTime, "12:00"),
			TotalRooms:   0,
			IsActive:     true,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes an owned property. A new name regenerates the slug.
func (s *Service) Update(ctx context.Context, id, ownerID string, req propertyTypes.PropertyUpdateRequest) (*propertyModel.Property, error) {
	var updated *propertyModel.Property
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		p, err := txs.AuthorizeOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if req.Name != nil && strings.TrimSpace(*req.Name) != p.Name {
			slug, err := txs.GenerateSlug(ctx, *req.Name, p.ID)
			if err != nil {
				return err
			}
			p.Name = strings.TrimSpace(*req.Name)
			p.Slug = slug
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Amenities != nil {
			p.Amenities = datatypes.NewJSONSlice(req.Amenities)
		}
		if req.CheckInTime != nil {
			p.CheckInTime = *req.CheckInTime
		}
		if req.CheckOutTime != nil {
			p.CheckOutTime = *req.CheckOutTime
		}

		if err := tx.Save(p).Error; err != nil {
			return fmt.Errorf("failed to update property: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes an owned property so booking history keeps its reference
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.AuthorizeOwner(ctx, id, ownerID); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Model(&propertyModel.Property{}).
		Where("id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

// FindByID returns an active property
func (s *Service) FindByID(ctx context.Context, id string) (*propertyModel.Property, error) {
	var p propertyModel.Property
	err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Property")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &p, nil
}

// ListByOwner returns active properties of ownerID, newest first
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]propertyModel.Property, error) {
	var properties []propertyModel.Property
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// IsOwner reports whether callerID owns the active property
func (s *Service) IsOwner(ctx context.Context, propertyID, callerID string) (bool, error) {
	p, err := s.FindByID(ctx, propertyID)
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.OwnerID == callerID, nil
}

// AuthorizeOwner loads the property and fails with Forbidden unless callerID owns it
func (s *Service) AuthorizeOwner(ctx context.Context, propertyID, callerID string) (*propertyModel.Property, error) {
	p, err := s.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if callerID == "" || p.OwnerID != callerID {
		return nil, apperror.Forbidden("You do not have access to this property")
	}
	return p, nil
}

// AdjustRoomCount adds delta to total_rooms without going below zero
func (s *Service) AdjustRoomCount(ctx context.Context, propertyID string, delta int) error {
	err := s.DB.WithContext(ctx).Model(&propertyModel.Property{}).
		Where("id = ?", propertyID).
		Update("total_rooms", gorm.Expr("CASE WHEN total_rooms + ? < 0 THEN 0 ELSE total_rooms + ? END", delta, delta)).Error
	if err != nil {
		return fmt.Errorf("failed to adjust room count: %w", err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
