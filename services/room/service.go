package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"keyless-stay/apperror"
	roomModel "keyless-stay/models/room"
	propertyService "keyless-stay/services/property"
	roomTypes "keyless-stay/types/room"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service handles rooms and the room status tracker
type Service struct {
	DB         *gorm.DB
	Properties *propertyService.Service
}

// NewRoomService creates a new room service
func NewRoomService(db *gorm.DB) *Service {
	return &Service{
		DB:         db,
		Properties: propertyService.NewPropertyService(db),
	}
}

// WithTx returns a copy bound to tx
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{DB: tx, Properties: s.Properties.WithTx(tx)}
}

// Stats counts active rooms of a property per status
type Stats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Cleaning    int64 `json:"cleaning"`
	Maintenance int64 `json:"maintenance"`
}

func (st *Stats) add(status roomModel.RoomStatus, count int64) {
	st.Total += count
	switch status {
	case roomModel.RoomStatusAvailable:
		st.Available += count
	case roomModel.RoomStatusOccupied:
		st.Occupied += count
	case roomModel.RoomStatusCleaning:
		st.Cleaning += count
	case roomModel.RoomStatusMaintenance:
		st.Maintenance += count
	}
}

// FindByID returns the room whether or not it is still active
func (s *Service) FindByID(ctx context.Context, id string) (*roomModel.Room, error) {
	var r roomModel.Room
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Room")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	return &r, nil
}

// ListByProperty returns active rooms ordered by room number
func (s *Service) ListByProperty(ctx context.Context, propertyID string) ([]roomModel.Room, error) {
	var rooms []roomModel.Room
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// ListAvailable returns active rooms whose status is available
func (s *Service) ListAvailable(ctx context.Context, propertyID string) ([]roomModel.Room, error) {
	var rooms []roomModel.Room
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND is_active = ? AND status = ?", propertyID, true, roomModel.RoomStatusAvailable).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}

func (s *Service) numberTaken(ctx context.Context, propertyID, roomNumber, excludeID string) (bool, error) {
	query := s.DB.WithContext(ctx).Model(&roomModel.Room{}).
		Where("property_id = ? AND room_number = ? AND is_active = ?", propertyID, roomNumber, true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room number: %w", err)
	}
	return count > 0, nil
}

// Create adds a room and increments the property room counter in one transaction
func (s *Service) Create(ctx context.Context, req roomTypes.RoomCreateRequest) (*roomModel.Room, error) {
	var created roomModel.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		if _, err := txs.Properties.FindByID(ctx, req.PropertyID); err != nil {
			return err
		}

		number := strings.TrimSpace(req.RoomNumber)
		taken, err := txs.numberTaken(ctx, req.PropertyID, number, "")
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict("Room number already exists")
		}

		capacity := req.Capacity
		if capacity == 0 {
			capacity = 2
		}
		amenities := req.Amenities
		if amenities == nil {
			amenities = []string{}
		}

		created = roomModel.Room{
			PropertyID:  req.PropertyID,
			RoomNumber:  number,
			Name:        req.Name,
			Type:        req.Type,
			Floor:       req.Floor,
			Price:       req.Price,
			Capacity:    capacity,
			Amenities:   datatypes.NewJSONSlice(amenities),
			Status:      roomModel.RoomStatusAvailable,
			Description: req.Description,
			IsActive:    true,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		return txs.Properties.AdjustRoomCount(ctx, req.PropertyID, 1)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes room details. Existing bookings keep their price snapshot.
func (s *Service) Update(ctx context.Context, id string, req roomTypes.RoomUpdateRequest) (*roomModel.Room, error) {
	var updated *roomModel.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		r, err := txs.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsActive {
			return apperror.NotFound("Room")
		}

		if req.RoomNumber != nil {
			number := strings.TrimSpace(*req.RoomNumber)
			if number != r.RoomNumber {
				taken, err := txs.numberTaken(ctx, r.PropertyID, number, r.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperror.Conflict("Room number already exists")
				}
				r.RoomNumber = number
			}
		}
		if req.Name != nil {
			r.Name = *req.Name
		}
		if req.Type != nil {
			r.Type = *req.Type
		}
		if req.Floor != nil {
			r.Floor = *req.Floor
		}
		if req.Price != nil {
			r.Price = *req.Price
		}
		if req.Capacity != nil {
			r.Capacity = *req.Capacity
		}
		if req.Amenities != nil {
			r.Amenities = datatypes.NewJSONSlice(req.Amenities)
		}
		if req.Description != nil {
			r.Description = *req.Description
		}

		if err := tx.Save(r).Error; err != nil {
			return fmt.Errorf("failed to update room: %w", err)
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the room and decrements the property counter
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		r, err := txs.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsActive {
			return nil
		}
		if err := tx.Model(r).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}
		return txs.Properties.AdjustRoomCount(ctx, r.PropertyID, -1)
	})
}

// SetStatus overwrites the room status. Concurrent writers are not reconciled; the last write wins.
func (s *Service) SetStatus(ctx context.Context, id string, status roomModel.RoomStatus) error {
	if !status.IsValid() {
		return apperror.Validation("invalid room status: " + status.String())
	}
	result := s.DB.WithContext(ctx).Model(&roomModel.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update room status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Room")
	}
	return nil
}

// Stats counts active rooms of the given properties per status
func (s *Service) Stats(ctx context.Context, propertyIDs ...string) (*Stats, error) {
	stats := &Stats{}
	if len(propertyIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		Status roomModel.RoomStatus
		Count  int64
	}
	err := s.DB.WithContext(ctx).Model(&roomModel.Room{}).
		Select("status, COUNT(*) AS count").
		Where("property_id IN ? AND is_active = ?", propertyIDs, true).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	for _, row := range rows {
		stats.add(row.Status, row.Count)
	}
	return stats, nil
}
