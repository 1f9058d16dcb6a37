package room

import (
	"keyless-stay/apperror"
	"keyless-stay/types"

	"github.com/shopspring/decimal"
)

type RoomCreateRequest struct {
	PropertyID  string          `json:"property_id" validate:"required"`
	RoomNumber  string          `json:"room_number" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"omitempty,max=255"`
	Type        string          `json:"type" validate:"omitempty,max=50"`
	Floor       int             `json:"floor" validate:"omitempty,min=0,max=200"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity" validate:"omitempty,min=1,max=50"`
	Amenities   []string        `json:"amenities" validate:"omitempty,dive,min=1,max=100"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
}

type RoomUpdateRequest struct {
	RoomNumber  *string          `json:"room_number" validate:"omitempty,min=1,max=50"`
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Type        *string          `json:"type" validate:"omitempty,max=50"`
	Floor       *int             `json:"floor" validate:"omitempty,min=0,max=200"`
	Price       *decimal.Decimal `json:"price"`
	Capacity    *int             `json:"capacity" validate:"omitempty,min=1,max=50"`
	Amenities   []string         `json:"amenities" validate:"omitempty,dive,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
}

type RoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance"`
}

func (r RoomCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if !r.Price.IsPositive() {
		return apperror.Validation("price must be greater than 0")
	}
	return nil
}

func (r RoomUpdateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.Price != nil && !r.Price.IsPositive() {
		return apperror.Validation("price must be greater than 0")
	}
	return nil
}

func (r RoomStatusRequest) Validate() error {
	return types.ValidateStruct(r)
}

// RoomListQuery is bound from the query string of the room listings
type RoomListQuery struct {
	PropertyID string `query:"propertyId"`
}

func (q RoomListQuery) Validate() error {
	if q.PropertyID == "" {
		return apperror.Validation("propertyId is required")
	}
	return nil
}
