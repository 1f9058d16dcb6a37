package property

import "keyless-stay/types"

type PropertyCreateRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=255"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Address      string   `json:"address" validate:"omitempty,max=1000"`
	Phone        string   `json:"phone" validate:"omitempty,phone"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Amenities    []string `json:"amenities" validate:"omitempty,dive,min=1,max=100"`
	CheckInTime  string   `json:"check_in_time" validate:"omitempty,datetime=15:04"`
	CheckOutTime string   `json:"check_out_time" validate:"omitempty,datetime=15:04"`
}

type PropertyUpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Address      *string  `json:"address" validate:"omitempty,max=1000"`
	Phone        *string  `json:"phone" validate:"omitempty,phone"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Amenities    []string `json:"amenities" validate:"omitempty,dive,min=1,max=100"`
	CheckInTime  *string  `json:"check_in_time" validate:"omitempty,datetime=15:04"`
	CheckOutTime *string  `json:"check_out_time" validate:"omitempty,datetime=15:04"`
}

func (r PropertyCreateRequest) Validate() error {
	return types.ValidateStruct(r)
}

func (r PropertyUpdateRequest) Validate() error {
	return types.ValidateStruct(r)
}
