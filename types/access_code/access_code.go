package access_code

import (
	"keyless-stay/apperror"
	"keyless-stay/types"
)

type GenerateRequest struct {
	BookingID    string      `json:"booking_id" validate:"required"`
	ValidFrom    *types.Date `json:"valid_from"`
	ValidUntil   *types.Date `json:"valid_until"`
	NotifyGuest  bool        `json:"notify_guest"`
	NotifyMethod string      `json:"notify_method" validate:"omitempty,oneof=line sms email all"`
}

type ValidateRequest struct {
	Code       string `json:"code" validate:"required"`
	PropertyID string `json:"property_id"`
}

// UseRequest is the optional body of a door-terminal entry
type UseRequest struct {
	PropertyID string `json:"property_id"`
}

// RegenerateRequest replaces a booking's codes. The guest is notified unless NotifyGuest is false.
type RegenerateRequest struct {
	NotifyGuest  *bool  `json:"notify_guest"`
	NotifyMethod string `json:"notify_method" validate:"omitempty,oneof=line sms email all"`
}

type RevokeRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

type ListQuery struct {
	PropertyID     string `query:"propertyId"`
	IncludeExpired bool   `query:"includeExpired"`
}

func (r GenerateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && !r.ValidUntil.After(r.ValidFrom.Time) {
		return apperror.Validation("valid_until must be after valid_from")
	}
	return nil
}

func (r UseRequest) Validate() error {
	return nil
}

func (q ListQuery) Validate() error {
	if q.PropertyID == "" {
		return apperror.Validation("propertyId is required")
	}
	return nil
}

func (r ValidateRequest) Validate() error {
	return types.ValidateStruct(r)
}

func (r RegenerateRequest) Validate() error {
	return types.ValidateStruct(r)
}

// ShouldNotify defaults to true when the field is omitted
func (r RegenerateRequest) ShouldNotify() bool {
	return r.NotifyGuest == nil || *r.NotifyGuest
}

func (r RevokeRequest) Validate() error {
	return types.ValidateStruct(r)
}
