package access_code

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"keyless-stay/apperror"
	"keyless-stay/config"
	"keyless-stay/constants"
	"keyless-stay/logger"
	accessCodeModel "keyless-stay/models/access_code"
	bookingModel "keyless-stay/models/booking"
	propertyModel "keyless-stay/models/property"
	roomModel "keyless-stay/models/room"
	"keyless-stay/services/notification"

	"gorm.io/gorm"
)

// Validation messages shown at the door terminal
const (
	MsgInvalid        = "รหัสไม่ถูกต้อง"
	MsgWrongProperty  = "รหัสไม่ถูกต้องสำหรับที่พักนี้"
	MsgRevoked        = "รหัสถูกยกเลิกแล้ว"
	MsgUsed           = "รหัสถูกใช้งานแล้ว"
	MsgNotYetActive   = "รหัสยังไม่เริ่มใช้งาน"
	MsgExpired        = "รหัสหมดอายุแล้ว"
	MsgBookingMissing = "ไม่พบข้อมูลการจอง"
	MsgValid          = "รหัสถูกต้อง"
	MsgGranted        = "Access granted"
)

// CheckInHandler moves a confirmed booking to checked_in when its code opens the door.
// It runs inside the caller's transaction.
type CheckInHandler interface {
	CheckInFromEntry(ctx context.Context, tx *gorm.DB, bookingID string) error
}

// Service issues, validates, consumes and revokes access codes.
// It is the only writer of the access_codes table.
type Service struct {
	DB         *gorm.DB
	CodeLength int
	Grace      time.Duration
	CodeSource func(length int) (string, error)
	Now        func() time.Time
	Dispatcher *notification.Dispatcher

	checkIn CheckInHandler
}

// NewAccessCodeService creates a new access code service
func NewAccessCodeService(db *gorm.DB, codeLength int, grace time.Duration, dispatcher *notification.Dispatcher) *Service {
	if codeLength <= 0 {
		codeLength = config.DefaultAccessCodeLength
	}
	if grace < 0 {
		grace = config.DefaultAccessCodeGraceHours * time.Hour
	}
	return &Service{
		DB:         db,
		CodeLength: codeLength,
		Grace:      grace,
		CodeSource: RandomNumericCode,
		Now:        func() time.Time { return time.Now().UTC() },
		Dispatcher: dispatcher,
	}
}

// SetCheckInHandler wires the booking lifecycle used by Use
func (s *Service) SetCheckInHandler(h CheckInHandler) {
	s.checkIn = h
}

// WithTx returns a copy bound to tx
func (s *Service) WithTx(tx *gorm.DB) *Service {
	clone := *s
	clone.DB = tx
	return &clone
}

// GenerateInput describes a code request. Nil bounds fall back to the booking's stay.
type GenerateInput struct {
	BookingID    string
	ValidFrom    *time.Time
	ValidUntil   *time.Time
	NotifyGuest  bool
	NotifyMethod notification.Method
	Actor        string
}

// BookingSummary is what a valid code reveals about its booking
type BookingSummary struct {
	ID            string    `json:"id"`
	BookingNumber string    `json:"booking_number"`
	GuestName     string    `json:"guest_name"`
	RoomName      string    `json:"room_name"`
	RoomNumber    string    `json:"room_number"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
}

// ValidationResult is the outcome of a validate call. An invalid code is a
// normal result, not an error.
type ValidationResult struct {
	IsValid bool            `json:"is_valid"`
	Message string          `json:"message"`
	Booking *BookingSummary `json:"booking,omitempty"`

	accessCode *accessCodeModel.AccessCode
}

// UseResult is the outcome of a door unlock attempt
type UseResult struct {
	Granted bool            `json:"granted"`
	Message string          `json:"message"`
	Booking *BookingSummary `json:"booking,omitempty"`
}

// ListItem is an access code enriched with its booking for property listings
type ListItem struct {
	accessCodeModel.AccessCode
	BookingNumber string                     `json:"booking_number,omitempty"`
	GuestName     *string                    `json:"guest_name"`
	Status        accessCodeModel.CodeStatus `json:"status"`
}

func invalid(message string) *ValidationResult {
	return &ValidationResult{IsValid: false, Message: message}
}

func actorOr(actor string) string {
	if actor == "" {
		return constants.ActorSystem
	}
	return actor
}

// CheckFormat rejects anything that is not a CodeLength-digit string
func (s *Service) CheckFormat(code string) error {
	if len(code) != s.CodeLength || !isNumeric(code) {
		return apperror.Validation(fmt.Sprintf("Access code must be a %d-digit number", s.CodeLength))
	}
	return nil
}

func (s *Service) loadBooking(ctx context.Context, db *gorm.DB, id string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Booking")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// Generate issues a new code for a booking and caches it on the booking row.
// Existing codes are left untouched; use Regenerate to replace them.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*accessCodeModel.AccessCode, error) {
	var (
		code    *accessCodeModel.AccessCode
		booking *bookingModel.Booking
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		code, booking, err = s.generate(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Access code generated for booking %s", booking.BookingNumber))
	if in.NotifyGuest {
		s.notifyGuest(ctx, booking, code, in.NotifyMethod)
	}
	return code, nil
}

// GenerateWithTx issues a code inside the caller's transaction. No notification is sent.
func (s *Service) GenerateWithTx(ctx context.Context, tx *gorm.DB, in GenerateInput) (*accessCodeModel.AccessCode, error) {
	code, _, err := s.generate(ctx, tx, in)
	return code, err
}

func (s *Service) generate(ctx context.Context, tx *gorm.DB, in GenerateInput) (*accessCodeModel.AccessCode, *bookingModel.Booking, error) {
	booking, err := s.loadBooking(ctx, tx, in.BookingID)
	if err != nil {
		return nil, nil, err
	}

	validFrom := booking.CheckIn
	if in.ValidFrom != nil {
		validFrom = in.ValidFrom.UTC()
	}
	validUntil := booking.CheckOut.Add(s.Grace)
	if in.ValidUntil != nil {
		validUntil = in.ValidUntil.UTC()
	}
	if !validUntil.After(validFrom) {
		return nil, nil, apperror.Validation("valid_until must be after valid_from")
	}

	value, err := s.uniqueCode(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	actor := actorOr(in.Actor)
	code := &accessCodeModel.AccessCode{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RoomID:     booking.RoomID,
		Code:       value,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		CreatedBy:  actor,
	}
	if err := tx.WithContext(ctx).Create(code).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save access code: %w", err)
	}

	err = tx.WithContext(ctx).Model(booking).Updates(map[string]interface{}{
		"access_code":        value,
		"access_code_expiry": validUntil,
	}).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to cache access code on booking: %w", err)
	}
	booking.AccessCode = &value
	booking.AccessCodeExpiry = &validUntil

	if err := recordEvent(tx.WithContext(ctx), code, accessCodeModel.EventCreated, "", actor); err != nil {
		return nil, nil, fmt.Errorf("failed to record access code event: %w", err)
	}
	return code, booking, nil
}

// uniqueCode draws until a value no non-revoked code uses, at most MaxCodeGenerationAttempts times.
func (s *Service) uniqueCode(ctx context.Context, tx *gorm.DB) (string, error) {
	for attempt := 1; attempt <= constants.MaxCodeGenerationAttempts; attempt++ {
		candidate, err := s.CodeSource(s.CodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to draw access code: %w", err)
		}

		var count int64
		err = tx.WithContext(ctx).Model(&accessCodeModel.AccessCode{}).
			Where("code = ? AND is_revoked = ?", candidate, false).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("failed to check access code collision: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		logger.Warning(fmt.Sprintf("Access code collision on attempt %d", attempt))
	}
	return "", apperror.GenerationExhausted()
}

// Validate checks a code without changing anything. Checks run in a fixed order and
// the first failure decides the message. A revoked code reads exactly like an unknown one.
func (s *Service) Validate(ctx context.Context, code, propertyID string) (*ValidationResult, error) {
	return s.validate(ctx, s.DB, code, propertyID)
}

func (s *Service) validate(ctx context.Context, db *gorm.DB, code, propertyID string) (*ValidationResult, error) {
	if err := s.CheckFormat(code); err != nil {
		return nil, err
	}

	var ac accessCodeModel.AccessCode
	err := db.WithContext(ctx).
		Where("code = ? AND is_revoked = ?", code, false).
		Order("created_at DESC").
		First(&ac).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid(MsgInvalid), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up access code: %w", err)
	}

	if propertyID != "" && ac.PropertyID != propertyID {
		return invalid(MsgWrongProperty), nil
	}
	// Unreachable through the lookup above; kept so the order holds if the lookup changes.
	if ac.IsRevoked {
		return invalid(MsgRevoked), nil
	}
	if ac.IsUsed {
		return invalid(MsgUsed), nil
	}
	now := s.Now()
	if now.Before(ac.ValidFrom) {
		return invalid(MsgNotYetActive), nil
	}
	if now.After(ac.ValidUntil) {
		return invalid(MsgExpired), nil
	}

	booking, err := s.loadBooking(ctx, db, ac.BookingID)
	if errors.Is(err, apperror.ErrNotFound) {
		return invalid(MsgBookingMissing), nil
	}
	if err != nil {
		return nil, err
	}

	summary := &BookingSummary{
		ID:            booking.ID,
		BookingNumber: booking.BookingNumber,
		GuestName:     booking.Guest.FullName(),
		RoomName:      booking.RoomID,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
	}
	var room roomModel.Room
	if err := db.WithContext(ctx).Where("id = ?", booking.RoomID).First(&room).Error; err == nil {
		summary.RoomName = room.DisplayName()
		summary.RoomNumber = room.RoomNumber
	}

	return &ValidationResult{
		IsValid:    true,
		Message:    MsgValid,
		Booking:    summary,
		accessCode: &ac,
	}, nil
}

// Use re-validates the code, marks it used and checks in a confirmed booking,
// all in one transaction.
//
// Two concurrent calls with the same code can both pass validation before either
// marks it used; both are granted and the second check-in is a no-op. This is
// accepted for a party entering together.
func (s *Service) Use(ctx context.Context, code, propertyID string) (*UseResult, error) {
	var result *UseResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.validate(ctx, tx, code, propertyID)
		if err != nil {
			return err
		}
		if !v.IsValid {
			result = &UseResult{Granted: false, Message: v.Message}
			return nil
		}

		ac := v.accessCode
		now := s.Now()
		err = tx.WithContext(ctx).Model(ac).Updates(map[string]interface{}{
			"is_used": true,
			"used_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to mark access code used: %w", err)
		}
		if err := recordEvent(tx.WithContext(ctx), ac, accessCodeModel.EventUsed, "", constants.ActorDoor); err != nil {
			return fmt.Errorf("failed to record access code event: %w", err)
		}

		booking, err := s.loadBooking(ctx, tx, ac.BookingID)
		if err != nil {
			return err
		}
		if booking.Status == bookingModel.BookingStatusConfirmed && s.checkIn != nil {
			if err := s.checkIn.CheckInFromEntry(ctx, tx, booking.ID); err != nil {
				return err
			}
		}

		result = &UseResult{Granted: true, Message: MsgGranted, Booking: v.Booking}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID returns a code by id, revoked or not
func (s *Service) FindByID(ctx context.Context, id string) (*accessCodeModel.AccessCode, error) {
	var ac accessCodeModel.AccessCode
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ac).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Access code")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load access code: %w", err)
	}
	return &ac, nil
}

// Revoke marks a code revoked. Revoking twice succeeds and keeps the latest reason.
func (s *Service) Revoke(ctx context.Context, id, reason, actor string) (*accessCodeModel.AccessCode, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("reason is required")
	}

	var revoked *accessCodeModel.AccessCode
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ac, err := s.WithTx(tx).FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.revoke(ctx, tx, ac, reason, accessCodeModel.EventRevoked, actorOr(actor)); err != nil {
			return err
		}
		revoked = ac
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

func (s *Service) revoke(ctx context.Context, tx *gorm.DB, ac *accessCodeModel.AccessCode, reason string, action accessCodeModel.EventAction, actor string) error {
	updates := map[string]interface{}{
		"is_revoked":     true,
		"revoked_reason": reason,
	}
	if !ac.IsRevoked {
		now := s.Now()
		updates["revoked_at"] = now
		ac.RevokedAt = &now
	}
	if err := tx.WithContext(ctx).Model(ac).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to revoke access code: %w", err)
	}
	ac.IsRevoked = true
	ac.RevokedReason = reason

	if err := recordEvent(tx.WithContext(ctx), ac, action, reason, actor); err != nil {
		return fmt.Errorf("failed to record access code event: %w", err)
	}
	return nil
}

// RevokeByBooking revokes every non-revoked code of a booking and returns how many it revoked
func (s *Service) RevokeByBooking(ctx context.Context, bookingID, reason, actor string) (int, error) {
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		count, err = s.RevokeByBookingWithTx(ctx, tx, bookingID, reason, actor)
		return err
	})
	return count, err
}

// RevokeByBookingWithTx is RevokeByBooking inside the caller's transaction
func (s *Service) RevokeByBookingWithTx(ctx context.Context, tx *gorm.DB, bookingID, reason, actor string) (int, error) {
	var codes []accessCodeModel.AccessCode
	err := tx.WithContext(ctx).
		Where("booking_id = ? AND is_revoked = ?", bookingID, false).
		Find(&codes).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load access codes: %w", err)
	}

	for i := range codes {
		if err := s.revoke(ctx, tx, &codes[i], reason, accessCodeModel.EventRevoked, actorOr(actor)); err != nil {
			return 0, err
		}
	}
	return len(codes), nil
}

// RescheduleWithTx moves the window of every unused, unrevoked code of a booking whose
// stay changed: the start by checkInShift, the end by checkOutShift. The booking's
// cached expiry follows its cached code.
func (s *Service) RescheduleWithTx(ctx context.Context, tx *gorm.DB, bookingID string, checkInShift, checkOutShift time.Duration, actor string) (int, error) {
	var codes []accessCodeModel.AccessCode
	err := tx.WithContext(ctx).
		Where("booking_id = ? AND is_revoked = ? AND is_used = ?", bookingID, false, false).
		Find(&codes).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load access codes: %w", err)
	}
	if len(codes) == 0 {
		return 0, nil
	}

	booking, err := s.loadBooking(ctx, tx, bookingID)
	if err != nil {
		return 0, err
	}

	actor = actorOr(actor)
	for i := range codes {
		ac := &codes[i]
		validFrom := ac.ValidFrom.Add(checkInShift)
		validUntil := ac.ValidUntil.Add(checkOutShift)
		if !validUntil.After(validFrom) {
			return 0, apperror.Validation("new stay dates leave access code " + ac.Code + " with an empty window")
		}

		err := tx.WithContext(ctx).Model(ac).Updates(map[string]interface{}{
			"valid_from":  validFrom,
			"valid_until": validUntil,
		}).Error
		if err != nil {
			return 0, fmt.Errorf("failed to reschedule access code: %w", err)
		}
		ac.ValidFrom = validFrom
		ac.ValidUntil = validUntil

		details := fmt.Sprintf("valid %s to %s", validFrom.Format(time.RFC3339), validUntil.Format(time.RFC3339))
		if err := recordEvent(tx.WithContext(ctx), ac, accessCodeModel.EventRescheduled, details, actor); err != nil {
			return 0, fmt.Errorf("failed to record access code event: %w", err)
		}

		if booking.AccessCode != nil && *booking.AccessCode == ac.Code {
			err := tx.WithContext(ctx).Model(booking).Update("access_code_expiry", validUntil).Error
			if err != nil {
				return 0, fmt.Errorf("failed to cache access code expiry on booking: %w", err)
			}
		}
	}
	return len(codes), nil
}

// RegenerateInput describes a code replacement
type RegenerateInput struct {
	BookingID    string
	NotifyGuest  bool
	NotifyMethod notification.Method
	Actor        string
}

// Regenerate revokes every code of the booking and issues a fresh one in one
// transaction, so exactly one active code survives.
func (s *Service) Regenerate(ctx context.Context, in RegenerateInput) (*accessCodeModel.AccessCode, error) {
	var (
		code    *accessCodeModel.AccessCode
		booking *bookingModel.Booking
	)
	actor := actorOr(in.Actor)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadBooking(ctx, tx, in.BookingID); err != nil {
			return err
		}

		replaced, err := s.RevokeByBookingWithTx(ctx, tx, in.BookingID, accessCodeModel.ReasonRegenerated, actor)
		if err != nil {
			return err
		}

		code, booking, err = s.generate(ctx, tx, GenerateInput{BookingID: in.BookingID, Actor: actor})
		if err != nil {
			return err
		}

		details := fmt.Sprintf("replaced %d code(s)", replaced)
		if err := recordEvent(tx.WithContext(ctx), code, accessCodeModel.EventRegenerated, details, actor); err != nil {
			return fmt.Errorf("failed to record access code event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Access code regenerated for booking %s", booking.BookingNumber))
	if in.NotifyGuest {
		s.notifyGuest(ctx, booking, code, in.NotifyMethod)
	}
	return code, nil
}

// CleanupExpired revokes the property's non-revoked codes whose window has closed.
// It is the only way an expired code leaves the active listing.
func (s *Service) CleanupExpired(ctx context.Context, propertyID, actor string) (int, error) {
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var codes []accessCodeModel.AccessCode
		err := tx.WithContext(ctx).
			Where("property_id = ? AND is_revoked = ? AND valid_until < ?", propertyID, false, s.Now()).
			Find(&codes).Error
		if err != nil {
			return fmt.Errorf("failed to load expired access codes: %w", err)
		}

		for i := range codes {
			if err := s.revoke(ctx, tx, &codes[i], accessCodeModel.ReasonExpired, accessCodeModel.EventExpired, actorOr(actor)); err != nil {
				return err
			}
		}
		count = len(codes)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info(fmt.Sprintf("Cleaned up %d expired access code(s) for property %s", count, propertyID))
	}
	return count, nil
}

// ListByProperty returns non-revoked codes of a property with booking number and guest name.
// Expired codes are included only when includeExpired is set.
func (s *Service) ListByProperty(ctx context.Context, propertyID string, includeExpired bool) ([]ListItem, error) {
	now := s.Now()
	query := s.DB.WithContext(ctx).Where("property_id = ? AND is_revoked = ?", propertyID, false)
	if !includeExpired {
		query = query.Where("valid_until > ?", now)
	}

	var codes []accessCodeModel.AccessCode
	if err := query.Order("valid_until DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list access codes: %w", err)
	}

	bookingIDs := make([]string, 0, len(codes))
	for _, c := range codes {
		bookingIDs = append(bookingIDs, c.BookingID)
	}
	bookings := map[string]bookingModel.Booking{}
	if len(bookingIDs) > 0 {
		var rows []bookingModel.Booking
		if err := s.DB.WithContext(ctx).Where("id IN ?", bookingIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load bookings for access codes: %w", err)
		}
		for _, b := range rows {
			bookings[b.ID] = b
		}
	}

	items := make([]ListItem, 0, len(codes))
	for _, c := range codes {
		item := ListItem{AccessCode: c, Status: c.DisplayStatus(now)}
		if b, ok := bookings[c.BookingID]; ok {
			name := b.Guest.FullName()
			item.BookingNumber = b.BookingNumber
			item.GuestName = &name
		}
		items = append(items, item)
	}
	return items, nil
}

// ListByBooking returns every code of a booking, newest first
func (s *Service) ListByBooking(ctx context.Context, bookingID string) ([]accessCodeModel.AccessCode, error) {
	var codes []accessCodeModel.AccessCode
	err := s.DB.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list access codes: %w", err)
	}
	return codes, nil
}

// FindActiveByBooking returns the unused, unrevoked, unexpired code with the latest expiry
func (s *Service) FindActiveByBooking(ctx context.Context, bookingID string) (*accessCodeModel.AccessCode, error) {
	var ac accessCodeModel.AccessCode
	err := s.DB.WithContext(ctx).
		Where("booking_id = ? AND is_revoked = ? AND is_used = ? AND valid_until > ?", bookingID, false, false, s.Now()).
		Order("valid_until DESC").
		First(&ac).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Active access code")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active access code: %w", err)
	}
	return &ac, nil
}

// History returns the audit trail of a code, oldest first
func (s *Service) History(ctx context.Context, accessCodeID string) ([]accessCodeModel.AccessCodeEvent, error) {
	var events []accessCodeModel.AccessCodeEvent
	err := s.DB.WithContext(ctx).
		Where("access_code_id = ?", accessCodeID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load access code history: %w", err)
	}
	return events, nil
}

// NotifyIssued sends the booking's active code to the guest. Callers that issued
// the code inside their own transaction call it after the commit.
func (s *Service) NotifyIssued(ctx context.Context, bookingID string, method notification.Method) {
	if s.Dispatcher == nil {
		return
	}
	booking, err := s.loadBooking(ctx, s.DB, bookingID)
	if err != nil {
		logger.Error("Failed to load booking for access code notification", err)
		return
	}
	code, err := s.FindActiveByBooking(ctx, bookingID)
	if err != nil {
		logger.Warning(fmt.Sprintf("No active access code to send for booking %s", booking.BookingNumber))
		return
	}
	s.notifyGuest(ctx, booking, code, method)
}

func (s *Service) notifyGuest(ctx context.Context, booking *bookingModel.Booking, code *accessCodeModel.AccessCode, method notification.Method) {
	if s.Dispatcher == nil {
		return
	}
	if !method.IsValid() {
		method = notification.MethodLine
	}

	payload := notification.Payload{
		BookingNumber: booking.BookingNumber,
		RoomName:      booking.RoomID,
		Code:          code.Code,
		ValidFrom:     code.ValidFrom,
		ValidUntil:    code.ValidUntil,
	}
	var property propertyModel.Property
	if err := s.DB.WithContext(ctx).Select("name").Where("id = ?", booking.PropertyID).First(&property).Error; err == nil {
		payload.PropertyName = property.Name
	}
	var room roomModel.Room
	if err := s.DB.WithContext(ctx).Where("id = ?", booking.RoomID).First(&room).Error; err == nil {
		payload.RoomName = room.DisplayName()
	}

	s.Dispatcher.Dispatch(notification.Contact{
		Name:  booking.Guest.FullName(),
		Email: booking.Guest.Email,
		Phone: booking.Guest.PhoneNumber,
	}, method, payload)
}
