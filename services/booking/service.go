package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"keyless-stay/apperror"
	"keyless-stay/constants"
	"keyless-stay/logger"
	accessCodeModel "keyless-stay/models/access_code"
	bookingModel "keyless-stay/models/booking"
	roomModel "keyless-stay/models/room"
	accessCodeService "keyless-stay/services/access_code"
	"keyless-stay/services/availability"
	"keyless-stay/services/booking_event"
	"keyless-stay/services/notification"
	roomService "keyless-stay/services/room"
	"keyless-stay/types"
	bookingTypes "keyless-stay/types/booking"
	"keyless-stay/utils"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service runs the booking state machine and its room and access code side effects
type Service struct {
	DB            *gorm.DB
	Rooms         *roomService.Service
	Availability  *availability.Checker
	AccessCodes   *accessCodeService.Service
	EncryptionKey string
	Now           func() time.Time
}

// NewBookingService creates a booking service and registers it as the
// check-in handler of accessCodes.
func NewBookingService(db *gorm.DB, accessCodes *accessCodeService.Service, encryptionKey string) *Service {
	s := &Service{
		DB:            db,
		Rooms:         roomService.NewRoomService(db),
		Availability:  availability.NewChecker(db),
		AccessCodes:   accessCodes,
		EncryptionKey: encryptionKey,
		Now:           func() time.Time { return time.Now().UTC() },
	}
	accessCodes.SetCheckInHandler(s)
	return s
}

// WithTx returns a copy whose collaborators are all bound to tx
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{
		DB:            tx,
		Rooms:         s.Rooms.WithTx(tx),
		Availability:  s.Availability.WithTx(tx),
		AccessCodes:   s.AccessCodes.WithTx(tx),
		EncryptionKey: s.EncryptionKey,
		Now:           s.Now,
	}
}

type createParams struct {
	PropertyID string
	RoomID     string
	Guest      bookingTypes.GuestInput
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	Notes      string
	Source     bookingModel.BookingSource
	Actor      string
}

// Create books a room for a guest. The booking starts pending.
func (s *Service) Create(ctx context.Context, req bookingTypes.BookingCreateRequest, actor string) (*bookingModel.Booking, error) {
	if err := bookingTypes.StayDates(req.CheckIn.Time, req.CheckOut.Time); err != nil {
		return nil, err
	}
	if actor == "" {
		actor = constants.ActorGuest
	}

	var created *bookingModel.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.WithTx(tx).create(ctx, createParams{
			PropertyID: req.PropertyID,
			RoomID:     req.RoomID,
			Guest:      req.Guest,
			CheckIn:    req.CheckIn.Time,
			CheckOut:   req.CheckOut.Time,
			Adults:     req.Adults,
			Children:   req.Children,
			Source:     bookingModel.BookingSourceDirect,
			Actor:      actor,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking created successfully with number: %s", created.BookingNumber))
	return s.FindByID(ctx, created.ID)
}

// CreateAdmin books, confirms and issues an access code as one unit, optionally
// recording an initial payment.
func (s *Service) CreateAdmin(ctx context.Context, req bookingTypes.AdminBookingCreateRequest, actor string) (*bookingModel.Booking, error) {
	if err := bookingTypes.StayDates(req.CheckIn.Time, req.CheckOut.Time); err != nil {
		return nil, err
	}
	if req.PaidAmount != nil && req.PaidAmount.IsNegative() {
		return nil, apperror.Validation("paid_amount must not be negative")
	}

	source := bookingModel.BookingSourceWalkIn
	if req.Source != "" {
		source = bookingModel.BookingSource(req.Source)
	}

	var created *bookingModel.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		b, err := txs.create(ctx, createParams{
			PropertyID: req.PropertyID,
			RoomID:     req.RoomID,
			Guest:      req.Guest,
			CheckIn:    req.CheckIn.Time,
			CheckOut:   req.CheckOut.Time,
			Adults:     req.Adults,
			Children:   req.Children,
			Notes:      req.Notes,
			Source:     source,
			Actor:      actor,
		})
		if err != nil {
			return err
		}

		if err := txs.transition(ctx, b, bookingModel.BookingStatusConfirmed, actor, "Confirmed on creation"); err != nil {
			return err
		}

		if req.PaidAmount != nil && req.PaidAmount.IsPositive() {
			if err := txs.recordPayment(ctx, b, *req.PaidAmount, bookingModel.PaymentMethod(req.PaymentMethod), actor); err != nil {
				return err
			}
		} else if req.PaymentMethod != "" {
			if err := tx.WithContext(ctx).Model(b).Update("payment_method", req.PaymentMethod).Error; err != nil {
				return fmt.Errorf("failed to set payment method: %w", err)
			}
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking %s created and confirmed", created.BookingNumber))
	s.AccessCodes.NotifyIssued(ctx, created.ID, notification.MethodLine)
	return s.FindByID(ctx, created.ID)
}

func (s *Service) create(ctx context.Context, p createParams) (*bookingModel.Booking, error) {
	if _, err := s.Rooms.Properties.FindByID(ctx, p.PropertyID); err != nil {
		return nil, err
	}

	room, err := s.Rooms.FindByID(ctx, p.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive || room.PropertyID != p.PropertyID {
		return nil, apperror.NotFound("Room")
	}

	available, err := s.Availability.IsAvailable(ctx, room.ID, p.CheckIn, p.CheckOut, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperror.RoomNotAvailable()
	}

	number, err := s.uniqueBookingNumber(ctx)
	if err != nil {
		return nil, err
	}

	guest, err := s.guestInfo(p.Guest)
	if err != nil {
		return nil, err
	}

	adults := p.Adults
	if adults < 1 {
		adults = 1
	}

	// The room price is copied here and never read from the room again.
	nights := CalculateNights(p.CheckIn, p.CheckOut)
	b := &bookingModel.Booking{
		BookingNumber: number,
		PropertyID:    p.PropertyID,
		RoomID:        room.ID,
		Guest:         guest,
		CheckIn:       p.CheckIn.UTC(),
		CheckOut:      p.CheckOut.UTC(),
		Nights:        nights,
		Adults:        adults,
		Children:      p.Children,
		RoomPrice:     room.Price,
		TotalPrice:    TotalPrice(room.Price, nights),
		PaidAmount:    decimal.Zero,
		PaymentStatus: bookingModel.PaymentStatusPending,
		Status:        bookingModel.BookingStatusPending,
		Notes:         p.Notes,
		Source:        p.Source,
		CreatedBy:     p.Actor,
		UpdatedBy:     p.Actor,
	}
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := booking_event.RecordStatusChange(s.DB.WithContext(ctx), b, "", "Created", p.Actor); err != nil {
		return nil, fmt.Errorf("failed to record booking event: %w", err)
	}
	return b, nil
}

func (s *Service) uniqueBookingNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < constants.MaxCodeGenerationAttempts; attempt++ {
		number, err := GenerateBookingNumber(s.Now())
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		var count int64
		err = s.DB.WithContext(ctx).Model(&bookingModel.Booking{}).
			Where("booking_number = ?", number).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("failed to check booking number: %w", err)
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique booking number")
}

func (s *Service) guestInfo(in bookingTypes.GuestInput) (bookingModel.GuestInfo, error) {
	nationality := in.Nationality
	if nationality == "" {
		nationality = "Thai"
	}
	idNumber, err := s.sealIDNumber(in.IDNumber)
	if err != nil {
		return bookingModel.GuestInfo{}, err
	}
	return bookingModel.GuestInfo{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           strings.TrimSpace(in.Email),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		IDNumber:        idNumber,
		Nationality:     nationality,
		SpecialRequests: in.SpecialRequests,
	}, nil
}

// sealIDNumber encrypts a guest ID number when an encryption key is configured
func (s *Service) sealIDNumber(idNumber string) (string, error) {
	if idNumber == "" || s.EncryptionKey == "" {
		return idNumber, nil
	}
	sealed, err := utils.EncryptData(s.EncryptionKey, idNumber)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt guest id number: %w", err)
	}
	return sealed, nil
}

func (s *Service) openIDNumber(b *bookingModel.Booking) {
	if b.Guest.IDNumber == "" || s.EncryptionKey == "" {
		return
	}
	plain, err := utils.DecryptData(s.EncryptionKey, b.Guest.IDNumber)
	if err != nil {
		logger.Warning(fmt.Sprintf("Could not decrypt guest id number for booking %s", b.BookingNumber))
		return
	}
	b.Guest.IDNumber = plain
}

func (s *Service) load(ctx context.Context, id string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Booking")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// FindByID returns a booking with the guest id number in clear text
func (s *Service) FindByID(ctx context.Context, id string) (*bookingModel.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.openIDNumber(b)
	return b, nil
}

// FindByNumber looks a booking up by its human readable number
func (s *Service) FindByNumber(ctx context.Context, number string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.DB.WithContext(ctx).Where("booking_number = ?", strings.ToUpper(strings.TrimSpace(number))).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Booking")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	s.openIDNumber(&b)
	return &b, nil
}

// Transition moves a booking to status `to` and applies the side effects of that edge
func (s *Service) Transition(ctx context.Context, id string, to bookingModel.BookingStatus, actor, note string) (*bookingModel.Booking, error) {
	if !to.IsValid() {
		return nil, apperror.Validation("invalid booking status: " + to.String())
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		b, err := txs.load(ctx, id)
		if err != nil {
			return err
		}
		return txs.transition(ctx, b, to, actor, note)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Booking %s moved to %s", id, to))
	if to == bookingModel.BookingStatusConfirmed {
		s.AccessCodes.NotifyIssued(ctx, id, notification.MethodLine)
	}
	return s.FindByID(ctx, id)
}

func (s *Service) Confirm(ctx context.Context, id, actor string) (*bookingModel.Booking, error) {
	return s.Transition(ctx, id, bookingModel.BookingStatusConfirmed, actor, "")
}

func (s *Service) CheckIn(ctx context.Context, id, actor string) (*bookingModel.Booking, error) {
	return s.Transition(ctx, id, bookingModel.BookingStatusCheckedIn, actor, "")
}

func (s *Service) CheckOut(ctx context.Context, id, actor string) (*bookingModel.Booking, error) {
	return s.Transition(ctx, id, bookingModel.BookingStatusCheckedOut, actor, "")
}

func (s *Service) Cancel(ctx context.Context, id, actor, note string) (*bookingModel.Booking, error) {
	return s.Transition(ctx, id, bookingModel.BookingStatusCancelled, actor, note)
}

// CheckInFromEntry checks in a confirmed booking after its code opened the door.
// Any other status is left alone, so a second entry with the same code is a no-op.
func (s *Service) CheckInFromEntry(ctx context.Context, tx *gorm.DB, bookingID string) error {
	txs := s.WithTx(tx)
	b, err := txs.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != bookingModel.BookingStatusConfirmed {
		return nil
	}

	err = txs.transition(ctx, b, bookingModel.BookingStatusCheckedIn, constants.ActorDoor, "Checked in by access code")
	if errors.Is(err, apperror.ErrConflict) {
		logger.Warning(fmt.Sprintf("Booking %s was checked in concurrently", b.BookingNumber))
		return nil
	}
	return err
}

// transition must run on a transaction-bound Service. The legality check comes
// before any write so a rejected transition changes nothing.
func (s *Service) transition(ctx context.Context, b *bookingModel.Booking, to bookingModel.BookingStatus, actor, note string) error {
	from := b.Status
	if !from.CanTransitionTo(to) {
		return apperror.InvalidTransition(from.String(), to.String())
	}
	if actor == "" {
		actor = constants.ActorSystem
	}

	result := s.DB.WithContext(ctx).Model(&bookingModel.Booking{}).
		Where("id = ? AND status = ?", b.ID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_by": actor,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict("Booking status was changed by another request")
	}
	b.Status = to
	b.UpdatedBy = actor

	switch to {
	case bookingModel.BookingStatusConfirmed:
		if _, err := s.AccessCodes.GenerateWithTx(ctx, s.DB, accessCodeService.GenerateInput{
			BookingID: b.ID,
			Actor:     actor,
		}); err != nil {
			return err
		}
	case bookingModel.BookingStatusCheckedIn:
		if err := s.Rooms.SetStatus(ctx, b.RoomID, roomModel.RoomStatusOccupied); err != nil {
			return err
		}
	case bookingModel.BookingStatusCheckedOut:
		if err := s.Rooms.SetStatus(ctx, b.RoomID, roomModel.RoomStatusCleaning); err != nil {
			return err
		}
		if _, err := s.AccessCodes.RevokeByBookingWithTx(ctx, s.DB, b.ID, accessCodeModel.ReasonCheckedOut, actor); err != nil {
			return err
		}
	case bookingModel.BookingStatusCancelled:
		if from == bookingModel.BookingStatusCheckedIn {
			if err := s.Rooms.SetStatus(ctx, b.RoomID, roomModel.RoomStatusCleaning); err != nil {
				return err
			}
		}
		if _, err := s.AccessCodes.RevokeByBookingWithTx(ctx, s.DB, b.ID, accessCodeModel.ReasonBookingCancelled, actor); err != nil {
			return err
		}
	}

	if err := booking_event.RecordStatusChange(s.DB.WithContext(ctx), b, from, note, actor); err != nil {
		return fmt.Errorf("failed to record booking event: %w", err)
	}
	return nil
}

// Update changes dates, guest details or party size. New dates are checked against
// other bookings of the room and priced from the original snapshot, and live access
// codes move with the stay.
func (s *Service) Update(ctx context.Context, id string, req bookingTypes.BookingUpdateRequest, actor string) (*bookingModel.Booking, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		b, err := txs.load(ctx, id)
		if err != nil {
			return err
		}

		oldCheckIn, oldCheckOut := b.CheckIn, b.CheckOut
		if req.CheckIn != nil || req.CheckOut != nil {
			if b.Status.IsTerminal() {
				return apperror.Conflict("Cannot change the dates of a " + b.Status.String() + " booking")
			}
			checkIn, checkOut := b.CheckIn, b.CheckOut
			if req.CheckIn != nil {
				checkIn = req.CheckIn.Time.UTC()
			}
			if req.CheckOut != nil {
				checkOut = req.CheckOut.Time.UTC()
			}
			if err := bookingTypes.StayDates(checkIn, checkOut); err != nil {
				return err
			}

			available, err := txs.Availability.IsAvailable(ctx, b.RoomID, checkIn, checkOut, b.ID)
			if err != nil {
				return err
			}
			if !available {
				return apperror.RoomNotAvailable()
			}

			b.CheckIn = checkIn
			b.CheckOut = checkOut
			b.Nights = CalculateNights(checkIn, checkOut)
			b.TotalPrice = TotalPrice(b.RoomPrice, b.Nights)
			b.PaymentStatus = DerivePaymentStatus(b.PaidAmount, b.TotalPrice)
		}

		if req.Guest != nil {
			if err := txs.patchGuest(&b.Guest, req.Guest); err != nil {
				return err
			}
		}
		if req.Adults != nil {
			b.Adults = *req.Adults
		}
		if req.Children != nil {
			b.Children = *req.Children
		}
		if req.Notes != nil {
			b.Notes = *req.Notes
		}
		b.UpdatedBy = actor

		if err := tx.WithContext(ctx).Save(b).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		checkInShift := b.CheckIn.Sub(oldCheckIn)
		checkOutShift := b.CheckOut.Sub(oldCheckOut)
		if checkInShift != 0 || checkOutShift != 0 {
			if _, err := txs.AccessCodes.RescheduleWithTx(ctx, tx, b.ID, checkInShift, checkOutShift, actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *Service) patchGuest(g *bookingModel.GuestInfo, patch *bookingTypes.GuestPatch) error {
	if patch.FirstName != nil {
		g.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		g.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		g.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.PhoneNumber != nil {
		g.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.IDNumber != nil {
		sealed, err := s.sealIDNumber(*patch.IDNumber)
		if err != nil {
			return err
		}
		g.IDNumber = sealed
	}
	if patch.Nationality != nil {
		g.Nationality = *patch.Nationality
	}
	if patch.SpecialRequests != nil {
		g.SpecialRequests = *patch.SpecialRequests
	}
	return nil
}

// RecordPayment adds amount to the paid total and re-derives the payment status.
// Overpayment is accepted and reported as paid.
func (s *Service) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method bookingModel.PaymentMethod, actor string) (*bookingModel.Booking, error) {
	if amount.IsNegative() {
		return nil, apperror.Validation("amount must not be negative")
	}
	if method != "" && !method.IsValid() {
		return nil, apperror.Validation("invalid payment method: " + string(method))
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.WithTx(tx)
		b, err := txs.load(ctx, id)
		if err != nil {
			return err
		}
		return txs.recordPayment(ctx, b, amount, method, actor)
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *Service) recordPayment(ctx context.Context, b *bookingModel.Booking, amount decimal.Decimal, method bookingModel.PaymentMethod, actor string) error {
	paid := b.PaidAmount.Add(amount)
	status := DerivePaymentStatus(paid, b.TotalPrice)

	updates := map[string]interface{}{
		"paid_amount":    paid,
		"payment_status": status,
		"updated_by":     actor,
	}
	if method != "" {
		updates["payment_method"] = method
		b.PaymentMethod = method
	}
	if err := s.DB.WithContext(ctx).Model(b).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	b.PaidAmount = paid
	b.PaymentStatus = status

	entry := bookingModel.BookingPayment{
		BookingID:   b.ID,
		Amount:      amount,
		Method:      method,
		PaidAfter:   paid,
		StatusAfter: status,
		CreatedBy:   actorOrSystem(actor),
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append payment ledger: %w", err)
	}
	return nil
}

// Payments returns the payment ledger of a booking, oldest first
func (s *Service) Payments(ctx context.Context, bookingID string) ([]bookingModel.BookingPayment, error) {
	var payments []bookingModel.BookingPayment
	err := s.DB.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id ASC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

// StatusHistory returns the lifecycle events of a booking, oldest first
func (s *Service) StatusHistory(ctx context.Context, bookingID string) ([]bookingModel.BookingStatusEvent, error) {
	events, err := booking_event.History(s.DB.WithContext(ctx), bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}
	return events, nil
}

// Search lists the newest bookings of a property matching every given filter
func (s *Service) Search(ctx context.Context, q bookingTypes.SearchQuery) ([]bookingModel.Booking, error) {
	query := s.DB.WithContext(ctx).Where("property_id = ?", q.PropertyID)
	if q.RoomID != "" {
		query = query.Where("room_id = ?", q.RoomID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.FromDate != "" {
		from, err := types.ParseDate(q.FromDate)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		query = query.Where("check_in >= ?", from)
	}
	if q.ToDate != "" {
		to, err := types.ParseDate(q.ToDate)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		query = query.Where("check_in <= ?", to)
	}
	if name := strings.TrimSpace(q.GuestName); name != "" {
		like := "%" + strings.ToLower(name) + "%"
		query = query.Where("LOWER(guest_first_name) LIKE ? OR LOWER(guest_last_name) LIKE ?", like, like)
	}
	if phone := strings.TrimSpace(q.GuestPhone); phone != "" {
		query = query.Where("guest_phone_number LIKE ?", "%"+phone+"%")
	}

	var bookings []bookingModel.Booking
	if err := query.Order("created_at DESC").Limit(constants.MaxSearchResults).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	for i := range bookings {
		s.openIDNumber(&bookings[i])
	}
	return bookings, nil
}

// TodayArrivals returns confirmed bookings checking in today (UTC)
func (s *Service) TodayArrivals(ctx context.Context, propertyIDs ...string) ([]bookingModel.Booking, error) {
	return s.today(ctx, "check_in", bookingModel.BookingStatusConfirmed, propertyIDs)
}

// TodayDepartures returns checked-in bookings checking out today (UTC)
func (s *Service) TodayDepartures(ctx context.Context, propertyIDs ...string) ([]bookingModel.Booking, error) {
	return s.today(ctx, "check_out", bookingModel.BookingStatusCheckedIn, propertyIDs)
}

func (s *Service) today(ctx context.Context, column string, status bookingModel.BookingStatus, propertyIDs []string) ([]bookingModel.Booking, error) {
	if len(propertyIDs) == 0 {
		return []bookingModel.Booking{}, nil
	}
	start := now.With(s.Now()).BeginningOfDay()
	end := start.AddDate(0, 0, 1)

	var bookings []bookingModel.Booking
	err := s.DB.WithContext(ctx).
		Where("property_id IN ? AND status = ?", propertyIDs, status).
		Where(column+" >= ? AND "+column+" < ?", start, end).
		Order(column + " ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load today's bookings: %w", err)
	}
	return bookings, nil
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return constants.ActorSystem
	}
	return actor
}
