package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingModel "keyless-stay/models/booking"
	roomModel "keyless-stay/models/room"
	propertyService "keyless-stay/services/property"
	roomService "keyless-stay/services/room"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service aggregates an owner's properties for the dashboard
type Service struct {
	DB         *gorm.DB
	Properties *propertyService.Service
	Rooms      *roomService.Service
	Now        func() time.Time
}

func NewDashboardService(db *gorm.DB) *Service {
	return &Service{
		DB:         db,
		Properties: propertyService.NewPropertyService(db),
		Rooms:      roomService.NewRoomService(db),
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

type BookingCounts struct {
	Today     int64 `json:"today"`
	CheckIns  int64 `json:"check_ins"`
	CheckOuts int64 `json:"check_outs"`
}

type Revenue struct {
	Today decimal.Decimal `json:"today"`
	Month decimal.Decimal `json:"month"`
}

type Stats struct {
	Properties int               `json:"properties"`
	Rooms      roomService.Stats `json:"rooms"`
	Bookings   BookingCounts     `json:"bookings"`
	Revenue    Revenue           `json:"revenue"`
}

// Movement types of a today booking
const (
	MovementCheckIn  = "checkin"
	MovementCheckOut = "checkout"
)

// TodayBooking is one arrival or departure on today's board
type TodayBooking struct {
	ID            string    `json:"id"`
	BookingNumber string    `json:"booking_number"`
	GuestName     string    `json:"guest_name"`
	RoomNumber    string    `json:"room_number"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
}

// arrivalStatuses count as a check-in today; a pending walk-up is still expected.
var arrivalStatuses = []bookingModel.BookingStatus{
	bookingModel.BookingStatusPending,
	bookingModel.BookingStatusConfirmed,
}

func (s *Service) ownedPropertyIDs(ctx context.Context, ownerID string) ([]string, error) {
	properties, err := s.Properties.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Stats summarises rooms, today's movements and revenue for every active property of ownerID.
// Revenue counts the total price of paid bookings by check-in date.
func (s *Service) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	propertyIDs, err := s.ownedPropertyIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Properties: len(propertyIDs),
		Revenue:    Revenue{Today: decimal.Zero, Month: decimal.Zero},
	}
	if len(propertyIDs) == 0 {
		return stats, nil
	}

	rooms, err := s.Rooms.Stats(ctx, propertyIDs...)
	if err != nil {
		return nil, err
	}
	stats.Rooms = *rooms

	today := now.With(s.Now()).BeginningOfDay()
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := now.With(s.Now()).BeginningOfMonth()

	db := s.DB.WithContext(ctx).Model(&bookingModel.Booking{}).Where("property_id IN ?", propertyIDs)

	err = db.Session(&gorm.Session{}).
		Where("check_in >= ? AND check_in < ? AND status IN ?", today, tomorrow, arrivalStatuses).
		Count(&stats.Bookings.CheckIns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}

	err = db.Session(&gorm.Session{}).
		Where("check_out >= ? AND check_out < ? AND status = ?", today, tomorrow, bookingModel.BookingStatusCheckedIn).
		Count(&stats.Bookings.CheckOuts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count check-outs: %w", err)
	}
	stats.Bookings.Today = stats.Bookings.CheckIns + stats.Bookings.CheckOuts

	var paid []bookingModel.Booking
	err = db.Session(&gorm.Session{}).
		Select("check_in", "total_price").
		Where("check_in >= ? AND check_in < ? AND payment_status = ?", monthStart, tomorrow, bookingModel.PaymentStatusPaid).
		Find(&paid).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue: %w", err)
	}
	for _, b := range paid {
		stats.Revenue.Month = stats.Revenue.Month.Add(b.TotalPrice)
		if !b.CheckIn.Before(today) {
			stats.Revenue.Today = stats.Revenue.Today.Add(b.TotalPrice)
		}
	}

	return stats, nil
}

// TodayBookings lists today's arrivals then departures, each ordered by room number
func (s *Service) TodayBookings(ctx context.Context, ownerID string) ([]TodayBooking, error) {
	propertyIDs, err := s.ownedPropertyIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	result := []TodayBooking{}
	if len(propertyIDs) == 0 {
		return result, nil
	}

	today := now.With(s.Now()).BeginningOfDay()
	tomorrow := today.AddDate(0, 0, 1)

	var arrivals, departures []bookingModel.Booking
	err = s.DB.WithContext(ctx).
		Where("property_id IN ? AND check_in >= ? AND check_in < ? AND status IN ?", propertyIDs, today, tomorrow, arrivalStatuses).
		Find(&arrivals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load arrivals: %w", err)
	}
	err = s.DB.WithContext(ctx).
		Where("property_id IN ? AND check_out >= ? AND check_out < ? AND status = ?", propertyIDs, today, tomorrow, bookingModel.BookingStatusCheckedIn).
		Find(&departures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load departures: %w", err)
	}

	roomNumbers, err := s.roomNumbers(ctx, append(arrivals, departures...))
	if err != nil {
		return nil, err
	}

	add := func(bookings []bookingModel.Booking, movement string) {
		for _, b := range bookings {
			number, ok := roomNumbers[b.RoomID]
			if !ok {
				number = "N/A"
			}
			result = append(result, TodayBooking{
				ID:            b.ID,
				BookingNumber: b.BookingNumber,
				GuestName:     b.Guest.FullName(),
				RoomNumber:    number,
				CheckIn:       b.CheckIn,
				CheckOut:      b.CheckOut,
				Status:        b.Status.String(),
				Type:          movement,
			})
		}
	}
	add(arrivals, MovementCheckIn)
	add(departures, MovementCheckOut)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return result[i].Type == MovementCheckIn
		}
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

func (s *Service) roomNumbers(ctx context.Context, bookings []bookingModel.Booking) (map[string]string, error) {
	numbers := map[string]string{}
	if len(bookings) == 0 {
		return numbers, nil
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.RoomID)
	}

	var rooms []roomModel.Room
	if err := s.DB.WithContext(ctx).Select("id", "room_number").Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	for _, r := range rooms {
		numbers[r.ID] = r.RoomNumber
	}
	return numbers, nil
}
