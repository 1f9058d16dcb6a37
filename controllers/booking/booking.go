package booking

import (
	"keyless-stay/constants"
	"keyless-stay/middleware"
	bookingModel "keyless-stay/models/booking"
	bookingService "keyless-stay/services/booking"
	propertyService "keyless-stay/services/property"
	bookingTypes "keyless-stay/types/booking"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles booking HTTP requests
type BookingController struct {
	Bookings   *bookingService.Service
	Properties *propertyService.Service
}

// NewBookingController creates a new booking controller
func NewBookingController(bookings *bookingService.Service) *BookingController {
	return &BookingController{
		Bookings:   bookings,
		Properties: bookings.Rooms.Properties,
	}
}

func (bc *BookingController) authorizeProperty(c *fiber.Ctx, propertyID string) error {
	identity := middleware.GetIdentity(c)
	_, err := bc.Properties.AuthorizeOwner(c.UserContext(), propertyID, identity.CallerID)
	return err
}

// authorizeBooking loads the booking in :id and checks the caller owns its property
func (bc *BookingController) authorizeBooking(c *fiber.Ctx) (*bookingModel.Booking, error) {
	booking, err := bc.Bookings.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if err := bc.authorizeProperty(c, booking.PropertyID); err != nil {
		return nil, err
	}
	return booking, nil
}

// Store creates a pending booking from the public booking page
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to create booking")
	}

	actor := constants.ActorGuest
	if identity := middleware.GetIdentity(c); !identity.IsZero() {
		actor = identity.CallerID
	}

	booking, err := bc.Bookings.Create(c.UserContext(), req, actor)
	if err != nil {
		return utils.RespondError(c, err, "Failed to create booking")
	}
	return utils.Respond(c, fiber.StatusCreated, "Booking created successfully", booking)
}

// StoreAdmin creates, confirms and issues an access code in one step
func (bc *BookingController) StoreAdmin(c *fiber.Ctx) error {
	var req bookingTypes.AdminBookingCreateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to create booking")
	}
	if err := bc.authorizeProperty(c, req.PropertyID); err != nil {
		return utils.RespondError(c, err, "Failed to create booking")
	}

	identity := middleware.GetIdentity(c)
	booking, err := bc.Bookings.CreateAdmin(c.UserContext(), req, identity.CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to create booking")
	}
	return utils.Respond(c, fiber.StatusCreated, "Booking created and confirmed successfully", booking)
}

// Index searches the bookings of one property
func (bc *BookingController) Index(c *fiber.Ctx) error {
	var query bookingTypes.SearchQuery
	if err := utils.ParseQuery(c, &query); err != nil {
		return utils.RespondError(c, err, "Failed to load bookings")
	}
	if err := bc.authorizeProperty(c, query.PropertyID); err != nil {
		return utils.RespondError(c, err, "Failed to load bookings")
	}

	bookings, err := bc.Bookings.Search(c.UserContext(), query)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load bookings")
	}
	return utils.Respond(c, fiber.StatusOK, "Bookings retrieved successfully", bookings)
}

func (bc *BookingController) Show(c *fiber.Ctx) error {
	booking, err := bc.authorizeBooking(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load booking")
	}
	return utils.Respond(c, fiber.StatusOK, "Booking retrieved successfully", booking)
}

// History returns the status changes and payments of a booking
func (bc *BookingController) History(c *fiber.Ctx) error {
	booking, err := bc.authorizeBooking(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load booking history")
	}

	events, err := bc.Bookings.StatusHistory(c.UserContext(), booking.ID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load booking history")
	}
	payments, err := bc.Bookings.Payments(c.UserContext(), booking.ID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load booking history")
	}
	return utils.Respond(c, fiber.StatusOK, "Booking history retrieved successfully", fiber.Map{
		"status_events": events,
		"payments":      payments,
	})
}

// ShowByNumber is public. Owners of the property get the full booking, everyone else a reduced view.
func (bc *BookingController) ShowByNumber(c *fiber.Ctx) error {
	booking, err := bc.Bookings.FindByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return utils.RespondError(c, err, "Failed to load booking")
	}

	identity := middleware.GetIdentity(c)
	if !identity.IsZero() {
		owns, err := bc.Properties.IsOwner(c.UserContext(), booking.PropertyID, identity.CallerID)
		if err != nil {
			return utils.RespondError(c, err, "Failed to load booking")
		}
		if owns {
			return utils.Respond(c, fiber.StatusOK, "Booking retrieved successfully", booking)
		}
	}

	return utils.Respond(c, fiber.StatusOK, "Booking retrieved successfully", bookingTypes.PublicBookingView{
		BookingNumber: booking.BookingNumber,
		GuestName:     booking.Guest.FullName(),
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		Nights:        booking.Nights,
		Status:        booking.Status.String(),
		PaymentStatus: string(booking.PaymentStatus),
		TotalPrice:    booking.TotalPrice.StringFixed(2),
	})
}

// Today lists arrivals and departures of a property for the current day
func (bc *BookingController) Today(c *fiber.Ctx) error {
	propertyID := c.Params("propertyId")
	if err := bc.authorizeProperty(c, propertyID); err != nil {
		return utils.RespondError(c, err, "Failed to load today's bookings")
	}

	arrivals, err := bc.Bookings.TodayArrivals(c.UserContext(), propertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load today's bookings")
	}
	departures, err := bc.Bookings.TodayDepartures(c.UserContext(), propertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load today's bookings")
	}
	return utils.Respond(c, fiber.StatusOK, "Today's bookings retrieved successfully", fiber.Map{
		"check_ins":  arrivals,
		"check_outs": departures,
	})
}

func (bc *BookingController) Update(c *fiber.Ctx) error {
	var req bookingTypes.BookingUpdateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to update booking")
	}
	booking, err := bc.authorizeBooking(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update booking")
	}

	identity := middleware.GetIdentity(c)
	updated, err := bc.Bookings.Update(c.UserContext(), booking.ID, req, identity.CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update booking")
	}
	return utils.Respond(c, fiber.StatusOK, "Booking updated successfully", updated)
}

// UpdateStatus moves the booking to any status the lifecycle allows from its current one
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.StatusUpdateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to update booking status")
	}
	return bc.transition(c, bookingModel.BookingStatus(req.Status), req.Notes)
}

func (bc *BookingController) Confirm(c *fiber.Ctx) error {
	return bc.transition(c, bookingModel.BookingStatusConfirmed, "")
}

func (bc *BookingController) CheckIn(c *fiber.Ctx) error {
	return bc.transition(c, bookingModel.BookingStatusCheckedIn, "")
}

func (bc *BookingController) CheckOut(c *fiber.Ctx) error {
	return bc.transition(c, bookingModel.BookingStatusCheckedOut, "")
}

func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	return bc.transition(c, bookingModel.BookingStatusCancelled, c.Query("reason"))
}

func (bc *BookingController) transition(c *fiber.Ctx, to bookingModel.BookingStatus, note string) error {
	booking, err := bc.authorizeBooking(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update booking status")
	}

	identity := middleware.GetIdentity(c)
	updated, err := bc.Bookings.Transition(c.UserContext(), booking.ID, to, identity.CallerID, note)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update booking status")
	}
	return utils.Respond(c, fiber.StatusOK, "Booking status updated to "+to.String(), updated)
}

// Payment adds an amount to the booking's paid total
func (bc *BookingController) Payment(c *fiber.Ctx) error {
	var req bookingTypes.PaymentRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to record payment")
	}
	booking, err := bc.authorizeBooking(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to record payment")
	}

	identity := middleware.GetIdentity(c)
	updated, err := bc.Bookings.RecordPayment(c.UserContext(), booking.ID, req.Amount, bookingModel.PaymentMethod(req.Method), identity.CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to record payment")
	}
	return utils.Respond(c, fiber.StatusOK, "Payment recorded successfully", updated)
}
