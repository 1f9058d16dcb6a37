package access_code

import (
	"time"

	"keyless-stay/apperror"
	"keyless-stay/middleware"
	accessCodeService "keyless-stay/services/access_code"
	bookingService "keyless-stay/services/booking"
	"keyless-stay/services/notification"
	propertyService "keyless-stay/services/property"
	accessCodeTypes "keyless-stay/types/access_code"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

// CodeInvalid is the error code returned when a door entry is refused
const CodeInvalid = "CODE_INVALID"

// AccessCodeController handles access code HTTP requests
type AccessCodeController struct {
	AccessCodes *accessCodeService.Service
	Bookings    *bookingService.Service
	Properties  *propertyService.Service
}

func NewAccessCodeController(accessCodes *accessCodeService.Service, bookings *bookingService.Service) *AccessCodeController {
	return &AccessCodeController{
		AccessCodes: accessCodes,
		Bookings:    bookings,
		Properties:  bookings.Rooms.Properties,
	}
}

func (ac *AccessCodeController) authorizeProperty(c *fiber.Ctx, propertyID string) error {
	identity := middleware.GetIdentity(c)
	_, err := ac.Properties.AuthorizeOwner(c.UserContext(), propertyID, identity.CallerID)
	return err
}

func (ac *AccessCodeController) authorizeBooking(c *fiber.Ctx, bookingID string) error {
	booking, err := ac.Bookings.FindByID(c.UserContext(), bookingID)
	if err != nil {
		return err
	}
	return ac.authorizeProperty(c, booking.PropertyID)
}

type generatedCode struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	BookingID  string    `json:"booking_id"`
}

// Generate issues an additional code for a booking
func (ac *AccessCodeController) Generate(c *fiber.Ctx) error {
	var req accessCodeTypes.GenerateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to generate access code")
	}
	if err := ac.authorizeBooking(c, req.BookingID); err != nil {
		return utils.RespondError(c, err, "Failed to generate access code")
	}

	in := accessCodeService.GenerateInput{
		BookingID:    req.BookingID,
		NotifyGuest:  req.NotifyGuest,
		NotifyMethod: notification.Method(req.NotifyMethod),
		Actor:        middleware.GetIdentity(c).CallerID,
	}
	if req.ValidFrom != nil {
		in.ValidFrom = &req.ValidFrom.Time
	}
	if req.ValidUntil != nil {
		in.ValidUntil = &req.ValidUntil.Time
	}

	code, err := ac.AccessCodes.Generate(c.UserContext(), in)
	if err != nil {
		return utils.RespondError(c, err, "Failed to generate access code")
	}
	return utils.Respond(c, fiber.StatusCreated, "Access code generated successfully", generatedCode{
		ID:         code.ID,
		Code:       code.Code,
		ValidFrom:  code.ValidFrom,
		ValidUntil: code.ValidUntil,
		BookingID:  code.BookingID,
	})
}

// Validate is public. An unusable code is a normal answer, not an error.
func (ac *AccessCodeController) Validate(c *fiber.Ctx) error {
	var req accessCodeTypes.ValidateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to validate access code")
	}

	result, err := ac.AccessCodes.Validate(c.UserContext(), req.Code, req.PropertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to validate access code")
	}
	return utils.Respond(c, fiber.StatusOK, result.Message, result)
}

// Use is called by the door terminal. A refused code answers 400 with CODE_INVALID.
func (ac *AccessCodeController) Use(c *fiber.Ctx) error {
	var req accessCodeTypes.UseRequest
	if err := utils.ParseOptionalBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to use access code")
	}

	result, err := ac.AccessCodes.Use(c.UserContext(), c.Params("code"), req.PropertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to use access code")
	}
	if !result.Granted {
		return utils.Respond(c, fiber.StatusBadRequest, result.Message, fiber.Map{"code": CodeInvalid})
	}
	return utils.Respond(c, fiber.StatusOK, result.Message, result)
}

func (ac *AccessCodeController) Revoke(c *fiber.Ctx) error {
	var req accessCodeTypes.RevokeRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to revoke access code")
	}

	code, err := ac.AccessCodes.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err, "Failed to revoke access code")
	}
	if err := ac.authorizeProperty(c, code.PropertyID); err != nil {
		return utils.RespondError(c, err, "Failed to revoke access code")
	}

	revoked, err := ac.AccessCodes.Revoke(c.UserContext(), code.ID, req.Reason, middleware.GetIdentity(c).CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to revoke access code")
	}
	return utils.Respond(c, fiber.StatusOK, "Access code revoked successfully", revoked)
}

// Regenerate replaces every code of the booking with a new one and notifies the guest
func (ac *AccessCodeController) Regenerate(c *fiber.Ctx) error {
	var req accessCodeTypes.RegenerateRequest
	if err := utils.ParseOptionalBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to regenerate access code")
	}

	bookingID := c.Params("bookingId")
	if err := ac.authorizeBooking(c, bookingID); err != nil {
		return utils.RespondError(c, err, "Failed to regenerate access code")
	}

	code, err := ac.AccessCodes.Regenerate(c.UserContext(), accessCodeService.RegenerateInput{
		BookingID:    bookingID,
		NotifyGuest:  req.ShouldNotify(),
		NotifyMethod: notification.Method(req.NotifyMethod),
		Actor:        middleware.GetIdentity(c).CallerID,
	})
	if err != nil {
		return utils.RespondError(c, err, "Failed to regenerate access code")
	}
	return utils.Respond(c, fiber.StatusOK, "Access code regenerated successfully", generatedCode{
		ID:         code.ID,
		Code:       code.Code,
		ValidFrom:  code.ValidFrom,
		ValidUntil: code.ValidUntil,
		BookingID:  code.BookingID,
	})
}

// Cleanup revokes every expired code of a property
func (ac *AccessCodeController) Cleanup(c *fiber.Ctx) error {
	propertyID := c.Params("propertyId")
	if err := ac.authorizeProperty(c, propertyID); err != nil {
		return utils.RespondError(c, err, "Failed to clean up access codes")
	}

	count, err := ac.AccessCodes.CleanupExpired(c.UserContext(), propertyID, middleware.GetIdentity(c).CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to clean up access codes")
	}
	return utils.Respond(c, fiber.StatusOK, "Expired access codes cleaned up", fiber.Map{"count": count})
}

// Index lists the non-revoked codes of a property
func (ac *AccessCodeController) Index(c *fiber.Ctx) error {
	var query accessCodeTypes.ListQuery
	if err := utils.ParseQuery(c, &query); err != nil {
		return utils.RespondError(c, err, "Failed to load access codes")
	}
	if err := ac.authorizeProperty(c, query.PropertyID); err != nil {
		return utils.RespondError(c, err, "Failed to load access codes")
	}

	codes, err := ac.AccessCodes.ListByProperty(c.UserContext(), query.PropertyID, query.IncludeExpired)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load access codes")
	}
	return utils.Respond(c, fiber.StatusOK, "Access codes retrieved successfully", codes)
}

// ByBooking lists every code a booking ever had, newest first
func (ac *AccessCodeController) ByBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")
	if bookingID == "" {
		return utils.RespondError(c, apperror.Validation("bookingId is required"), "")
	}
	if err := ac.authorizeBooking(c, bookingID); err != nil {
		return utils.RespondError(c, err, "Failed to load access codes")
	}

	codes, err := ac.AccessCodes.ListByBooking(c.UserContext(), bookingID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load access codes")
	}
	return utils.Respond(c, fiber.StatusOK, "Access codes retrieved successfully", codes)
}

// History returns the audit trail of one code
func (ac *AccessCodeController) History(c *fiber.Ctx) error {
	code, err := ac.AccessCodes.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err, "Failed to load access code history")
	}
	if err := ac.authorizeProperty(c, code.PropertyID); err != nil {
		return utils.RespondError(c, err, "Failed to load access code history")
	}

	events, err := ac.AccessCodes.History(c.UserContext(), code.ID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load access code history")
	}
	return utils.Respond(c, fiber.StatusOK, "Access code history retrieved successfully", events)
}
