package property

import (
	"keyless-stay/middleware"
	propertyService "keyless-stay/services/property"
	propertyTypes "keyless-stay/types/property"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

// PropertyController handles property HTTP requests
type PropertyController struct {
	Properties *propertyService.Service
}

func NewPropertyController(properties *propertyService.Service) *PropertyController {
	return &PropertyController{Properties: properties}
}

// Store creates a property owned by the caller
func (pc *PropertyController) Store(c *fiber.Ctx) error {
	var req propertyTypes.PropertyCreateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to create property")
	}

	identity := middleware.GetIdentity(c)
	property, err := pc.Properties.Create(c.UserContext(), identity.CallerID, req)
	if err != nil {
		return utils.RespondError(c, err, "Failed to create property")
	}
	return utils.Respond(c, fiber.StatusCreated, "Property created successfully", property)
}

// Index lists the caller's properties
func (pc *PropertyController) Index(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	properties, err := pc.Properties.ListByOwner(c.UserContext(), identity.CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load properties")
	}
	return utils.Respond(c, fiber.StatusOK, "Properties retrieved successfully", properties)
}

func (pc *PropertyController) Show(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	property, err := pc.Properties.AuthorizeOwner(c.UserContext(), c.Params("id"), identity.CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load property")
	}
	return utils.Respond(c, fiber.StatusOK, "Property retrieved successfully", property)
}

func (pc *PropertyController) Update(c *fiber.Ctx) error {
	var req propertyTypes.PropertyUpdateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to update property")
	}

	identity := middleware.GetIdentity(c)
	property, err := pc.Properties.Update(c.UserContext(), c.Params("id"), identity.CallerID, req)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update property")
	}
	return utils.Respond(c, fiber.StatusOK, "Property updated successfully", property)
}

// Destroy deactivates the property; its bookings stay readable
func (pc *PropertyController) Destroy(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if err := pc.Properties.Delete(c.UserContext(), c.Params("id"), identity.CallerID); err != nil {
		return utils.RespondError(c, err, "Failed to delete property")
	}
	return utils.Respond(c, fiber.StatusOK, "Property deleted successfully", nil)
}
