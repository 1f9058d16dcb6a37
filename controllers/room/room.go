package room

import (
	"keyless-stay/middleware"
	roomModel "keyless-stay/models/room"
	roomService "keyless-stay/services/room"
	roomTypes "keyless-stay/types/room"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

// RoomController handles room HTTP requests. Every operation is scoped to a property the caller owns.
type RoomController struct {
	Rooms *roomService.Service
}

func NewRoomController(rooms *roomService.Service) *RoomController {
	return &RoomController{Rooms: rooms}
}

// authorizeRoom loads an active room and checks the caller owns its property
func (rc *RoomController) authorizeRoom(c *fiber.Ctx) (*roomModel.Room, error) {
	room, err := rc.Rooms.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	identity := middleware.GetIdentity(c)
	if _, err := rc.Rooms.Properties.AuthorizeOwner(c.UserContext(), room.PropertyID, identity.CallerID); err != nil {
		return nil, err
	}
	return room, nil
}

func (rc *RoomController) Store(c *fiber.Ctx) error {
	var req roomTypes.RoomCreateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to create room")
	}

	identity := middleware.GetIdentity(c)
	if _, err := rc.Rooms.Properties.AuthorizeOwner(c.UserContext(), req.PropertyID, identity.CallerID); err != nil {
		return utils.RespondError(c, err, "Failed to create room")
	}

	room, err := rc.Rooms.Create(c.UserContext(), req)
	if err != nil {
		return utils.RespondError(c, err, "Failed to create room")
	}
	return utils.Respond(c, fiber.StatusCreated, "Room created successfully", room)
}

func (rc *RoomController) Index(c *fiber.Ctx) error {
	var query roomTypes.RoomListQuery
	if err := utils.ParseQuery(c, &query); err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}

	identity := middleware.GetIdentity(c)
	if _, err := rc.Rooms.Properties.AuthorizeOwner(c.UserContext(), query.PropertyID, identity.CallerID); err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}

	rooms, err := rc.Rooms.ListByProperty(c.UserContext(), query.PropertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}
	return utils.Respond(c, fiber.StatusOK, "Rooms retrieved successfully", rooms)
}

// Available lists rooms whose tracked status is available. It does not look at bookings.
func (rc *RoomController) Available(c *fiber.Ctx) error {
	var query roomTypes.RoomListQuery
	if err := utils.ParseQuery(c, &query); err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}

	identity := middleware.GetIdentity(c)
	if _, err := rc.Rooms.Properties.AuthorizeOwner(c.UserContext(), query.PropertyID, identity.CallerID); err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}

	rooms, err := rc.Rooms.ListAvailable(c.UserContext(), query.PropertyID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load rooms")
	}
	return utils.Respond(c, fiber.StatusOK, "Available rooms retrieved successfully", rooms)
}

func (rc *RoomController) Update(c *fiber.Ctx) error {
	var req roomTypes.RoomUpdateRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to update room")
	}
	room, err := rc.authorizeRoom(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update room")
	}

	updated, err := rc.Rooms.Update(c.UserContext(), room.ID, req)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update room")
	}
	return utils.Respond(c, fiber.StatusOK, "Room updated successfully", updated)
}

// UpdateStatus is the manual override of the room status tracker
func (rc *RoomController) UpdateStatus(c *fiber.Ctx) error {
	var req roomTypes.RoomStatusRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err, "Failed to update room status")
	}
	room, err := rc.authorizeRoom(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to update room status")
	}

	if err := rc.Rooms.SetStatus(c.UserContext(), room.ID, roomModel.RoomStatus(req.Status)); err != nil {
		return utils.RespondError(c, err, "Failed to update room status")
	}
	room.Status = roomModel.RoomStatus(req.Status)
	return utils.Respond(c, fiber.StatusOK, "Room status updated successfully", room)
}

func (rc *RoomController) Destroy(c *fiber.Ctx) error {
	room, err := rc.authorizeRoom(c)
	if err != nil {
		return utils.RespondError(c, err, "Failed to delete room")
	}
	if err := rc.Rooms.Delete(c.UserContext(), room.ID); err != nil {
		return utils.RespondError(c, err, "Failed to delete room")
	}
	return utils.Respond(c, fiber.StatusOK, "Room deleted successfully", nil)
}
