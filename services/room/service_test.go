package room

import (
	"context"
	"errors"
	"testing"

	"keyless-stay/apperror"
	"keyless-stay/database/testdb"
	roomModel "keyless-stay/models/room"
	roomTypes "keyless-stay/types/room"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(propertyID, number string) roomTypes.RoomCreateRequest {
	return roomTypes.RoomCreateRequest{
		PropertyID: propertyID,
		RoomNumber: number,
		Name:       "Garden Room",
		Price:      decimal.NewFromInt(500),
	}
}

func TestCreateRoomCountsAndRejectsDuplicateNumber(t *testing.T) {
	db := testdb.New(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")

	r, err := svc.Create(ctx, createRequest(p.ID, "101"))
	require.NoError(t, err)
	assert.Equal(t, roomModel.RoomStatusAvailable, r.Status)
	assert.Equal(t, 2, r.Capacity)

	_, err = svc.Create(ctx, createRequest(p.ID, "101"))
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = svc.Create(ctx, createRequest(p.ID, "102"))
	require.NoError(t, err)

	stored, err := svc.Properties.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TotalRooms)
}

func TestCreateRoomOnUnknownProperty(t *testing.T) {
	db := testdb.New(t)
	svc := NewRoomService(db)

	_, err := svc.Create(context.Background(), createRequest("missing", "101"))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteFreesNumberAndDecrements(t *testing.T) {
	db := testdb.New(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")

	r, err := svc.Create(ctx, createRequest(p.ID, "101"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, r.ID))

	stored, err := svc.Properties.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.TotalRooms)

	rooms, err := svc.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = svc.Create(ctx, createRequest(p.ID, "101"))
	assert.NoError(t, err)
}

func TestUpdateRoomNumberUniqueness(t *testing.T) {
	db := testdb.New(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")

	r101, err := svc.Create(ctx, createRequest(p.ID, "101"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest(p.ID, "102"))
	require.NoError(t, err)

	taken := "102"
	_, err = svc.Update(ctx, r101.ID, roomTypes.RoomUpdateRequest{RoomNumber: &taken})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	same := "101"
	price := decimal.NewFromInt(650)
	updated, err := svc.Update(ctx, r101.ID, roomTypes.RoomUpdateRequest{RoomNumber: &same, Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
}

func TestSetStatusAndStats(t *testing.T) {
	db := testdb.New(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")

	r101 := testdb.SeedRoom(t, db, p.ID, "101", 500)
	r102 := testdb.SeedRoom(t, db, p.ID, "102", 500)
	testdb.SeedRoom(t, db, p.ID, "103", 500)

	require.NoError(t, svc.SetStatus(ctx, r101.ID, roomModel.RoomStatusMaintenance))
	require.NoError(t, svc.SetStatus(ctx, r102.ID, roomModel.RoomStatusCleaning))
	require.NoError(t, svc.SetStatus(ctx, r102.ID, roomModel.RoomStatusOccupied))

	err := svc.SetStatus(ctx, r101.ID, "broken")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	err = svc.SetStatus(ctx, "missing", roomModel.RoomStatusAvailable)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	stats, err := svc.Stats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Total: 3, Available: 1, Occupied: 1, Maintenance: 1}, stats)

	available, err := svc.ListAvailable(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "103", available[0].RoomNumber)
}
