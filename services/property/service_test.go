package property

import (
	"context"
	"errors"
	"testing"

	"keyless-stay/apperror"
	"keyless-stay/database/testdb"
	propertyModel "keyless-stay/models/property"
	propertyTypes "keyless-stay/types/property"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Baan Suan Resort":     "baan-suan-resort",
		"  Sea  View -- Hut! ": "sea-view-hut",
		"บ้านสวน Chiang Mai":   "บ้านสวน-chiang-mai",
		"!!!":                  "property",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCreateAddsSuffixOnSlugCollision(t *testing.T) {
	db := testdb.New(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "owner-2", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)
	third, err := svc.Create(ctx, "owner-2", propertyTypes.PropertyCreateRequest{Name: "baan suan"})
	require.NoError(t, err)

	assert.Equal(t, "baan-suan", first.Slug)
	assert.Equal(t, "baan-suan-1", second.Slug)
	assert.Equal(t, "baan-suan-2", third.Slug)
	assert.Equal(t, "14:00", first.CheckInTime)
	assert.Equal(t, "12:00", first.CheckOutTime)
	assert.True(t, first.IsActive)
}

func TestUpdateRegeneratesSlugOnlyOnRename(t *testing.T) {
	db := testdb.New(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)

	same := "Baan Suan"
	address := "Chiang Mai"
	p, err = svc.Update(ctx, p.ID, "owner-1", propertyTypes.PropertyUpdateRequest{Name: &same, Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "baan-suan", p.Slug)
	assert.Equal(t, address, p.Address)

	renamed := "River House"
	p, err = svc.Update(ctx, p.ID, "owner-1", propertyTypes.PropertyUpdateRequest{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "river-house", p.Slug)
}

func TestOwnershipChecks(t *testing.T) {
	db := testdb.New(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)

	owns, err := svc.IsOwner(ctx, p.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, owns)

	owns, err = svc.IsOwner(ctx, p.ID, "owner-2")
	require.NoError(t, err)
	assert.False(t, owns)

	name := "Stolen"
	_, err = svc.Update(ctx, p.ID, "owner-2", propertyTypes.PropertyUpdateRequest{Name: &name})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	err = svc.Delete(ctx, p.ID, "owner-2")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestDeleteIsSoft(t *testing.T) {
	db := testdb.New(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID, "owner-1"))

	_, err = svc.FindByID(ctx, p.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	var stored propertyModel.Property
	require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
	assert.False(t, stored.IsActive)

	listed, err := svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	// the slug is free again
	again, err := svc.Create(ctx, "owner-1", propertyTypes.PropertyCreateRequest{Name: "Baan Suan"})
	require.NoError(t, err)
	assert.Equal(t, "baan-suan", again.Slug)
}

func TestAdjustRoomCountFloorsAtZero(t *testing.T) {
	db := testdb.New(t)
	svc := NewPropertyService(db)
	ctx := context.Background()
	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")

	require.NoError(t, svc.AdjustRoomCount(ctx, p.ID, 2))
	require.NoError(t, svc.AdjustRoomCount(ctx, p.ID, -5))

	stored, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.TotalRooms)
}
