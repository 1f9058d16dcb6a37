package access_code

import (
	"context"
	"errors"
	"testing"
	"time"

	"keyless-stay/apperror"
	"keyless-stay/database/testdb"
	accessCodeModel "keyless-stay/models/access_code"
	bookingModel "keyless-stay/models/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	booking *bookingModel.Booking
	now     time.Time
}

// newFixture books room 101 from Jan 10 to Jan 12 and pins the clock to Jan 10 14:00.
func newFixture(t *testing.T, status bookingModel.BookingStatus) *fixture {
	t.Helper()
	db := testdb.New(t)
	property := testdb.SeedProperty(t, db, "owner-1", "Baan Suan")
	room := testdb.SeedRoom(t, db, property.ID, "101", 500)
	booking := testdb.SeedBooking(t, db, room, testdb.Date(2025, time.January, 10), testdb.Date(2025, time.January, 12), status)

	now := time.Date(2025, time.January, 10, 14, 0, 0, 0, time.UTC)
	svc := NewAccessCodeService(db, 6, 24*time.Hour, nil)
	svc.Now = func() time.Time { return now }
	return &fixture{db: db, svc: svc, booking: booking, now: now}
}

// fixedCodes returns a code source that yields values in order and repeats the last one.
func fixedCodes(values ...string) (func(int) (string, error), *int) {
	calls := 0
	return func(int) (string, error) {
		i := calls
		if i >= len(values) {
			i = len(values) - 1
		}
		calls++
		return values[i], nil
	}, &calls
}

type recordingCheckIn struct {
	bookingIDs []string
}

func (r *recordingCheckIn) CheckInFromEntry(ctx context.Context, tx *gorm.DB, bookingID string) error {
	r.bookingIDs = append(r.bookingIDs, bookingID)
	return nil
}

func TestGenerateDefaultsToStayPlusGrace(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	assert.Len(t, code.Code, 6)
	assert.True(t, isNumeric(code.Code))
	assert.True(t, code.ValidFrom.Equal(testdb.Date(2025, time.January, 10)))
	assert.True(t, code.ValidUntil.Equal(testdb.Date(2025, time.January, 13)))
	assert.False(t, code.IsUsed)
	assert.False(t, code.IsRevoked)

	var booking bookingModel.Booking
	require.NoError(t, f.db.First(&booking, "id = ?", f.booking.ID).Error)
	require.NotNil(t, booking.AccessCode)
	assert.Equal(t, code.Code, *booking.AccessCode)

	events, err := f.svc.History(ctx, code.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, accessCodeModel.EventCreated, events[0].Action)
}

func TestGenerateRejectsInvertedWindow(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	from := testdb.Date(2025, time.January, 12)
	until := testdb.Date(2025, time.January, 11)

	_, err := f.svc.Generate(context.Background(), GenerateInput{
		BookingID:  f.booking.ID,
		ValidFrom:  &from,
		ValidUntil: &until,
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestGenerateUnknownBooking(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)

	_, err := f.svc.Generate(context.Background(), GenerateInput{BookingID: "missing"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGenerateExhaustsAfterTenDraws(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	source, calls := fixedCodes("111111")
	f.svc.CodeSource = source

	_, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	_, err = f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	assert.True(t, errors.Is(err, apperror.ErrGenerationExhausted))
	assert.Equal(t, 11, *calls)

	codes, err := f.svc.ListByBooking(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Len(t, codes, 1)
}

func TestGenerateRetriesPastCollision(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	source, _ := fixedCodes("111111", "111111", "222222")
	f.svc.CodeSource = source

	first, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	second, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	assert.Equal(t, "111111", first.Code)
	assert.Equal(t, "222222", second.Code)
}

func TestRevokedValueMayBeReissued(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	source, _ := fixedCodes("333333")
	f.svc.CodeSource = source

	first, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	_, err = f.svc.Revoke(ctx, first.ID, "lost", "owner-1")
	require.NoError(t, err)

	second, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	assert.Equal(t, "333333", second.Code)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestValidateChecksInOrder(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	res, err := f.svc.Validate(ctx, code.Code, f.booking.PropertyID)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, MsgValid, res.Message)
	require.NotNil(t, res.Booking)
	assert.Equal(t, f.booking.BookingNumber, res.Booking.BookingNumber)
	assert.Equal(t, "Somchai Jaidee", res.Booking.GuestName)
	assert.Equal(t, "101", res.Booking.RoomNumber)

	res, err = f.svc.Validate(ctx, code.Code, "other-property")
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Equal(t, MsgWrongProperty, res.Message)

	f.svc.Now = func() time.Time { return testdb.Date(2025, time.January, 9) }
	res, err = f.svc.Validate(ctx, code.Code, "")
	require.NoError(t, err)
	assert.Equal(t, MsgNotYetActive, res.Message)

	f.svc.Now = func() time.Time { return testdb.Date(2025, time.January, 13).Add(time.Second) }
	res, err = f.svc.Validate(ctx, code.Code, "")
	require.NoError(t, err)
	assert.Equal(t, MsgExpired, res.Message)

	// wrong property wins over expiry
	res, err = f.svc.Validate(ctx, code.Code, "other-property")
	require.NoError(t, err)
	assert.Equal(t, MsgWrongProperty, res.Message)
}

func TestValidateUnknownCode(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)

	res, err := f.svc.Validate(context.Background(), "000000", "")
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Equal(t, MsgInvalid, res.Message)
	assert.Nil(t, res.Booking)
}

func TestValidateRejectsMalformedCode(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		_, err := f.svc.Validate(context.Background(), code, "")
		assert.True(t, errors.Is(err, apperror.ErrValidation), code)
	}
}

func TestRevokedCodeReadsAsUnknown(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	_, err = f.svc.Revoke(ctx, code.ID, "guest request", "owner-1")
	require.NoError(t, err)

	res, err := f.svc.Validate(ctx, code.Code, f.booking.PropertyID)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Equal(t, MsgInvalid, res.Message)
}

func TestRevokeTwiceKeepsFirstTimestamp(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	first, err := f.svc.Revoke(ctx, code.ID, "lost card", "owner-1")
	require.NoError(t, err)
	require.NotNil(t, first.RevokedAt)

	f.svc.Now = func() time.Time { return f.now.Add(time.Hour) }
	second, err := f.svc.Revoke(ctx, code.ID, "found card", "owner-1")
	require.NoError(t, err)

	stored, err := f.svc.FindByID(ctx, code.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRevoked)
	assert.Equal(t, "found card", stored.RevokedReason)
	require.NotNil(t, stored.RevokedAt)
	assert.True(t, stored.RevokedAt.Equal(f.now))
	assert.Equal(t, "found card", second.RevokedReason)
}

func TestRevokeRequiresReason(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)

	_, err := f.svc.Revoke(context.Background(), "any", "  ", "owner-1")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUseIsSingleUse(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()
	handler := &recordingCheckIn{}
	f.svc.SetCheckInHandler(handler)

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	res, err := f.svc.Use(ctx, code.Code, f.booking.PropertyID)
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, MsgGranted, res.Message)
	assert.Equal(t, []string{f.booking.ID}, handler.bookingIDs)

	stored, err := f.svc.FindByID(ctx, code.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
	require.NotNil(t, stored.UsedAt)

	res, err = f.svc.Use(ctx, code.Code, f.booking.PropertyID)
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Equal(t, MsgUsed, res.Message)
	assert.Len(t, handler.bookingIDs, 1)
}

func TestUseSkipsCheckInUnlessConfirmed(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusCheckedIn)
	ctx := context.Background()
	handler := &recordingCheckIn{}
	f.svc.SetCheckInHandler(handler)

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	res, err := f.svc.Use(ctx, code.Code, "")
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Empty(t, handler.bookingIDs)
}

func TestUseDeniedCodeChangesNothing(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	code, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	res, err := f.svc.Use(ctx, code.Code, "other-property")
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Equal(t, MsgWrongProperty, res.Message)

	stored, err := f.svc.FindByID(ctx, code.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsUsed)
}

func TestRegenerateLeavesOneActiveCode(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	fresh, err := f.svc.Regenerate(ctx, RegenerateInput{BookingID: f.booking.ID, Actor: "owner-1"})
	require.NoError(t, err)

	codes, err := f.svc.ListByBooking(ctx, f.booking.ID)
	require.NoError(t, err)
	require.Len(t, codes, 3)

	active := 0
	for _, c := range codes {
		if !c.IsRevoked {
			active++
			assert.Equal(t, fresh.ID, c.ID)
			continue
		}
		assert.Equal(t, accessCodeModel.ReasonRegenerated, c.RevokedReason)
	}
	assert.Equal(t, 1, active)

	found, err := f.svc.FindActiveByBooking(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, found.ID)
}

func TestCleanupExpiredRevokesOnlyClosedWindows(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	pastFrom := testdb.Date(2025, time.January, 1)
	pastUntil := testdb.Date(2025, time.January, 2)
	old, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID, ValidFrom: &pastFrom, ValidUntil: &pastUntil})
	require.NoError(t, err)
	current, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)

	listed, err := f.svc.ListByProperty(ctx, f.booking.PropertyID, true)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	count, err := f.svc.CleanupExpired(ctx, f.booking.PropertyID, "system")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := f.svc.FindByID(ctx, old.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRevoked)
	assert.Equal(t, accessCodeModel.ReasonExpired, stored.RevokedReason)

	listed, err = f.svc.ListByProperty(ctx, f.booking.PropertyID, true)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, current.ID, listed[0].ID)
	assert.Equal(t, f.booking.BookingNumber, listed[0].BookingNumber)
	require.NotNil(t, listed[0].GuestName)
	assert.Equal(t, "Somchai Jaidee", *listed[0].GuestName)
	assert.Equal(t, accessCodeModel.CodeStatusActive, listed[0].Status)

	events, err := f.svc.History(ctx, old.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, accessCodeModel.EventExpired, events[1].Action)
}

func TestRevokeByBookingCountsOnlyLiveCodes(t *testing.T) {
	f := newFixture(t, bookingModel.BookingStatusConfirmed)
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, GenerateInput{BookingID: f.booking.ID})
	require.NoError(t, err)
	_, err = f.svc.Revoke(ctx, first.ID, "lost", "owner-1")
	require.NoError(t, err)

	count, err := f.svc.RevokeByBooking(ctx, f.booking.ID, accessCodeModel.ReasonBookingCancelled, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.svc.FindActiveByBooking(ctx, f.booking.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRandomNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := RandomNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.True(t, isNumeric(code))
	}
}
