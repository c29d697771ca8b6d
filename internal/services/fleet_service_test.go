package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkosteva/go-airport-backend/internal/storage"
)

// pngBytes is a minimal payload that sniffs as image/png.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func newFleetService(t *testing.T) *FleetService {
	t.Helper()
	store, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	return &FleetService{DB: newServiceDB(t), Images: store}
}

func TestCreateAirplane_GridValidation(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	at, err := svc.CreateAirplaneType(ctx, "Boeing 737-800")
	require.NoError(t, err)

	_, err = svc.CreateAirplane(ctx, "", 0, -1, at.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "rows")
	assert.Contains(t, verr.Fields, "seats_in_row")

	_, err = svc.CreateAirplane(ctx, "G-ABCD", 10, 6, 9999)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "airplane_type_id")

	a, err := svc.CreateAirplane(ctx, "G-ABCD", 10, 6, at.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, a.Capacity())
	assert.Equal(t, "Boeing 737-800", a.AirplaneType.Name)
}

func TestCreateAirplaneType_Duplicate(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	_, err := svc.CreateAirplaneType(ctx, "A320")
	require.NoError(t, err)
	_, err = svc.CreateAirplaneType(ctx, "A320")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["name"], "already exists")
}

func TestUploadImage_SuccessAndReplace(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	at, err := svc.CreateAirplaneType(ctx, "A320")
	require.NoError(t, err)
	a, err := svc.CreateAirplane(ctx, "F-TEST", 10, 6, at.ID)
	require.NoError(t, err)

	got, err := svc.UploadImage(ctx, a.ID, pngBytes)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ImagePath)

	blob, err := svc.Images.Get(got.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, blob)

	// Re-upload replaces, same key semantics (last write wins).
	got2, err := svc.UploadImage(ctx, a.ID, pngBytes)
	require.NoError(t, err)
	assert.Equal(t, got.ImagePath, got2.ImagePath)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	at, err := svc.CreateAirplaneType(ctx, "A320")
	require.NoError(t, err)
	a, err := svc.CreateAirplane(ctx, "F-TEST", 10, 6, at.ID)
	require.NoError(t, err)

	_, err = svc.UploadImage(ctx, a.ID, []byte("definitely not an image"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")
}

func TestUploadImage_UnknownAirplane(t *testing.T) {
	svc := newFleetService(t)
	_, err := svc.UploadImage(context.Background(), 9999, pngBytes)
	assert.ErrorIs(t, err, ErrAirplaneNotFound)
}

func TestDeleteAirplane_RemovesImageBlob(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	at, err := svc.CreateAirplaneType(ctx, "A320")
	require.NoError(t, err)
	a, err := svc.CreateAirplane(ctx, "F-TEST", 10, 6, at.ID)
	require.NoError(t, err)
	got, err := svc.UploadImage(ctx, a.ID, pngBytes)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAirplane(ctx, a.ID))
	_, err = svc.Images.Get(got.ImagePath)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestCrewCRUD_Validation(t *testing.T) {
	svc := newFleetService(t)
	ctx := context.Background()

	_, err := svc.CreateCrew(ctx, " ", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "first_name")
	assert.Contains(t, verr.Fields, "last_name")

	c, err := svc.CreateCrew(ctx, "  Anna ", "Petrova")
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", c.FullName())

	got, err := svc.UpdateCrew(ctx, c.ID, "Ann", "Petrova")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)

	require.NoError(t, svc.DeleteCrew(ctx, c.ID))
	_, err = svc.GetCrew(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCrewNotFound)
}
