package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodeInput(t *testing.T, raw string) models.CollectionPointInput {
	t.Helper()
	var in models.CollectionPointInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func decodePatch(t *testing.T, raw string) models.CollectionPointPatch {
	t.Helper()
	var p models.CollectionPointPatch
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

const validInput = `{
	"name": "Asha",
	"email": "asha@example.com",
	"address": "12 MG Road",
	"latitude": 12.97,
	"longitude": "77.59",
	"wasteType": "smartphones",
	"condition": "good",
	"yearsOfUse": 3,
	"status": "approved"
}`

func TestCollectionPointService_Create(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	owner := users.add("Asha", "asha@example.com")

	cp, err := svc.Create(context.Background(), owner, decodeInput(t, validInput))
	require.NoError(t, err)

	assert.Equal(t, owner.ID, cp.UserID)
	assert.Equal(t, "Asha", cp.UserName)
	assert.Equal(t, models.StatusPending, cp.Status)
	assert.Equal(t, "12.97", cp.Latitude)
	assert.False(t, cp.ID.IsZero())
}

func TestCollectionPointService_Create_Validation(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	owner := users.add("Asha", "asha@example.com")

	_, err := svc.Create(context.Background(), owner, decodeInput(t, `{"name":"Asha","email":"nope"}`))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Equal(t, []string{
		"Valid email is required",
		"Address is required",
		"Location coordinates are required",
		"Waste type is required",
		"Condition is required",
		"Valid years of use is required",
	}, appErr.Errors)
	assert.Empty(t, points.byID)
}

func TestCollectionPointService_Create_SchemaRejectsEnums(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	owner := users.add("Asha", "asha@example.com")

	in := decodeInput(t, validInput)
	in.WasteType = "fridges"
	in.YearsOfUse = models.Scalar{Raw: "80", Present: true}

	_, err := svc.Create(context.Background(), owner, in)
	classified := apperrors.Classify(err)
	assert.Equal(t, apperrors.Validation, classified.Kind)
	assert.Equal(t, "`fridges` is not a valid waste type, Years of use must be between 0 and 50", classified.Message)
}

func TestCollectionPointService_Create_YearsOutOfRange(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	owner := users.add("Asha", "asha@example.com")

	in := decodeInput(t, validInput)
	in.YearsOfUse = models.Scalar{Raw: "51", Present: true}

	_, err := svc.Create(context.Background(), owner, in)
	classified := apperrors.Classify(err)
	assert.Equal(t, apperrors.Validation, classified.Kind)
	assert.Equal(t, "Years of use must be between 0 and 50", classified.Message)
	assert.Equal(t, 400, classified.Kind.HTTPStatus())
	assert.Empty(t, points.byID)
}

func TestCollectionPointService_Create_NonFiniteYears(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	owner := users.add("Asha", "asha@example.com")

	for _, raw := range []string{"NaN", "Inf", "-Infinity", "1e999"} {
		in := decodeInput(t, validInput)
		in.YearsOfUse = models.Scalar{Raw: raw, Present: true}

		_, err := svc.Create(context.Background(), owner, in)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr, raw)
		assert.Equal(t, apperrors.Validation, appErr.Kind, raw)
		assert.Equal(t, []string{"Valid years of use is required"}, appErr.Errors, raw)
	}
	assert.Empty(t, points.byID)
}

func TestCollectionPointService_ListMine(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	asha := users.add("Asha", "asha@example.com")
	ravi := users.add("Ravi", "ravi@example.com")

	first := points.seed(asha, "old", models.WasteComputers, models.StatusPending)
	second := points.seed(asha, "new", models.WastePrinters, models.StatusApproved)
	points.seed(ravi, "other", models.WasteGaming, models.StatusPending)

	mine, err := svc.ListMine(context.Background(), asha)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestCollectionPointService_OwnershipGate(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	asha := users.add("Asha", "asha@example.com")
	ravi := users.add("Ravi", "ravi@example.com")
	cp := points.seed(asha, "laptop", models.WasteComputers, models.StatusPending)
	ctx := context.Background()

	_, err := svc.Get(ctx, ravi, cp.ID.Hex())
	requireKind(t, err, apperrors.Forbidden, "Not authorized to access this collection point")

	_, err = svc.Update(ctx, ravi, cp.ID.Hex(), decodePatch(t, `{"name":"stolen"}`))
	requireKind(t, err, apperrors.Forbidden, "Not authorized to update this collection point")

	err = svc.Delete(ctx, ravi, cp.ID.Hex())
	requireKind(t, err, apperrors.Forbidden, "Not authorized to delete this collection point")

	got, err := svc.Get(ctx, asha, cp.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "laptop", got.Name)
}

func TestCollectionPointService_NotFound(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	asha := users.add("Asha", "asha@example.com")
	ctx := context.Background()

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := svc.Get(ctx, asha, id)
		requireKind(t, err, apperrors.NotFound, "Collection point not found")

		err = svc.Delete(ctx, asha, id)
		requireKind(t, err, apperrors.NotFound, "Collection point not found")
	}
}

func TestCollectionPointService_Update(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	asha := users.add("Asha", "asha@example.com")
	cp := points.seed(asha, "laptop", models.WasteComputers, models.StatusPending)
	ctx := context.Background()

	patch := decodePatch(t, `{"name":"old laptop","yearsOfUse":"9","status":"approved","userId":"65f000000000000000000009"}`)
	updated, err := svc.Update(ctx, asha, cp.ID.Hex(), patch)
	require.NoError(t, err)

	assert.Equal(t, "old laptop", updated.Name)
	assert.Equal(t, 9.0, updated.YearsOfUse)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, asha.ID, updated.UserID)
	assert.True(t, updated.UpdatedAt.After(cp.UpdatedAt))

	_, err = svc.Update(ctx, asha, cp.ID.Hex(), decodePatch(t, `{"condition":"mint"}`))
	assert.Equal(t, apperrors.Validation, apperrors.Classify(err).Kind)
	assert.Equal(t, models.ConditionGood, points.byID[cp.ID].Condition)
}

func TestCollectionPointService_Delete(t *testing.T) {
	users, points := newFakeUsers(), newFakePoints()
	svc := NewCollectionPointService(points, testLog)
	asha := users.add("Asha", "asha@example.com")
	cp := points.seed(asha, "laptop", models.WasteComputers, models.StatusPending)

	require.NoError(t, svc.Delete(context.Background(), asha, cp.ID.Hex()))
	assert.Empty(t, points.byID)
}
