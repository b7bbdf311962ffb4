package query

import (
	"testing"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuilder_EmptyMatchesAll(t *testing.T) {
	f := New().StatusEquals("all").SearchAny("   ", AdminSearchFields...).Build()

	assert.True(t, f.Empty())
	assert.Equal(t, bson.D{}, f.BSON())
	assert.True(t, f.Match(&models.CollectionPoint{}))
}

func TestBuilder_StatusAndSearch_BSON(t *testing.T) {
	f := New().StatusEquals("approved").SearchAny("phone", AdminSearchFields...).Build()

	doc := f.BSON()
	require.Len(t, doc, 2)
	assert.Equal(t, bson.E{Key: "status", Value: "approved"}, doc[0])
	assert.Equal(t, "$or", doc[1].Key)

	or, ok := doc[1].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: "phone", Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"wasteType": primitive.Regex{Pattern: "phone", Options: "i"}}, or[3])
}

func TestBuilder_SearchEscapesPattern(t *testing.T) {
	f := New().SearchAny("a.b(", FieldName).Build()

	or := f.BSON()[0].Value.(bson.A)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: `a\.b\(`, Options: "i"}}, or[0])

	assert.True(t, f.Match(&models.CollectionPoint{Name: "xA.B(y"}))
	assert.False(t, f.Match(&models.CollectionPoint{Name: "axb("}))
}

func TestFilter_Match_StatusAndSearch(t *testing.T) {
	f := New().StatusEquals("approved").SearchAny("phone", AdminSearchFields...).Build()

	points := []models.CollectionPoint{
		{Name: "Old Phone", Status: models.StatusApproved},
		{Email: "PHONEguy@example.com", Status: models.StatusApproved},
		{WasteType: models.WasteSmartphones, Status: models.StatusApproved},
		{Address: "Phone Street", Status: models.StatusPending},
		{Name: "Laptop", Status: models.StatusApproved},
	}

	var matched []int
	for i := range points {
		if f.Match(&points[i]) {
			matched = append(matched, i)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, matched)
}

func TestBuilder_OwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	f := New().OwnedBy(owner).Build()

	assert.Equal(t, bson.D{{Key: "userId", Value: owner}}, f.BSON())
	assert.True(t, f.Match(&models.CollectionPoint{UserID: owner}))
	assert.False(t, f.Match(&models.CollectionPoint{UserID: primitive.NewObjectID()}))
}
