package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WasteType is the category of electronics being handed in.
type WasteType string

const (
	WasteComputers   WasteType = "computers"
	WasteSmartphones WasteType = "smartphones"
	WasteTelevisions WasteType = "televisions"
	WastePrinters    WasteType = "printers"
	WasteGaming      WasteType = "gaming"
	WasteBatteries   WasteType = "batteries"
	WasteAppliances  WasteType = "appliances"
	WasteOther       WasteType = "other"
)

var WasteTypes = []WasteType{
	WasteComputers, WasteSmartphones, WasteTelevisions, WastePrinters,
	WasteGaming, WasteBatteries, WasteAppliances, WasteOther,
}

func (w WasteType) Valid() bool {
	for _, v := range WasteTypes {
		if v == w {
			return true
		}
	}
	return false
}

// Condition is the physical state of the item.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionBroken    Condition = "broken"
)

var Conditions = []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionBroken}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if v == c {
			return true
		}
	}
	return false
}

// Status is the admin-controlled review state of a collection point.
// Valid values: "pending", "approved", "rejected".
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

const (
	MinYearsOfUse = 0
	MaxYearsOfUse = 50
)

// CollectionPoint is a user-submitted pickup request for an e-waste item.
// Latitude and longitude stay as text so the submitter's precision survives.
type CollectionPoint struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Owner
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	UserName string             `bson:"userName" json:"userName"`

	// Contact and location
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Address   string `bson:"address" json:"address"`
	Latitude  string `bson:"latitude" json:"latitude"`
	Longitude string `bson:"longitude" json:"longitude"`

	// Item
	WasteType  WasteType `bson:"wasteType" json:"wasteType"`
	Condition  Condition `bson:"condition" json:"condition"`
	YearsOfUse float64   `bson:"yearsOfUse" json:"yearsOfUse"`
	Optional   string    `bson:"optional" json:"optional"`

	Status Status `bson:"status" json:"status"`
}

func (cp *CollectionPoint) Normalize() {
	cp.Name = strings.TrimSpace(cp.Name)
	cp.Email = strings.TrimSpace(cp.Email)
	cp.Address = strings.TrimSpace(cp.Address)
	cp.Optional = strings.TrimSpace(cp.Optional)
	if cp.Status == "" {
		cp.Status = StatusPending
	}
}

// Validate is the authoritative check applied before every write. Enum
// membership and the years-of-use bounds are enforced here and nowhere else.
func (cp *CollectionPoint) Validate() error {
	var msgs []string
	if cp.UserID.IsZero() {
		msgs = append(msgs, "User is required")
	}
	if cp.UserName == "" {
		msgs = append(msgs, "User name is required")
	}
	if cp.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	msgs = append(msgs, validateEmail(cp.Email)...)
	if cp.Address == "" {
		msgs = append(msgs, "Address is required")
	}
	if cp.Latitude == "" {
		msgs = append(msgs, "Latitude is required")
	}
	if cp.Longitude == "" {
		msgs = append(msgs, "Longitude is required")
	}
	switch {
	case cp.WasteType == "":
		msgs = append(msgs, "Waste type is required")
	case !cp.WasteType.Valid():
		msgs = append(msgs, fmt.Sprintf("`%s` is not a valid waste type", cp.WasteType))
	}
	switch {
	case cp.Condition == "":
		msgs = append(msgs, "Condition is required")
	case !cp.Condition.Valid():
		msgs = append(msgs, fmt.Sprintf("`%s` is not a valid condition", cp.Condition))
	}
	// Written so NaN fails the bound.
	if !(cp.YearsOfUse >= MinYearsOfUse && cp.YearsOfUse <= MaxYearsOfUse) {
		msgs = append(msgs, fmt.Sprintf("Years of use must be between %d and %d", MinYearsOfUse, MaxYearsOfUse))
	}
	if !cp.Status.Valid() {
		msgs = append(msgs, fmt.Sprintf("`%s` is not a valid status", cp.Status))
	}
	return schemaError(msgs)
}

// OwnerSummary is the owning user as shown to admins.
type OwnerSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// PopulatedCollectionPoint replaces the bare userId with the owner's summary.
// Owner is nil when the owning user no longer exists.
type PopulatedCollectionPoint struct {
	CollectionPoint
	Owner *OwnerSummary `json:"userId"`
}

// StatusStats counts collection points per status across the whole collection.
type StatusStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// GroupCount is one row of a group-by-count aggregation.
type GroupCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

type DashboardStats struct {
	TotalUsers                  int64        `json:"totalUsers"`
	TotalCollectionPoints       int64        `json:"totalCollectionPoints"`
	PendingPoints               int64        `json:"pendingPoints"`
	ApprovedPoints              int64        `json:"approvedPoints"`
	RejectedPoints              int64        `json:"rejectedPoints"`
	CollectionPointsByType      []GroupCount `json:"collectionPointsByType"`
	CollectionPointsByCondition []GroupCount `json:"collectionPointsByCondition"`
}
