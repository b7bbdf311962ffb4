package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Scalar holds a JSON value submitted either as a string or as a bare
// literal (number, bool). Clients send coordinates and years of use both ways.
type Scalar struct {
	Raw     string
	Present bool
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar{Raw: str, Present: str != ""}
		return nil
	}
	*s = Scalar{Raw: string(data), Present: len(data) > 0}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw)
}

// Float parses the value as a finite number. NaN and infinities are
// rejected.
func (s Scalar) Float() (float64, bool) {
	if !s.Present {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CollectionPointInput is the create payload. Owner and status are not part
// of it: both are set by the server.
type CollectionPointInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Latitude   Scalar `json:"latitude"`
	Longitude  Scalar `json:"longitude"`
	WasteType  string `json:"wasteType"`
	Condition  string `json:"condition"`
	YearsOfUse Scalar `json:"yearsOfUse"`
	Optional   string `json:"optional"`
}

// ToRecord builds an unsaved record from the payload.
func (in CollectionPointInput) ToRecord() CollectionPoint {
	years, _ := in.YearsOfUse.Float()
	return CollectionPoint{
		Name:       in.Name,
		Email:      in.Email,
		Address:    in.Address,
		Latitude:   in.Latitude.Raw,
		Longitude:  in.Longitude.Raw,
		WasteType:  WasteType(in.WasteType),
		Condition:  Condition(in.Condition),
		YearsOfUse: years,
		Optional:   in.Optional,
	}
}

// CollectionPointPatch is the owner update payload. A status sent by the
// client has no field to land in and is dropped during decoding.
type CollectionPointPatch struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	Latitude   *Scalar `json:"latitude"`
	Longitude  *Scalar `json:"longitude"`
	WasteType  *string `json:"wasteType"`
	Condition  *string `json:"condition"`
	YearsOfUse *Scalar `json:"yearsOfUse"`
	Optional   *string `json:"optional"`
}

// Apply merges the set fields into cp. The merged record still has to pass
// Validate before it is written.
func (p CollectionPointPatch) Apply(cp *CollectionPoint) error {
	if p.Name != nil {
		cp.Name = *p.Name
	}
	if p.Email != nil {
		cp.Email = *p.Email
	}
	if p.Address != nil {
		cp.Address = *p.Address
	}
	if p.Latitude != nil {
		cp.Latitude = p.Latitude.Raw
	}
	if p.Longitude != nil {
		cp.Longitude = p.Longitude.Raw
	}
	if p.WasteType != nil {
		cp.WasteType = WasteType(*p.WasteType)
	}
	if p.Condition != nil {
		cp.Condition = Condition(*p.Condition)
	}
	if p.YearsOfUse != nil {
		years, ok := p.YearsOfUse.Float()
		if !ok {
			return &SchemaError{Messages: []string{"Years of use must be a number"}}
		}
		cp.YearsOfUse = years
	}
	if p.Optional != nil {
		cp.Optional = *p.Optional
	}
	return nil
}
