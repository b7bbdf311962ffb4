// Package query builds collection-point filters from typed clauses. A built
// Filter renders to a Mongo filter document and can also be evaluated
// against a record in memory.
package query

import (
	"regexp"
	"strings"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names a text field of a collection point.
type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldAddress   Field = "address"
	FieldWasteType Field = "wasteType"
	FieldCondition Field = "condition"
)

// AdminSearchFields are matched by the admin list search box.
var AdminSearchFields = []Field{FieldName, FieldEmail, FieldAddress, FieldWasteType}

func (f Field) value(cp *models.CollectionPoint) string {
	switch f {
	case FieldName:
		return cp.Name
	case FieldEmail:
		return cp.Email
	case FieldAddress:
		return cp.Address
	case FieldWasteType:
		return string(cp.WasteType)
	case FieldCondition:
		return string(cp.Condition)
	}
	return ""
}

// Clause is one predicate of a filter.
type Clause interface {
	BSON() bson.E
	Match(cp *models.CollectionPoint) bool
}

type statusEquals struct{ status models.Status }

func (c statusEquals) BSON() bson.E { return bson.E{Key: "status", Value: string(c.status)} }

func (c statusEquals) Match(cp *models.CollectionPoint) bool { return cp.Status == c.status }

type ownerEquals struct{ id primitive.ObjectID }

func (c ownerEquals) BSON() bson.E { return bson.E{Key: "userId", Value: c.id} }

func (c ownerEquals) Match(cp *models.CollectionPoint) bool { return cp.UserID == c.id }

// searchAny matches when any field contains term, case-insensitively. The
// term is matched literally, never as a pattern.
type searchAny struct {
	term   string
	fields []Field
}

func (c searchAny) BSON() bson.E {
	pattern := regexp.QuoteMeta(c.term)
	or := make(bson.A, 0, len(c.fields))
	for _, f := range c.fields {
		or = append(or, bson.M{string(f): primitive.Regex{Pattern: pattern, Options: "i"}})
	}
	return bson.E{Key: "$or", Value: or}
}

func (c searchAny) Match(cp *models.CollectionPoint) bool {
	needle := strings.ToLower(c.term)
	for _, f := range c.fields {
		if strings.Contains(strings.ToLower(f.value(cp)), needle) {
			return true
		}
	}
	return false
}

// Builder accumulates clauses. The zero value matches everything.
type Builder struct {
	clauses []Clause
}

func New() *Builder { return &Builder{} }

// StatusEquals restricts to one status. Empty and "all" add nothing.
func (b *Builder) StatusEquals(status string) *Builder {
	status = strings.TrimSpace(status)
	if status == "" || status == "all" {
		return b
	}
	b.clauses = append(b.clauses, statusEquals{status: models.Status(status)})
	return b
}

// OwnedBy restricts to records owned by one user.
func (b *Builder) OwnedBy(userID primitive.ObjectID) *Builder {
	b.clauses = append(b.clauses, ownerEquals{id: userID})
	return b
}

// SearchAny adds a substring match OR-ed across fields. An empty term adds nothing.
func (b *Builder) SearchAny(term string, fields ...Field) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return b
	}
	b.clauses = append(b.clauses, searchAny{term: term, fields: fields})
	return b
}

func (b *Builder) Build() Filter {
	return Filter{clauses: append([]Clause(nil), b.clauses...)}
}

// Filter is an immutable AND of clauses.
type Filter struct {
	clauses []Clause
}

// BSON renders the filter as a Mongo filter document.
func (f Filter) BSON() bson.D {
	doc := bson.D{}
	for _, c := range f.clauses {
		doc = append(doc, c.BSON())
	}
	return doc
}

// Match evaluates the filter against a record.
func (f Filter) Match(cp *models.CollectionPoint) bool {
	for _, c := range f.clauses {
		if !c.Match(cp) {
			return false
		}
	}
	return true
}

// Empty reports whether the filter has no clauses.
func (f Filter) Empty() bool { return len(f.clauses) == 0 }
