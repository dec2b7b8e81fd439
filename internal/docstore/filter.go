package docstore

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the name of the identifier field in every collection.
const IDField = "_id"

// Op is a predicate operator.
type Op int

const (
	// OpEq matches documents whose field equals the value.
	OpEq Op = iota
	// OpContains matches documents whose array field has the value as an element.
	OpContains
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContains:
		return "contains"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Predicate is a single condition on a top-level field.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an equality predicate.
func Eq(field, value string) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

// Contains builds an array membership predicate.
func Contains(field, value string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: value}
}

// ID matches the document with the given identifier.
func ID(id primitive.ObjectID) Predicate {
	return Predicate{Field: IDField, Op: OpEq, Value: id}
}

// StringValue returns the predicate value in its string form; identifiers
// are rendered as hex.
func (p Predicate) StringValue() string {
	switch v := p.Value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Filter is an AND of predicates. The empty filter matches everything.
type Filter []Predicate

// Where composes predicates into a filter.
func Where(predicates ...Predicate) Filter {
	return Filter(predicates)
}

// UpdateOp is an update operator.
type UpdateOp int

const (
	// OpPush appends Value to the array in Field.
	OpPush UpdateOp = iota
)

// Update describes a single-field mutation.
type Update struct {
	Op    UpdateOp
	Field string
	Value any
}

// Push appends value to the array field.
func Push(field string, value any) Update {
	return Update{Op: OpPush, Field: field, Value: value}
}

var fieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidField reports whether name is safe to use as a field or collection
// name in backends that interpolate it into queries.
func ValidField(name string) bool {
	return fieldPattern.MatchString(name)
}
