package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Email    string  `json:"email" validate:"required,email"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=5"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Username: "ada", Email: "ada@x.com"}))
}

func TestStructReportsEveryField(t *testing.T) {
	bio := "far too long"
	err := Struct(sample{Username: "ad", Bio: &bio})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)

	assert.Equal(t, FieldError{Field: "username", Rule: "min", Param: "3", ValueType: "string"}, verr.Fields[0])
	assert.Equal(t, FieldError{Field: "email", Rule: "required", ValueType: "missing"}, verr.Fields[1])
	assert.Equal(t, "bio", verr.Fields[2].Field)
	assert.Equal(t, "max", verr.Fields[2].Rule)
	assert.Contains(t, err.Error(), "username: min=3")
}

func TestStructCountsRunes(t *testing.T) {
	// three runes, six bytes
	assert.NoError(t, Struct(sample{Username: "éçà", Email: "a@b.co"}))
}

func TestFromDecodeTypeMismatch(t *testing.T) {
	var dst struct {
		Username string   `json:"username"`
		Tags     []string `json:"tags"`
	}

	err := json.Unmarshal([]byte(`{"username":123}`), &dst)
	verr, ok := FromDecode(err)
	require.True(t, ok)
	assert.Equal(t, []FieldError{{Field: "username", Rule: "type", Param: "string", ValueType: "number"}}, verr.Fields)
	assert.Equal(t, "validation failed: username: type=string", verr.Error())

	err = json.Unmarshal([]byte(`{"tags":"intro"}`), &dst)
	verr, ok = FromDecode(err)
	require.True(t, ok)
	assert.Equal(t, FieldError{Field: "tags", Rule: "type", Param: "[]string", ValueType: "string"}, verr.Fields[0])

	_, ok = FromDecode(json.Unmarshal([]byte(`{"username":`), &dst))
	assert.False(t, ok)
}
