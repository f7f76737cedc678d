package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewPayload struct {
	ShopID   string `json:"shop_id" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required"`
	Reviewer string `json:"reviewer" validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	p := reviewPayload{
		ShopID:   "7e4f8d3e-5b6a-4a2c-9d1e-8f7a6b5c4d3e",
		Rating:   4,
		Comment:  "Great taste, bit pricey",
		Reviewer: "Jane Smith",
	}

	assert.NoError(t, Validate(p))
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(reviewPayload{})

	require.Error(t, err)
	valErr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := valErr.Fields()
	assert.Contains(t, fields, "ShopID")
	assert.Contains(t, fields, "Rating")
	assert.Contains(t, fields, "Comment")
	assert.Contains(t, fields, "Reviewer")
}

func TestValidate_RatingOutOfRange(t *testing.T) {
	p := reviewPayload{
		ShopID:   "7e4f8d3e-5b6a-4a2c-9d1e-8f7a6b5c4d3e",
		Rating:   6,
		Comment:  "too good",
		Reviewer: "Bob",
	}

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rating")
	assert.Contains(t, err.Error(), "less than or equal to 5")
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"shop_id":"7e4f8d3e-5b6a-4a2c-9d1e-8f7a6b5c4d3e","rating":5,"comment":"Best pizza in town!","reviewer":"John Doe"}`
	r := httptest.NewRequest("POST", "/api/v1/reviews", strings.NewReader(body))

	var p reviewPayload
	require.NoError(t, DecodeAndValidate(r, &p))
	assert.Equal(t, 5, p.Rating)
	assert.Equal(t, "John Doe", p.Reviewer)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/reviews", strings.NewReader("{not json"))

	var p reviewPayload
	err := DecodeAndValidate(r, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
