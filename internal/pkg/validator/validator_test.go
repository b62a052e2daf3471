package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type guestForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Price string `json:"price" validate:"omitempty,numeric"`
}

func TestValidate(t *testing.T) {
	errs := Validate(guestForm{Email: "nope", Price: "abc"})

	assert.Equal(t, map[string]string{
		"name":  "is required",
		"email": "must be a valid email",
		"price": "must be a number",
	}, errs)

	assert.Nil(t, Validate(guestForm{Name: "Ann", Email: "ann@example.com", Price: "12.50"}))
}

func TestDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, Details(assert.AnError))
}
