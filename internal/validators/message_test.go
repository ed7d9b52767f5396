package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFrenchPhone(t *testing.T) {
	valid := []string{"0612345678", "+33612345678", "0123456789"}
	for _, p := range valid {
		assert.True(t, IsFrenchPhone(p), p)
	}

	invalid := []string{"", "12345", "0012345678", "+3361234567", "06 12 34 56 78", "061234567a"}
	for _, p := range invalid {
		assert.False(t, IsFrenchPhone(p), p)
	}
}

type sample struct {
	Phone string   `json:"phone" binding:"required,frphone"`
	Dates []string `json:"bookingDates" binding:"min=1"`
	Items []item   `json:"items" binding:"dive"`
}

type item struct {
	ID string `json:"id" binding:"required"`
}

func TestDetails(t *testing.T) {
	require.NoError(t, Register())

	err := binding.Validator.ValidateStruct(&sample{
		Phone: "123",
		Items: []item{{}},
	})
	require.Error(t, err)

	details, ok := Details(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []FieldError{
		{Field: "phone", Rule: "frphone"},
		{Field: "bookingDates", Rule: "min"},
		{Field: "items[0].id", Rule: "required"},
	}, details)

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{
		Phone: "0612345678",
		Dates: []string{"2024-01-01"},
	}))

	_, ok = Details(assert.AnError)
	assert.False(t, ok)
}

func TestRegisterEngine(t *testing.T) {
	assert.ErrorIs(t, register(struct{}{}), ErrEngine)

	v := validator.New()
	require.NoError(t, register(v))
	assert.NoError(t, v.Var("0612345678", "frphone"))
	assert.Error(t, v.Var("12345", "frphone"))
}
