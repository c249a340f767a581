package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Note     string `json:"-" validate:"omitempty,oneof=a b"`
	Plain    string `validate:"omitempty,len=2"`
}

func TestCustomValidator(t *testing.T) {
	cv := New()
	require.NoError(t, cv.Validate(&signup{Email: "a@b.co", Password: "123456"}))
	require.Error(t, cv.Validate(&signup{}))
}

func TestFields(t *testing.T) {
	cv := New()

	fields := Fields(cv.Validate(&signup{}))
	require.Equal(t, map[string]string{
		"email":    "This field is required.",
		"password": "This field is required.",
	}, fields)

	fields = Fields(cv.Validate(&signup{Email: "nope", Password: "123"}))
	require.Equal(t, "Enter a valid email address.", fields["email"])
	require.Equal(t, "Ensure this field has at least 6 characters.", fields["password"])

	fields = Fields(cv.Validate(&signup{Email: "a@b.co", Password: "1234567", Plain: "abc"}))
	require.Equal(t, map[string]string{"Plain": "Failed on the 'len' rule."}, fields)

	require.Nil(t, Fields(errors.New("other")))
	require.Nil(t, Fields(nil))
}
