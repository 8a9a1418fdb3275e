package web

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	v := validator.New()

	testCases := []struct {
		name string
		req  signup
		want string
	}{
		{
			name: "Required",
			req:  signup{Password: "secret1"},
			want: "Email field is required",
		},
		{
			name: "Email",
			req:  signup{Email: "not-an-email", Password: "secret1"},
			want: "Email must be a valid email",
		},
		{
			name: "Min",
			req:  signup{Email: "a@b.com", Password: "123"},
			want: "Password must be at least 6 characters long",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tc.req)
			require.Error(t, err)
			require.Equal(t, tc.want, ValidationMessage(err, "bad request"))
		})
	}
}

func TestValidationMessageFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "bad request", ValidationMessage(errors.New("EOF"), "bad request"))
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	got := Error(http.StatusNotFound, errors.New("user not found"))
	require.Equal(t, Response{Status: http.StatusNotFound, Message: "user not found"}, got)

	ok := Success("done", 7)
	require.Equal(t, http.StatusOK, ok.Status)
	require.Equal(t, 7, ok.Data)
}
