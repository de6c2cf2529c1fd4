package serverutils

import (
	"testing"

	"ai-foundry-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateRequest(&sampleRequest{Email: "user@example.com", Password: "supersecret"})
		assert.NoError(t, err)
	})

	t.Run("invalid fields", func(t *testing.T) {
		err := ValidateRequest(&sampleRequest{Email: "not-an-email", Password: "short"})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "Email failed on 'email'")
		assert.Contains(t, err.Error(), "Password failed on 'min'")
	})

	t.Run("missing fields", func(t *testing.T) {
		err := ValidateRequest(&sampleRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed on 'required'")
	})
}
