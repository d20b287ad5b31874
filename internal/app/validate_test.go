package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	v := newValidator()

	t.Run("missing required properties", func(t *testing.T) {
		t.Parallel()
		err := v.validate(schemaNavigation, []byte(`{"label":"Home"}`))
		var perr *payloadError
		require.ErrorAs(t, err, &perr)
		assert.NotEmpty(t, perr.details)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		err := v.validate(schemaNavigation, []byte(`not json`))
		var perr *payloadError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("unknown schema", func(t *testing.T) {
		t.Parallel()
		err := v.validate("no-such-entity", []byte(`{}`))
		require.Error(t, err)
		var perr *payloadError
		assert.False(t, errors.As(err, &perr))
	})

	t.Run("email format is asserted", func(t *testing.T) {
		t.Parallel()
		err := v.validate(schemaProfile, []byte(`{"name":"Ada","title":"Engineer","email":"not-an-email"}`))
		var perr *payloadError
		require.ErrorAs(t, err, &perr)

		err = v.validate(schemaProfile, []byte(`{"name":"Ada","title":"Engineer","email":"ada@example.com"}`))
		require.NoError(t, err)
	})

	t.Run("publishedAt must be a timestamp", func(t *testing.T) {
		t.Parallel()
		base := `"title":"t","slug":"t","content":"c","category":"notes"`
		err := v.validate(schemaBlogPost, []byte(`{`+base+`,"publishedAt":"yesterday"}`))
		var perr *payloadError
		require.ErrorAs(t, err, &perr)

		err = v.validate(schemaBlogPost, []byte(`{`+base+`,"publishedAt":"2026-08-28T10:00:00Z"}`))
		require.NoError(t, err)
	})
}
