package pagination_test

import (
	"testing"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBasedTokenRoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 14, 9, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeDateBasedToken(date)
	decoded, err := pagination.DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(decoded))
}

func TestDecodeDateBasedTokenInvalid(t *testing.T) {
	_, err := pagination.DecodeDateBasedToken("not-base64!!!")
	assert.Error(t, err)

	_, err = pagination.DecodeDateBasedToken("bm90LWEtZGF0ZQ==") // "not-a-date"
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("2025-06-14T09:30:00Z", "entry-42")

	fields, err := pagination.DecodeMultiFieldToken(token)

	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "2025-06-14T09:30:00Z", fields[0])
	assert.Equal(t, "entry-42", fields[1])
}
