package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
)

func TestFormatDateForAPI(t *testing.T) {
	d := time.Date(2024, time.March, 9, 17, 45, 0, 0, time.Local)
	assert.Equal(t, "2024-03-09T00:00:00", listing.FormatDateForAPI(d, false))
	assert.Equal(t, "2024-03-09T23:59:59", listing.FormatDateForAPI(d, true))
}

func TestDateFilter(t *testing.T) {
	v, err := listing.DateFilter("2024-12-31", true)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31T23:59:59", v)

	v, err = listing.DateFilter("", false)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = listing.DateFilter("31/12/2024", false)
	assert.Error(t, err)
}
