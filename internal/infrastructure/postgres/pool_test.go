package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIPv4_Literals(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}
