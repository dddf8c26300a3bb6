//go:build unit

package device_test

import (
	"strings"
	"testing"
	"time"

	"minute-market/internal/domain/device"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d, err := device.New(uuid.New(), "  abcdef0123  ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "abcdef0123", d.VoIPToken)

	_, err = device.New(uuid.New(), "", time.Now())
	assert.ErrorIs(t, err, device.ErrEmptyToken)
	_, err = device.New(uuid.New(), strings.Repeat("a", 513), time.Now())
	assert.ErrorIs(t, err, device.ErrEmptyToken)
}
