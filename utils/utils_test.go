package utils_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gelbeseiten-scraper/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"rechtsanwalt", "rechtsanwalt"},
		{"München", "münchen"},
		{"Frankfurt am Main", "frankfurt_am_main"},
		{"Sanitär- & Heizungsbau", "sanitär_heizungsbau"},
		{"", "all"},
		{"   ", "all"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.SafeName(tt.in), "input %q", tt.in)
	}
}

func TestRetry(t *testing.T) {
	utils.RetryBaseWait = time.Millisecond

	t.Run("stops at first success", func(t *testing.T) {
		calls := 0
		err := utils.Retry(3, func() error {
			calls++
			if calls < 2 {
				return errors.New("not yet")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := utils.Retry(3, func() error {
			calls++
			return boom
		})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("runs at least once", func(t *testing.T) {
		calls := 0
		_ = utils.Retry(0, func() error {
			calls++
			return nil
		})
		assert.Equal(t, 1, calls)
	})
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	utils.SetupLogger(&buf, false)
	utils.Debug("hidden %d", 1)
	utils.Info("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	utils.SetupLogger(&buf, true)
	utils.Debug("visible %d", 3)
	assert.Contains(t, buf.String(), "visible 3")
}
