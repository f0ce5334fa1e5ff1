package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`PickString uses first non-empty key`, func(t *testing.T) {
		record := map[string]any{
			"workEmail": "  ",
			"email":     "Jane.Doe@Example.com",
			"Email":     "other@example.com",
		}
		require.Equal(t, "Jane.Doe@Example.com", PickString(record, "workEmail", "email", "Email"))
		require.Equal(t, "", PickString(record, "missing"))
	})

	t.Run(`PickString formats numbers`, func(t *testing.T) {
		record := map[string]any{"91": float64(42), "rate": 1.5}
		require.Equal(t, "42", PickString(record, "91"))
		require.Equal(t, "1.5", PickString(record, "rate"))
	})

	t.Run(`ParseDate accepts date and RFC3339`, func(t *testing.T) {
		d, err := ParseDate("2024-03-01")
		require.Nil(t, err)
		require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

		d, err = ParseDate("2024-03-01T10:00:00Z")
		require.Nil(t, err)
		require.Equal(t, 10, d.Hour())

		_, err = ParseDate("01.03.2024")
		require.NotNil(t, err)
		_, err = ParseDate("")
		require.NotNil(t, err)
	})

	t.Run(`ParseOptionalDate ignores placeholders`, func(t *testing.T) {
		require.Nil(t, ParseOptionalDate("0000-00-00"))
		require.Nil(t, ParseOptionalDate(""))
		require.NotNil(t, ParseOptionalDate("2020-01-15"))
	})

	t.Run(`NormalizeEmail`, func(t *testing.T) {
		require.Equal(t, "bob@example.com", NormalizeEmail("  Bob@Example.COM "))
	})
}
