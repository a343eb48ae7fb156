package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfMonth(t *testing.T) {
	tests := []struct {
		date    string
		want    int
		wantErr error
	}{
		{"2025-03-05", 5, nil},
		{"2025-03-31", 31, nil},
		{"2025-02-01", 1, nil},
		{"2025-03", 0, ErrInvalidDate},
		{"20250305", 0, ErrInvalidDate},
		{"2025-03-05-01", 0, ErrInvalidDate},
		{"", 0, ErrInvalidDate},
		{"2025-03-00", 0, ErrInvalidDay},
		{"2025-03-32", 0, ErrInvalidDay},
		{"2025-03-xx", 0, ErrInvalidDay},
		{"2025-03-", 0, ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := DayOfMonth(tt.date)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayOfMonth_ErrorNamesValue(t *testing.T) {
	_, err := DayOfMonth("2025-03-45")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "45")
	assert.Contains(t, err.Error(), "2025-03-45")

	_, err = Parameters{Date: "March 5"}.Day()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "March 5")
}

func TestTimeOfDayLabel(t *testing.T) {
	assert.Equal(t, "Morning (Before 12 PM)", Morning.Label())
	assert.Equal(t, "Afternoon (After 12 PM)", Afternoon.Label())
	assert.Equal(t, "Evening (After 5 PM)", Evening.Label())
}

func TestValidateVerificationCode(t *testing.T) {
	for _, bad := range []string{"", " ", "\t\n"} {
		err := ValidateVerificationCode(bad)
		require.Error(t, err)
		assert.Equal(t, "Please enter a verification code", err.Error())
	}
	for _, good := range []string{"123456", " 1 ", "abc"} {
		assert.NoError(t, ValidateVerificationCode(good))
	}
}
