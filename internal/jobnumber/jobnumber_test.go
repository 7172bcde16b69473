package jobnumber

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oct10 = time.Date(2024, time.October, 10, 0, 0, 0, 0, time.UTC)

func TestNext_FirstOfDay(t *testing.T) {
	n, err := Next(nil, oct10)
	require.NoError(t, err)
	assert.Equal(t, "20241010-001", n)
}

func TestNext_FollowsHighestSequence(t *testing.T) {
	n, err := Next([]string{"20241010-001", "20241010-003"}, oct10)
	require.NoError(t, err)
	assert.Equal(t, "20241010-004", n)
}

func TestNext_OtherDaysDoNotCount(t *testing.T) {
	n, err := Next([]string{"20241009-005", "20241011-017"}, oct10)
	require.NoError(t, err)
	assert.Equal(t, "20241010-001", n)
}

func TestNext_IgnoresMalformedEntries(t *testing.T) {
	existing := []string{
		"20241010-1",
		"20241010-0042",
		"20241010-abc",
		"20241010-002 ",
		"",
		"JOB-20241010-900",
		"20241010-002",
	}
	n, err := Next(existing, oct10)
	require.NoError(t, err)
	assert.Equal(t, "20241010-003", n)
}

func TestNext_IsMonotonic(t *testing.T) {
	var issued []string
	for i := 1; i <= 25; i++ {
		n, err := Next(issued, oct10)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("20241010-%03d", i), n)
		issued = append(issued, n)
	}
}

func TestNext_UsesLocalDayOfTimestamp(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	at := time.Date(2024, time.October, 10, 23, 30, 0, 0, loc)
	n, err := Next(nil, at)
	require.NoError(t, err)
	assert.Equal(t, "20241010-001", n)
}

func TestNext_Exhausted(t *testing.T) {
	n, err := Next([]string{"20241010-998"}, oct10)
	require.NoError(t, err)
	assert.Equal(t, "20241010-999", n)

	_, err = Next([]string{"20241010-999"}, oct10)
	assert.ErrorIs(t, err, ErrSequenceExhausted)

	n, err = Next([]string{"20241010-999"}, oct10.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "20241011-001", n)
}

func TestParse(t *testing.T) {
	day, seq, ok := parse("20241010-042")
	require.True(t, ok)
	assert.Equal(t, "20241010", day)
	assert.Equal(t, 42, seq)

	_, _, ok = parse("20241310-001")
	assert.False(t, ok)
	_, _, ok = parse("2024-10-10")
	assert.False(t, ok)
}
