package idx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	lower, err := idx.Parse(strings.ToLower(id.String()))
	require.NoError(t, err)
	require.Equal(t, id, lower)
}

func TestParseRejectsMalformedPathIDs(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z", "../members", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZU"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestIDsFollowTheInjectedClock(t *testing.T) {
	checkIn := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

	first := idx.NewAt(checkIn)
	second := idx.NewAt(checkIn)
	later := idx.NewAt(checkIn.Add(time.Second))

	require.Less(t, first.String(), second.String())
	require.Less(t, second.String(), later.String())
	require.True(t, checkIn.Equal(first.Time()))
	require.True(t, idx.ID("bogus").Time().IsZero())
}
