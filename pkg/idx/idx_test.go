package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/akashm011/Auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewRoundTripsThroughParse(t *testing.T) {
	id := idx.MustNew()
	require.False(t, id.IsZero())
	require.Len(t, id.String(), 26)

	parsed, err := idx.Parse("  " + id.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZVX"} {
		id, err := idx.Parse(raw)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", raw)
		require.True(t, id.IsZero())
	}

	require.Panics(t, func() { idx.MustParse("user_1234") })
	require.NotPanics(t, func() { idx.MustParse("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV") })
}

// Audit entries and invitations sharing a timestamp fall back to id order, so
// ids minted back to back must sort in creation order within one millisecond.
func TestSameMillisecondIDsStayOrdered(t *testing.T) {
	at := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Equal(t, -1, idx.Compare(prev, next))
		prev = next
	}

	require.Equal(t, 1, idx.Compare(idx.NewAt(at.Add(time.Millisecond)), prev))
	require.Equal(t, 0, idx.Compare(prev, prev))
}

func TestConcurrentIDsAreUnique(t *testing.T) {
	const workers, perWorker = 8, 250

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all = make([]string, 0, workers*perWorker)
	)
	for range workers {
		wg.Go(func() {
			local := make([]string, 0, perWorker)
			for range perWorker {
				local = append(local, idx.New().String())
			}
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		})
	}
	wg.Wait()

	seen := make(map[string]struct{}, len(all))
	for _, id := range all {
		seen[id] = struct{}{}
	}
	require.Len(t, seen, workers*perWorker)
}

func TestTimeCarriesCreationMillisecond(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 30, 15, 123_456_789, time.UTC)

	id := idx.NewAt(issued)
	require.Equal(t, issued.Truncate(time.Millisecond), id.Time().UTC())

	require.True(t, idx.Zero.Time().IsZero())
	require.True(t, idx.ID("garbage").Time().IsZero())
}
