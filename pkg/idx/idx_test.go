package idx_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	parsed, err = idx.Parse("  " + id.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"   ",
		"user-1",
		"not-a-ulid",
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z",   // one short
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZVX", // one long
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZU",  // U is outside the alphabet
		"8ZZZZZZZZZZZZZZZZZZZZZZZZZ",  // timestamp overflow
	} {
		id, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
		require.True(t, id.IsZero())
	}
}

func TestNewIsMonotonic(t *testing.T) {
	prev := idx.New()
	for range 1000 {
		next := idx.New()
		require.Less(t, strings.Compare(prev.String(), next.String()), 0)
		prev = next
	}
}

func TestConcurrentUnique(t *testing.T) {
	const n = 500

	var (
		mu   sync.Mutex
		seen = make(map[idx.ID]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
}
