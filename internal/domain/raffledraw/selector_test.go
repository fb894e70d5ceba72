package raffledraw

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Selector_NoEntries(t *testing.T) {
	_, err := NewSelector(rand.New(rand.NewSource(1))).Select(nil, 3)
	require.ErrorIs(t, err, ErrNoEntries)
}

func Test_Selector_Distinct(t *testing.T) {
	entries := []Entry{
		{UserID: "alice", EntryCount: 5},
		{UserID: "bob", EntryCount: 1},
		{UserID: "carol", EntryCount: 3},
		{UserID: "dave", EntryCount: 10},
	}

	tests := []struct {
		maxWinners int
		want       int
	}{
		{maxWinners: 1, want: 1},
		{maxWinners: 2, want: 2},
		{maxWinners: 4, want: 4},
		{maxWinners: 100, want: 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("max %d", tt.maxWinners), func(t *testing.T) {
			s := NewSelector(rand.New(rand.NewSource(42)))
			for i := 0; i < 200; i++ {
				winners, err := s.Select(entries, tt.maxWinners)
				require.NoError(t, err)
				require.Len(t, winners, tt.want)

				seen := map[string]bool{}
				for _, w := range winners {
					require.False(t, seen[w], "duplicate winner %s", w)
					seen[w] = true
				}
			}
		})
	}
}

func Test_Selector_AllUsersWinWhenFewerThanMax(t *testing.T) {
	entries := []Entry{
		{UserID: "alice", EntryCount: 100},
		{UserID: "bob", EntryCount: 1},
	}

	winners, err := NewSelector(rand.New(rand.NewSource(7))).Select(entries, 5)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"alice", "bob"}, winners)
}

func Test_Selector_SkipsEmptyEntries(t *testing.T) {
	entries := []Entry{
		{UserID: "alice", EntryCount: 0},
		{UserID: "bob", EntryCount: 2},
	}

	winners, err := NewSelector(rand.New(rand.NewSource(7))).Select(entries, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, winners)
}

func Test_Selector_Weighted(t *testing.T) {
	entries := []Entry{
		{UserID: "alice", EntryCount: 100},
		{UserID: "bob", EntryCount: 1},
	}

	s := NewSelector(rand.New(rand.NewSource(2024)))
	counts := map[string]int{}
	trials := 10000
	for i := 0; i < trials; i++ {
		winners, err := s.Select(entries, 1)
		require.NoError(t, err)
		require.Len(t, winners, 1)
		counts[winners[0]]++
	}

	// Expected share of bob is 1/101, roughly 99 of 10000 trials.
	require.Greater(t, counts["alice"], 9700)
	require.Less(t, counts["bob"], 300)
	require.Equal(t, trials, counts["alice"]+counts["bob"])
}

func Test_Selector_DefaultSource(t *testing.T) {
	winners, err := NewSelector(nil).Select([]Entry{{UserID: "alice", EntryCount: 2}}, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, winners)
}
