package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facegate/facegate/internal/entity"
)

func pinCandidates(n int) []entity.Employee {
	out := make([]entity.Employee, n)
	for i := range out {
		out[i] = entity.Employee{ID: int64(i + 1), PINHash: []byte{byte(i + 1)}}
	}

	return out
}

func TestMatchPINComparesEveryCandidate(t *testing.T) {
	t.Parallel()

	candidates := pinCandidates(5)

	tests := []struct {
		name    string
		pin     string
		matchAt int // candidate index the comparator accepts, -1 for none
		wantID  int64
		wantHit bool
	}{
		{"no match", "9999", -1, 0, false},
		{"match at first", "1234", 0, 1, true},
		{"match in middle", "123456", 2, 3, true},
		{"match at last", "12345678", 4, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var compared int

			id, found := matchPIN(candidates, tt.pin, func(hash []byte, pin string) bool {
				compared++
				return tt.matchAt >= 0 && hash[0] == byte(tt.matchAt+1)
			})

			require.Equal(t, tt.wantHit, found)
			require.Equal(t, tt.wantID, id)
			require.Equal(t, len(candidates), compared,
				"every candidate must be compared regardless of where the match sits")
		})
	}
}

func TestMatchPINFirstMatchWins(t *testing.T) {
	t.Parallel()

	candidates := pinCandidates(3)

	var compared int

	id, found := matchPIN(candidates, "4321", func([]byte, string) bool {
		compared++
		return true // every candidate "matches"
	})

	require.True(t, found)
	require.Equal(t, int64(1), id)
	require.Equal(t, len(candidates), compared, "a hit must not cut the scan short")
}
