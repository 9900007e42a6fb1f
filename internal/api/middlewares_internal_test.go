package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facegate/facegate/internal/entity"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		errFn  require.ErrorAssertionFunc
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", require.NoError},
		{"missing", "", "", require.Error},
		{"not bearer", "Basic dXNlcg==", "", require.Error},
		{"empty token", "Bearer ", "", require.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := bearerToken(r)
			tt.errFn(t, err)
			require.Equal(t, tt.want, token)

			if err != nil {
				require.ErrorIs(t, err, entity.ErrUnauthorized)
			}
		})
	}
}
