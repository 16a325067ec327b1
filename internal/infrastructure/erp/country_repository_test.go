package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCountryRepository(t *testing.T, handler http.Handler) *CountryRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.ERPConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		staticTokenSource("test-token"), zap.NewNop())
	return NewCountryRepository(client)
}

func TestListCountries(t *testing.T) {
	repo := newTestCountryRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sap/opu/odata/sap/YY1_COUNTRY_CDS/YY1_Country", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"results": []map[string]any{
			{"Country": "DE", "Country_Text": "Germany"},
			{"Country": "FR", "Country_Text": "France"},
		}}})
	}))

	countries, err := repo.ListCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "DE", countries[0].Code)
	assert.Equal(t, "Germany", countries[0].Name)
}

func TestListCountriesServerError(t *testing.T) {
	repo := newTestCountryRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	_, err := repo.ListCountries(context.Background())
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindRepository))
}
