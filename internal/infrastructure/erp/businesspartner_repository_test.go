package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokenSource string

func (s staticTokenSource) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

func newTestRepository(t *testing.T, handler http.Handler) (*BusinessPartnerRepository, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.ERPConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		staticTokenSource("test-token"), zap.NewNop())
	return NewBusinessPartnerRepository(client), server
}

// csrfAware wraps a handler with the OData CSRF handshake: GETs with
// the Fetch header receive a token, PATCHes must present it.
func csrfAware(t *testing.T, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.Header.Get("X-CSRF-Token") == "Fetch" {
			w.Header().Set("X-CSRF-Token", "csrf-123")
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method == http.MethodPatch {
			assert.Equal(t, "csrf-123", r.Header.Get("X-CSRF-Token"))
		}
		next(w, r)
	}
}

func TestGetPartnerRootMapsCustomFields(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sap/opu/odata/sap/API_BUSINESS_PARTNER/A_BusinessPartner('1003764')", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("$select"), "YY1_AddrConfState_bus")

		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{
			"BusinessPartner":         "1003764",
			"Customer":                "1003764",
			"IsNaturalPerson":         "",
			"YY1_AddressChecksum_bus": "abc123",
			"YY1_AddrConfState_bus":   "Open",
		}})
	}))

	record, err := repo.GetPartnerRoot(context.Background(), "1003764")
	require.NoError(t, err)
	assert.Equal(t, "1003764", record.Key)
	assert.True(t, record.IsCustomer())
	assert.Equal(t, "abc123", record.AddressChecksum)
	assert.Equal(t, businesspartner.StateOpen, record.ConfirmationState)
}

func TestGetPartnerRootDefaultsUnknownState(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{
			"BusinessPartner":       "1003764",
			"YY1_AddrConfState_bus": "whatever",
		}})
	}))

	record, err := repo.GetPartnerRoot(context.Background(), "1003764")
	require.NoError(t, err)
	assert.Equal(t, businesspartner.StateInitial, record.ConfirmationState)
}

func TestGetPartnerRootMissingPartner(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := repo.GetPartnerRoot(context.Background(), "0000000")
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindRepository))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestGetFirstAddress(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sap/opu/odata/sap/API_BUSINESS_PARTNER/A_BusinessPartner('1003764')/to_BusinessPartnerAddress", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("$top"))

		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"results": []map[string]any{{
			"AddressID":            "45",
			"BusinessPartner":      "1003764",
			"CityName":             "Walldorf",
			"Country":              "DE",
			"POBoxIsWithoutNumber": false,
		}}}})
	}))

	address, err := repo.GetFirstAddress(context.Background(), "1003764")
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, "45", address.AddressID)
	assert.Equal(t, "Walldorf", address.CityName)
	require.NotNil(t, address.POBoxIsWithoutNumber)
	assert.False(t, *address.POBoxIsWithoutNumber)
}

func TestGetFirstAddressNoAddress(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"results": []any{}}})
	}))

	address, err := repo.GetFirstAddress(context.Background(), "1003764")
	require.NoError(t, err)
	assert.Nil(t, address)
}

func TestGetFirstAddressLeavesNullFlagNil(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"results": []map[string]any{{
			"AddressID":       "45",
			"BusinessPartner": "1003764",
		}}}})
	}))

	address, err := repo.GetFirstAddress(context.Background(), "1003764")
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Nil(t, address.POBoxIsWithoutNumber)
}

func TestGetAddressByKeysNotFound(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := repo.GetAddressByKeys(context.Background(), "1003764", "99")
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindRepository))
}

func TestUpdateConfirmationPatchesOnlyCustomFields(t *testing.T) {
	var patched map[string]any
	repo, _ := newTestRepository(t, csrfAware(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/sap/opu/odata/sap/API_BUSINESS_PARTNER/A_BusinessPartner('1003764')", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := repo.UpdateConfirmation(context.Background(), &businesspartner.Record{
		Key:               "1003764",
		AddressChecksum:   "new-sum",
		ConfirmationState: businesspartner.StateOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"YY1_AddressChecksum_bus": "new-sum",
		"YY1_AddrConfState_bus":   "Open",
	}, patched)
}

func TestUpdateAddress(t *testing.T) {
	var patched map[string]any
	repo, _ := newTestRepository(t, csrfAware(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t,
			"/sap/opu/odata/sap/API_BUSINESS_PARTNER/A_BusinessPartnerAddress(BusinessPartner='1003764',AddressID='45')",
			r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := repo.UpdateAddress(context.Background(), businesspartner.AddressSnapshot{
		BusinessPartner: "1003764",
		AddressID:       "45",
		CityName:        "Heidelberg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Heidelberg", patched["CityName"])
}

func TestPatchRefetchesRejectedCSRFToken(t *testing.T) {
	var patchAttempts, fetches int
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.Header.Get("X-CSRF-Token") == "Fetch" {
			fetches++
			w.Header().Set("X-CSRF-Token", "csrf-123")
			return
		}
		patchAttempts++
		if patchAttempts == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	err := repo.UpdateConfirmation(context.Background(), &businesspartner.Record{Key: "1003764"})
	require.NoError(t, err)
	assert.Equal(t, 2, patchAttempts)
	assert.Equal(t, 2, fetches)
}

func TestListContactsFiltersByCompany(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sap/opu/odata/sap/API_BUSINESS_PARTNER/A_BuPaContactToFuncAndDept", r.URL.Path)
		assert.Equal(t, "BusinessPartnerCompany eq '1003764'", r.URL.Query().Get("$filter"))

		json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"results": []map[string]any{{
			"BusinessPartnerPerson":   "9980000",
			"BusinessPartnerCompany":  "1003764",
			"ContactPersonFunction":   "0005",
			"ContactPersonDepartment": "0007",
			"EmailAddress":            "erika@inlimex.example",
		}}}})
	}))

	contacts, err := repo.ListContacts(context.Background(), "1003764")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "9980000", contacts[0].PersonKey)
	assert.Equal(t, "0005", contacts[0].Function)
	assert.Equal(t, "erika@inlimex.example", contacts[0].Email)
}

func TestServerErrorBecomesRepositoryError(t *testing.T) {
	repo, _ := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := repo.GetPartnerRoot(context.Background(), "1003764")
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindRepository))
	assert.Contains(t, err.Error(), "500")
}
