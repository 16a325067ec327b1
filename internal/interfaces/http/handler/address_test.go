package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/interfaces/http/dto"
	"github.com/erp/addrconfirm/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConfirmationService struct {
	mock.Mock
}

func (m *MockConfirmationService) GetAddress(ctx context.Context, sealed string) (*businesspartner.AddressSnapshot, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businesspartner.AddressSnapshot), args.Error(1)
}

func (m *MockConfirmationService) Confirm(ctx context.Context, sealed string, address businesspartner.AddressSnapshot) error {
	args := m.Called(ctx, sealed, address)
	return args.Error(0)
}

func newAddressRouter(service ConfirmationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router.NewRouter(engine).Register(NewAddressHandler(service)).Setup()
	return engine
}

func TestGetAddressReturnsDTO(t *testing.T) {
	service := new(MockConfirmationService)
	service.On("GetAddress", mock.Anything, "sealed-token").Return(&businesspartner.AddressSnapshot{
		AddressID:       "45",
		BusinessPartner: "1003764",
		CityName:        "Walldorf",
		Country:         "DE",
		StreetName:      "Dietmar-Hopp-Allee",
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rest/businesspartner/address?token=sealed-token", nil)
	newAddressRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "45", body["addressID"])
	assert.Equal(t, "1003764", body["businessPartner"])
	assert.Equal(t, "Walldorf", body["cityName"])
	assert.NotContains(t, w.Body.String(), "AddressID", "REST field names are lower camel case")
}

func TestGetAddressWithoutToken(t *testing.T) {
	service := new(MockConfirmationService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rest/businesspartner/address", nil)
	newAddressRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.DetailedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, shared.KindValidation, body.Code)
	service.AssertNotCalled(t, "GetAddress", mock.Anything, mock.Anything)
}

func TestGetAddressExpiredToken(t *testing.T) {
	service := new(MockConfirmationService)
	service.On("GetAddress", mock.Anything, "stale").
		Return(nil, shared.NewSecurityError("confirmation token has expired", nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rest/businesspartner/address?token=stale", nil)
	newAddressRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body dto.DetailedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, shared.KindSecurity, body.Code)
	assert.Contains(t, body.Message, "expired")
}

func TestGetAddressRepositoryFailure(t *testing.T) {
	service := new(MockConfirmationService)
	cause := shared.NewRepositoryError("ERP returned status 503", nil)
	service.On("GetAddress", mock.Anything, "sealed-token").
		Return(nil, shared.NewRepositoryError("fetching address", cause))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rest/businesspartner/address?token=sealed-token", nil)
	newAddressRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body dto.DetailedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, shared.KindRepository, body.Code)
	require.NotNil(t, body.InnerError)
	assert.Equal(t, "ERP returned status 503", body.InnerError.Message)
}

func TestConfirmAddress(t *testing.T) {
	service := new(MockConfirmationService)
	service.On("Confirm", mock.Anything, "sealed-token", mock.MatchedBy(func(a businesspartner.AddressSnapshot) bool {
		return a.CityName == "Heidelberg" && a.StreetName == "Hauptstrasse"
	})).Return(nil).Once()

	payload := `{"addressID":"45","businessPartner":"1003764","cityName":"Heidelberg","streetName":"Hauptstrasse"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rest/businesspartner/address?token=sealed-token", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newAddressRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	service.AssertExpectations(t)
}

func TestConfirmAddressMalformedBody(t *testing.T) {
	service := new(MockConfirmationService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rest/businesspartner/address?token=sealed-token", strings.NewReader(`{"cityName":`))
	req.Header.Set("Content-Type", "application/json")
	newAddressRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.DetailedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, shared.KindValidation, body.Code)
	service.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmAddressRejectedToken(t *testing.T) {
	service := new(MockConfirmationService)
	service.On("Confirm", mock.Anything, "forged", mock.Anything).
		Return(shared.NewSecurityError("decrypting confirmation token", nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rest/businesspartner/address?token=forged", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	newAddressRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
