package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/smarttax/backend/src/config"
	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/processors"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	config.Cfg = &config.AppConfig{
		Port:                "8080",
		LogLevel:            "error",
		SessionSecret:       "test-secret",
		CSRFAuthKey:         []byte("0123456789abcdef0123456789abcdef"),
		SessionTokenExpiry:  time.Hour,
		MaxRequestBodyBytes: 1 << 20,
	}

	os.Exit(m.Run())
}

const generalHouseJSON = `{
	"returnMeta": {"declarationType": "regular"},
	"taxpayer": {"name": "홍길동", "ssn": "800101-1234567"},
	"asset": {"type": "general_house", "address": "서울시 강남구"},
	"deal": {
		"transferCause": "sale",
		"transferDate": "2024-05-10",
		"acquisitionCause": "purchase",
		"acquisitionDate": "2021-05-10"
	},
	"amounts": {
		"transferPrice": 500000000,
		"acquisitionPriceMethod": "actual",
		"acquisitionPrice": 300000000,
		"expenseMethod": "actual"
	},
	"relief": {"reliefType": "none"}
}`

func TestHandleCalculate(t *testing.T) {
	h := NewCalculationHandler(processors.NewTaxProcessor())

	t.Run("computes a complete transaction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(generalHouseJSON))
		rec := httptest.NewRecorder()

		h.HandleCalculate(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("ETag"))

		var result models.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, int64(200_000_000), result.RawGain)
		assert.Equal(t, int64(50_550_000), result.CalculatedTax)
		assert.Equal(t, int64(5_055_000), result.LocalIncomeTax)
		assert.Equal(t, "2024-07-31", result.Deadline)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"asset":`))
		rec := httptest.NewRecorder()

		h.HandleCalculate(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleScenarioMatch(t *testing.T) {
	h := NewCalculationHandler(processors.NewTaxProcessor())

	req := httptest.NewRequest(http.MethodPost, "/api/scenario/match", strings.NewReader(generalHouseJSON))
	rec := httptest.NewRecorder()

	h.HandleScenarioMatch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Description string `json:"description"`
		Primary     string `json:"primary"`
		Valid       bool   `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "일반 주택", response.Description)
	assert.Equal(t, "HOUSE_GENERAL", response.Primary)
	assert.True(t, response.Valid)
}

func TestCSRFMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := CSRFMiddleware()(ok)

	t.Run("safe methods pass", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wizard/state", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("mutating request without token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header and cookie mismatch rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
		req.Header.Set("X-CSRF-Token", "token-a")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "token-b"})
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching header and cookie pass", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
		req.Header.Set("X-CSRF-Token", "token-a")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "token-a"})
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("token endpoint sets matching cookie and header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/csrf", nil)
		rec := httptest.NewRecorder()

		GetCSRFToken(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		headerToken := rec.Header().Get("X-CSRF-Token")
		assert.NotEmpty(t, headerToken)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, csrfCookieName, cookies[0].Name)
		assert.Equal(t, headerToken, cookies[0].Value)
	})
}
