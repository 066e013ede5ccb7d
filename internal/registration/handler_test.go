// internal/registration/handler_test.go
package registration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/directory"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	redisClient, _ := redismock.NewClientMock()

	cfg := LoadConfig()
	picker := NewPicker(cfg, logger.NewNoOpLogger())
	store := directory.NewStore(directory.LoadConfig(), db, redisClient, logger.NewNoOpLogger())
	handler := NewHandler(cfg, picker, store, nil, logger.NewNoOpLogger())

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, mock
}

func TestHandler_GetPickerMap(t *testing.T) {
	router, _ := createTestHandler(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/waste_exchange/api/register/map", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var surface struct {
		Zoom    int               `json:"zoom"`
		Markers []json.RawMessage `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &surface))
	assert.Equal(t, 11, surface.Zoom)
	assert.Empty(t, surface.Markers)
}

func TestHandler_PlacePin(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantLat    string
		wantLng    string
	}{
		{
			name:       "click on the island",
			payload:    `{"latitude": -20.160891, "longitude": 57.501234}`,
			wantStatus: http.StatusOK,
			wantLat:    "-20.160891",
			wantLng:    "57.501234",
		},
		{
			name:       "zero longitude is a valid coordinate",
			payload:    `{"latitude": 51.477928, "longitude": 0}`,
			wantStatus: http.StatusOK,
			wantLat:    "51.477928",
			wantLng:    "0.000000",
		},
		{
			name:       "latitude out of range",
			payload:    `{"latitude": -95.0, "longitude": 57.5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "longitude out of range",
			payload:    `{"latitude": -20.3, "longitude": 190.0}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := createTestHandler(t)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/waste_exchange/api/register/place", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				var body stderrors.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, string(stderrors.ErrCodeValidationFailed), body.Code)
				return
			}

			var body struct {
				Fields FormFields `json:"fields"`
				Surface struct {
					Zoom int `json:"zoom"`
				} `json:"surface"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantLat, body.Fields.Latitude)
			assert.Equal(t, tt.wantLng, body.Fields.Longitude)
			assert.Equal(t, 15, body.Surface.Zoom)
		})
	}
}

func TestHandler_Submit(t *testing.T) {
	router, mock := createTestHandler(t)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Plastic").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO businesses`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	payload := `{
		"name": "Green Glass Ltd",
		"category": "Plastic",
		"waste": "Glass bottles",
		"phone": "+23057123456",
		"email": "info@greenglass.mu",
		"latitude": "-20.160891",
		"longitude": "57.501234"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/waste_exchange/api/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var business directory.Business
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &business))
	assert.Equal(t, int64(9), business.ID)
	assert.Equal(t, "Green Glass Ltd", business.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Submit_BadCoordinates(t *testing.T) {
	router, _ := createTestHandler(t)

	payload := `{
		"name": "Green Glass Ltd",
		"waste": "Glass bottles",
		"phone": "+23057123456",
		"email": "info@greenglass.mu",
		"latitude": "-95.0",
		"longitude": "57.5"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/waste_exchange/api/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body stderrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(stderrors.ErrCodeValidationFailed), body.Code)
}
