// internal/directory/view_test.go
package directory

import (
	"context"
	"encoding/json"
	"testing"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/mapkit"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestView(t *testing.T, businesses []Business) *View {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	redisClient, redisMock := redismock.NewClientMock()
	cached, err := json.Marshal(businesses)
	require.NoError(t, err)
	redisMock.ExpectGet(businessCacheKey).SetVal(string(cached))

	cfg := LoadConfig()
	store := NewStore(cfg, db, redisClient, logger.NewNoOpLogger())
	return NewView(cfg, store, logger.NewNoOpLogger())
}

func testBusinesses() []Business {
	return []Business{
		{ID: 1, Name: "Green Recyclers Ltd", Category: "Plastic", Latitude: -20.21, Longitude: 57.49, DetailURL: "/waste_exchange/1/"},
		{ID: 2, Name: "EcoMetal Co", Category: "Metal", Latitude: -20.10, Longitude: 57.55, DetailURL: "/waste_exchange/2/"},
		{ID: 3, Name: "Island Glassworks", Category: "Plastic", Latitude: -20.30, Longitude: 57.60, DetailURL: "/waste_exchange/3/"},
	}
}

func TestView_Initialize(t *testing.T) {
	view := createTestView(t, testBusinesses())

	surface, err := view.Initialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "-20.348404", mapkit.Format(surface.Center.Lat))
	assert.Equal(t, "57.552152", mapkit.Format(surface.Center.Lng))
	assert.Equal(t, 11, surface.Zoom)
	require.Len(t, surface.Markers, 3)

	first := surface.Markers[0]
	assert.Equal(t, "Green Recyclers Ltd", first.Title)
	assert.Equal(t, "/waste_exchange/1/", first.DetailURL)
	assert.True(t, first.Visible)
	assert.Contains(t, first.Icon.URL, "data:image/svg+xml")
}

func TestView_Filter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		visible  int
	}{
		{"all shows everything", FilterAll, 3},
		{"exact category match", "Plastic", 2},
		{"single match", "Metal", 1},
		{"unknown category hides all", "Paper", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := createTestView(t, testBusinesses())
			surface, err := view.Initialize(context.Background())
			require.NoError(t, err)

			view.Filter(surface, tt.category)
			assert.Equal(t, tt.visible, surface.VisibleCount())
		})
	}
}

func TestView_Filter_IsLossless(t *testing.T) {
	view := createTestView(t, testBusinesses())
	surface, err := view.Initialize(context.Background())
	require.NoError(t, err)

	view.Filter(surface, "Metal")
	view.Filter(surface, FilterAll)

	assert.Equal(t, 3, surface.VisibleCount())
	assert.Len(t, surface.Markers, 3)
}

func TestView_Select(t *testing.T) {
	view := createTestView(t, testBusinesses())
	surface, err := view.Initialize(context.Background())
	require.NoError(t, err)

	url, err := view.Select(surface, "2")
	require.NoError(t, err)
	assert.Equal(t, "/waste_exchange/2/", url)

	_, err = view.Select(surface, "404")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeBusinessNotFound, stdErr.Code)
}
