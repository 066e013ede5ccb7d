// internal/directory/store.go
package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/validation"

	"github.com/redis/go-redis/v9"
)

const businessCacheKey = "directory:businesses"

// Store loads and persists directory listings. The bulk listing is
// cached in Redis because the map page fetches it on every load.
type Store struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewStore(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Store {
	return &Store{
		config: config,
		db:     db,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"component": "directory-store"}),
	}
}

// ListBusinesses returns every listing, cache first.
func (s *Store) ListBusinesses(ctx context.Context) ([]Business, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, businessCacheKey).Result(); err == nil {
			var cached []Business
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	query := `
		SELECT b.id, b.name, COALESCE(c.name, ''), b.waste, b.phone, b.email,
		       b.latitude, b.longitude, COALESCE(b.image_url, '')
		FROM businesses b
		LEFT JOIN categories c ON c.id = b.category_id
		ORDER BY b.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list businesses", err)
	}
	defer rows.Close()

	var businesses []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Waste, &b.Phone, &b.Email,
			&b.Latitude, &b.Longitude, &b.Image); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan business", err)
		}
		b.DetailURL = detailURL(b.ID)
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("iterate businesses", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(businesses); err == nil {
			if err := s.redis.Set(ctx, businessCacheKey, data, s.config.CacheTTL).Err(); err != nil {
				s.logger.Warn("business cache write failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return businesses, nil
}

// GetBusiness loads a single listing by id.
func (s *Store) GetBusiness(ctx context.Context, id int64) (*Business, error) {
	query := `
		SELECT b.id, b.name, COALESCE(c.name, ''), b.waste, b.phone, b.email,
		       b.latitude, b.longitude, COALESCE(b.image_url, '')
		FROM businesses b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1`

	var b Business
	err := s.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Category, &b.Waste,
		&b.Phone, &b.Email, &b.Latitude, &b.Longitude, &b.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stderrors.NewBusinessNotFoundError(strconv.FormatInt(id, 10))
		}
		return nil, stderrors.NewQueryExecutionFailedError("get business", err)
	}
	b.DetailURL = detailURL(b.ID)
	return &b, nil
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list categories", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertBusiness stores a new listing, creating the category on first
// use, and drops the bulk cache so the next page load sees it.
func (s *Store) InsertBusiness(ctx context.Context, input *RegistrationInput) (*Business, error) {
	lat, err := strconv.ParseFloat(input.Latitude, 64)
	if err != nil {
		return nil, stderrors.NewValidationFailedError("latitude is not a number")
	}
	lng, err := strconv.ParseFloat(input.Longitude, 64)
	if err != nil {
		return nil, stderrors.NewValidationFailedError("longitude is not a number")
	}
	if !validation.ValidateCoordinate(lat, lng) {
		return nil, stderrors.NewValidationFailedError("coordinates are out of range")
	}

	var categoryID sql.NullInt64
	if input.Category != "" {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, input.Category).Scan(&categoryID.Int64)
		if err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("upsert category", err)
		}
		categoryID.Valid = true
	}

	b := Business{
		Name:      input.Name,
		Category:  input.Category,
		Waste:     input.Waste,
		Phone:     input.Phone,
		Email:     input.Email,
		Latitude:  lat,
		Longitude: lng,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO businesses (name, waste, phone, email, latitude, longitude, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		b.Name, b.Waste, b.Phone, b.Email, b.Latitude, b.Longitude, categoryID,
	).Scan(&b.ID)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("insert business", err)
	}
	b.DetailURL = detailURL(b.ID)

	if s.redis != nil {
		if err := s.redis.Del(ctx, businessCacheKey).Err(); err != nil {
			s.logger.Warn("business cache invalidation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &b, nil
}

func detailURL(id int64) string {
	return fmt.Sprintf("/waste_exchange/%d/", id)
}
