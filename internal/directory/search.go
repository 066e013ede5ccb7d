// internal/directory/search.go
package directory

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Search runs keyword queries against the business index. The index is
// optional infrastructure: when Elasticsearch is not configured the
// directory falls back to the in-memory category filter.
type Search struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewSearch(config *Config, client *elasticsearch.Client, log logger.Logger) *Search {
	return &Search{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "directory-search"}),
	}
}

type searchHit struct {
	Source Business `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// Query matches keywords against name, waste and category, name
// weighted highest, with an optional exact category filter.
func (s *Search) Query(ctx context.Context, keywords, category string) ([]Business, error) {
	boolQuery := map[string]interface{}{}

	if keywords != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  keywords,
					"fields": []string{"name^3", "waste^2", "category"},
					"type":   "best_fields",
				},
			},
		}
	}
	if category != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"category": category},
			},
		}
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})

	req := esapi.SearchRequest{
		Index: []string{s.config.IndexName},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, stderrors.NewSearchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("search request failed", map[string]interface{}{
			"status": res.Status(),
		})
		return nil, stderrors.NewSearchFailedError(stderrors.NewExternalServiceError("elasticsearch", nil))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, stderrors.NewSearchFailedError(err)
	}

	businesses := make([]Business, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		b := hit.Source
		b.DetailURL = detailURL(b.ID)
		businesses = append(businesses, b)
	}
	return businesses, nil
}

// IndexBusiness mirrors a listing into the search index after insert.
func (s *Search) IndexBusiness(ctx context.Context, b *Business) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return stderrors.NewSearchFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      s.config.IndexName,
		DocumentID: strconv.FormatInt(b.ID, 10),
		Body:       strings.NewReader(string(doc)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return stderrors.NewSearchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return stderrors.NewSearchFailedError(stderrors.NewExternalServiceError("elasticsearch", nil))
	}
	return nil
}
