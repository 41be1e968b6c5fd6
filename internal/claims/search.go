package claims

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	json "github.com/goccy/go-json"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/models"
)

// SearchSource reads claim records from an Elasticsearch index for
// deployments where claims history lives in an index instead of Postgres.
// It satisfies the same contract as Repository: unreachable search means
// an empty record set.
type SearchSource struct {
	client *elasticsearch.Client
	index  string
	limit  int
	logger logger.Logger
}

func NewSearchSource(client *elasticsearch.Client, index string, limit int, log logger.Logger) *SearchSource {
	if index == "" {
		index = "claims"
	}
	if limit <= 0 {
		limit = 1000
	}
	return &SearchSource{
		client: client,
		index:  index,
		limit:  limit,
		logger: log.WithFields(map[string]interface{}{"component": "claims-search"}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.ClaimRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildDestinationQuery(destination string, limit int) ([]byte, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"destination": destination,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{
				"accident_date": map[string]interface{}{
					"order":         "desc",
					"unmapped_type": "date",
				},
			},
		},
	}
	return json.Marshal(query)
}

// ClaimsByDestination returns claim records matching a destination, newest
// first, capped at the configured limit.
func (s *SearchSource) ClaimsByDestination(ctx context.Context, destination string) ([]models.ClaimRecord, error) {
	if s.client == nil {
		return nil, nil
	}

	body, err := buildDestinationQuery(NormalizeDestination(destination), s.limit)
	if err != nil {
		return nil, nil
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		s.logger.Warn("claims search failed, degrading to empty record set", map[string]interface{}{
			"destination": destination,
			"error":       err.Error(),
		})
		return nil, nil
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Warn("claims search returned error status", map[string]interface{}{
			"destination": destination,
			"status":      res.Status(),
		})
		return nil, nil
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		s.logger.Warn("claims search response decode failed", map[string]interface{}{
			"destination": destination,
			"error":       err.Error(),
		})
		return nil, nil
	}

	records := make([]models.ClaimRecord, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		records = append(records, hit.Source)
	}
	return records, nil
}
