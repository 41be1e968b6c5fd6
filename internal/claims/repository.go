package claims

import (
	"context"
	"database/sql"
	"strings"

	errs "insurance-advisor/internal/common/errors"
	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/models"
)

// destinationAliases maps common traveler phrasing (cities, abbreviations)
// to the destination names the claims store uses.
var destinationAliases = map[string]string{
	"tokyo":        "japan",
	"bangkok":      "thailand",
	"kuala lumpur": "malaysia",
	"bali":         "indonesia",
	"beijing":      "china",
	"shanghai":     "china",
	"sydney":       "australia",
	"melbourne":    "australia",
	"uk":           "united kingdom",
	"usa":          "united states",
}

// NormalizeDestination maps a free-text destination onto the claims-store
// naming. Unknown names pass through lowercased.
func NormalizeDestination(destination string) string {
	d := strings.ToLower(strings.TrimSpace(destination))
	if mapped, ok := destinationAliases[d]; ok {
		return mapped
	}
	return d
}

// Repository reads historical claim records from the claims database. An
// unreachable database degrades to an empty record set; the decision core
// never distinguishes "no data" from "database unreachable."
type Repository struct {
	db     *sql.DB
	limit  int
	logger logger.Logger
}

func NewRepository(db *sql.DB, limit int, log logger.Logger) *Repository {
	if limit <= 0 {
		limit = 1000
	}
	return &Repository{
		db:     db,
		limit:  limit,
		logger: log.WithFields(map[string]interface{}{"component": "claims-repository"}),
	}
}

const claimsByDestinationQuery = `
	SELECT
		claim_number,
		destination,
		claim_type,
		cause_of_loss,
		loss_type,
		COALESCE(gross_incurred, net_incurred, 0),
		COALESCE(accident_date::text, '')
	FROM claims
	WHERE LOWER(destination) LIKE '%' || $1 || '%'
	ORDER BY accident_date DESC
	LIMIT $2`

// ClaimsByDestination returns raw claim records for a destination, newest
// first, capped at the configured limit.
func (r *Repository) ClaimsByDestination(ctx context.Context, destination string) ([]models.ClaimRecord, error) {
	if r.db == nil {
		r.logger.Warn("claims database not configured, returning no records", map[string]interface{}{
			"destination": destination,
		})
		return nil, nil
	}

	normalized := NormalizeDestination(destination)

	rows, err := r.db.QueryContext(ctx, claimsByDestinationQuery, normalized, r.limit)
	if err != nil {
		qerr := errs.NewClaimsQueryError(err.Error())
		r.logger.Warn("claims query failed, degrading to empty record set", map[string]interface{}{
			"destination": destination,
			"code":        string(errs.CodeOf(qerr)),
			"retryable":   errs.IsRetryable(qerr),
			"error":       err.Error(),
		})
		return nil, nil
	}
	defer rows.Close()

	var records []models.ClaimRecord
	for rows.Next() {
		var rec models.ClaimRecord
		var lossType sql.NullString
		if err := rows.Scan(
			&rec.ClaimNumber,
			&rec.Destination,
			&rec.ClaimType,
			&rec.CauseOfLoss,
			&lossType,
			&rec.IncurredAmount,
			&rec.AccidentDate,
		); err != nil {
			r.logger.Warn("claims row scan failed, skipping record", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		rec.LossType = lossType.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("claims row iteration failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return records, nil
}
