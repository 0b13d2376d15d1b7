package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// CalculatorStats godoc
// @Summary      Calculator statistics
// @Description  Aggregate totals over the run history, optionally restricted to specific run ids (?ids=1,2,3)
// @Tags         dashboard
// @Produce      json
// @Param        ids  query     string  false  "Comma-separated run ids"
// @Success      200  {object}  object
// @Failure      400  {object}  object
// @Failure      500  {object}  object
// @Router       /api/calculator/stats [get]
func CalculatorStats(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var ids []int64
		if raw := c.Query("ids"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run id list"})
					return
				}
				ids = append(ids, id)
			}
		}

		query := `
			SELECT
				COUNT(*),
				COALESCE(SUM(record_count), 0),
				COALESCE(SUM(total_items), 0),
				COALESCE(SUM(total_forms), 0),
				COALESCE(SUM(cutoff_forms), 0),
				COALESCE(SUM(total_area_m2), 0),
				COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days')
			FROM calculation_runs`
		args := []interface{}{}
		if len(ids) > 0 {
			query += ` WHERE id = ANY($1)`
			args = append(args, pq.Array(ids))
		}

		var (
			runCount    int64
			records     int64
			items       int64
			forms       int64
			cutoffs     int64
			totalAreaM2 float64
			recentRuns  int64
		)
		err := db.QueryRowContext(ctx, query, args...).Scan(
			&runCount, &records, &items, &forms, &cutoffs, &totalAreaM2, &recentRuns)
		if err != nil {
			log.Printf("[dashboard] stats query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}

		formsByType, err := sumFormsByType(c, db, ids)
		if err != nil {
			log.Printf("[dashboard] forms_by_type query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"runs":             runCount,
			"runs_last_7_days": recentRuns,
			"records":          records,
			"total_items":      items,
			"total_forms":      forms,
			"cutoff_forms":     cutoffs,
			"total_area_m2":    totalAreaM2,
			"forms_by_type":    formsByType,
		})
	}
}

// sumFormsByType merges the per-run forms_by_type jsonb maps into one
// total per form type.
func sumFormsByType(c *gin.Context, db *sql.DB, ids []int64) (map[string]int, error) {
	ctx, cancel := utils.GetFastQueryContext(c.Request.Context())
	defer cancel()

	query := `SELECT forms_by_type FROM calculation_runs WHERE forms_by_type IS NOT NULL`
	args := []interface{}{}
	if len(ids) > 0 {
		query += ` AND id = ANY($1)`
		args = append(args, pq.Array(ids))
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var byType map[string]int
		if err := json.Unmarshal(raw, &byType); err != nil {
			continue
		}
		for typeID, n := range byType {
			totals[typeID] += n
		}
	}
	return totals, rows.Err()
}
