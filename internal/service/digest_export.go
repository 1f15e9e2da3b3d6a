package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andresuchdata/replenish-engine/internal/engine"
)

var digestHeader = []string{
	"sku", "name", "stock", "lead_time_days",
	"annual_demand", "daily_demand", "demand_stddev",
	"eoq", "reorder_point", "safety_stock", "should_order",
	"total_score", "urgency", "days_remaining", "predicted_stockout_date",
	"recommended_order_qty", "recommended_order_value",
}

// WriteDigestCSV renders a batch result as the daily digest snapshot.
func WriteDigestCSV(w io.Writer, result *engine.BatchResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(digestHeader); err != nil {
		return fmt.Errorf("write digest header: %w", err)
	}

	for _, r := range result.Results {
		daysRemaining := ""
		if r.Stockout.DaysRemaining != nil {
			daysRemaining = strconv.FormatFloat(*r.Stockout.DaysRemaining, 'f', 1, 64)
		}
		predictedDate := ""
		if r.Stockout.PredictedDate != nil {
			predictedDate = r.Stockout.PredictedDate.Format("2006-01-02")
		}

		record := []string{
			r.SKU,
			r.Name,
			strconv.Itoa(r.Stock),
			strconv.Itoa(r.LeadTimeDays),
			strconv.FormatFloat(r.Demand.AnnualDemand, 'f', 2, 64),
			strconv.FormatFloat(r.Demand.DailyDemand, 'f', 4, 64),
			strconv.FormatFloat(r.Demand.DemandStdDev, 'f', 4, 64),
			strconv.Itoa(r.EOQ.EOQ),
			strconv.Itoa(r.Reorder.ReorderPoint),
			strconv.Itoa(r.Reorder.SafetyStock),
			strconv.FormatBool(r.Reorder.ShouldOrder),
			strconv.Itoa(r.Score.TotalScore),
			string(r.Stockout.Urgency),
			daysRemaining,
			predictedDate,
			strconv.Itoa(r.RecommendedOrderQty),
			r.RecommendedOrderValue.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write digest row for %s: %w", r.SKU, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush digest: %w", err)
	}
	return nil
}
