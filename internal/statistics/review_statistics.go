package statistics

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// ReviewStatistics holds statistics for a time period
type ReviewStatistics struct {
	Period        string `json:"period"`          // "2025-01"
	ReviewsCount  int    `json:"reviews_count"`   // Total review events
	CorrectCount  int    `json:"correct_count"`   // Reviews answered GOOD or EASY
	UniqueItems   int    `json:"unique_items"`    // Items reviewed at least once
	NewItemsCount int    `json:"new_items_count"` // Items reviewed for the first time ever
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	ReviewsCount  int `json:"reviews_count"`
	CorrectCount  int `json:"correct_count"`
	UniqueItems   int `json:"unique_items"` // deduplicated across periods
	NewItemsCount int `json:"new_items_count"`
}

// ResponseTimeStatistics summarizes the response times carried by review events, in milliseconds.
type ResponseTimeStatistics struct {
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	P90     float64 `json:"p90"`
}

// ReviewStatisticsResult holds both per-period and aggregate statistics
type ReviewStatisticsResult struct {
	Periods      []ReviewStatistics     `json:"periods"`
	Aggregate    AggregateStatistics    `json:"aggregate"`
	ResponseTime ResponseTimeStatistics `json:"response_time"`
}

type periodData struct {
	reviews  int
	correct  int
	items    map[string]struct{}
	newItems int
}

// CalculateReviewStatistics groups review events by month.
// It accepts optional year and month filters (0 means no filter).
// An item counts as new in the period of its first event, even when that event is filtered out of the result.
func CalculateReviewStatistics(events []scheduling.ReviewEvent, year, month int) (ReviewStatisticsResult, error) {
	sorted := make([]scheduling.ReviewEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	periods := make(map[string]*periodData)
	seen := make(map[string]struct{})
	globalItems := make(map[string]struct{})
	var responseTimes stats.Float64Data

	for _, event := range sorted {
		_, reviewedBefore := seen[event.ItemID]
		seen[event.ItemID] = struct{}{}

		if event.OccurredAt.IsZero() {
			continue
		}
		at := event.OccurredAt
		if !matchesFilter(at.Year(), int(at.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", at.Year(), int(at.Month()))
		data := ensurePeriodExists(periods, period)
		data.reviews++
		if event.Outcome.IsCorrect() {
			data.correct++
		}
		data.items[event.ItemID] = struct{}{}
		if !reviewedBefore {
			data.newItems++
		}
		globalItems[event.ItemID] = struct{}{}

		if event.ResponseTimeMs != nil {
			responseTimes = append(responseTimes, float64(*event.ResponseTimeMs))
		}
	}

	responseTime, err := summarizeResponseTimes(responseTimes)
	if err != nil {
		return ReviewStatisticsResult{}, fmt.Errorf("summarizeResponseTimes() > %w", err)
	}
	result := buildResult(periods, globalItems)
	result.ResponseTime = responseTime
	return result, nil
}

func summarizeResponseTimes(data stats.Float64Data) (ResponseTimeStatistics, error) {
	if len(data) == 0 {
		return ResponseTimeStatistics{}, nil
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return ResponseTimeStatistics{}, fmt.Errorf("stats.Mean() > %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return ResponseTimeStatistics{}, fmt.Errorf("stats.Median() > %w", err)
	}
	p90, err := stats.Percentile(data, 90)
	if err != nil {
		return ResponseTimeStatistics{}, fmt.Errorf("stats.Percentile() > %w", err)
	}
	return ResponseTimeStatistics{
		Samples: len(data),
		Mean:    mean,
		Median:  median,
		P90:     p90,
	}, nil
}

func ensurePeriodExists(periods map[string]*periodData, period string) *periodData {
	if periods[period] == nil {
		periods[period] = &periodData{items: make(map[string]struct{})}
	}
	return periods[period]
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func buildResult(periods map[string]*periodData, globalItems map[string]struct{}) ReviewStatisticsResult {
	result := ReviewStatisticsResult{
		Periods: make([]ReviewStatistics, 0, len(periods)),
	}
	for period, data := range periods {
		result.Periods = append(result.Periods, ReviewStatistics{
			Period:        period,
			ReviewsCount:  data.reviews,
			CorrectCount:  data.correct,
			UniqueItems:   len(data.items),
			NewItemsCount: data.newItems,
		})
		result.Aggregate.ReviewsCount += data.reviews
		result.Aggregate.CorrectCount += data.correct
		result.Aggregate.NewItemsCount += data.newItems
	}
	result.Aggregate.UniqueItems = len(globalItems)

	// Sort by period descending (newest first)
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period > result.Periods[j].Period
	})
	return result
}
