// Package forecast turns the raw 3-hour provider series into the shapes the UI renders.
// Everything here is pure: no I/O and no state between calls.
package forecast

import (
	"math"
	"slices"
	"strings"

	"skycast/internal/models"
)

const (
	MaxDays = 5

	DefaultBlockSize  = 3
	DefaultMaxEntries = 16
)

// GroupByDay buckets entries by calendar date and summarizes each day,
// earliest first, keeping at most MaxDays days.
func GroupByDay(series []models.ForecastEntry) []models.DailyAggregate {
	type bucket struct {
		date    string
		entries []models.ForecastEntry
	}

	index := make(map[string]int)
	buckets := make([]bucket, 0, MaxDays+1)
	for _, entry := range series {
		date := entry.Date()
		i, ok := index[date]
		if !ok {
			i = len(buckets)
			index[date] = i
			buckets = append(buckets, bucket{date: date})
		}
		buckets[i].entries = append(buckets[i].entries, entry)
	}

	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return strings.Compare(a.date, b.date)
	})
	if len(buckets) > MaxDays {
		buckets = buckets[:MaxDays]
	}

	days := make([]models.DailyAggregate, 0, len(buckets))
	for _, b := range buckets {
		high := b.entries[0].TemperatureCelsius()
		low := high
		var pop float64
		for _, entry := range b.entries {
			c := entry.TemperatureCelsius()
			high = math.Max(high, c)
			low = math.Min(low, c)
			pop += entry.PrecipitationProbability
		}

		days = append(days, models.DailyAggregate{
			Date:                        b.date,
			HighTemperatureC:            high,
			LowTemperatureC:             low,
			AveragePrecipitationPercent: pop / float64(len(b.entries)) * 100,
			DominantSkyCondition:        DominantCondition(b.entries),
		})
	}

	return days
}

// GroupIntoBlocks skips the current entry at index 0 and summarizes up to maxEntries
// following entries in consecutive blocks of blockSize. A shorter trailing block is kept.
// Non-positive arguments fall back to DefaultBlockSize and DefaultMaxEntries.
func GroupIntoBlocks(series []models.ForecastEntry, blockSize, maxEntries int) []models.Block {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	end := min(1+maxEntries, len(series))
	blocks := make([]models.Block, 0, max(0, (end-1+blockSize-1)/blockSize))

	for start := 1; start < end; start += blockSize {
		blocks = append(blocks, summarizeBlock(series[start:min(start+blockSize, end)]))
	}

	return blocks
}

// DefaultBlocks groups the series the way the hourly strip shows it.
func DefaultBlocks(series []models.ForecastEntry) []models.Block {
	return GroupIntoBlocks(series, DefaultBlockSize, DefaultMaxEntries)
}

func summarizeBlock(entries []models.ForecastEntry) models.Block {
	var temp, wind, humidity float64
	for _, entry := range entries {
		temp += entry.TemperatureCelsius()
		wind += entry.WindSpeed
		humidity += entry.HumidityPercent
	}
	n := float64(len(entries))

	return models.Block{
		Start:                entries[0].Clock(),
		End:                  entries[len(entries)-1].Clock(),
		TemperatureC:         math.Round(temp / n),
		DominantSkyCondition: DominantCondition(entries),
		WindSpeed:            wind / n,
		HumidityPercent:      humidity / n,
	}
}

// DominantCondition returns the most frequent sky condition. On a tie the condition
// that reached the winning count first keeps it, so the result depends on entry order.
func DominantCondition(entries []models.ForecastEntry) string {
	counts := make(map[string]int)
	dominant, best := "", 0
	for _, entry := range entries {
		counts[entry.SkyCondition]++
		if n := counts[entry.SkyCondition]; n > best {
			dominant, best = entry.SkyCondition, n
		}
	}
	return dominant
}
