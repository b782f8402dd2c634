package forecast

import "skycast/internal/models"

const (
	predictionWindow = 24

	warmThresholdC = 25.0
	coldThresholdC = 10.0
)

const (
	InsufficientData = "insufficient data"

	WarmAndSunny = "Tomorrow looks warm and sunny."
	Cold         = "Tomorrow will be cold, dress warmly."
	RainLikely   = "Rain is likely tomorrow, keep an umbrella at hand."
	Stable       = "The weather should stay stable tomorrow."
)

// PredictNextDay classifies the 24 entries after the current one into a one-line outlook.
func PredictNextDay(series []models.ForecastEntry) string {
	if len(series) < predictionWindow+1 {
		return InsufficientData
	}

	window := series[1 : predictionWindow+1]

	var sum float64
	for _, entry := range window {
		sum += entry.TemperatureCelsius()
	}
	mean := sum / float64(len(window))
	dominant := DominantCondition(window)

	switch {
	case mean > warmThresholdC && dominant == "Clear":
		return WarmAndSunny
	case mean < coldThresholdC:
		return Cold
	case dominant == "Rain":
		return RainLikely
	default:
		return Stable
	}
}
