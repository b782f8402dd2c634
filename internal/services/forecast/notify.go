package forecast

import (
	"fmt"

	"skycast/internal/models"
)

type Notification struct {
	Title string `json:"title" example:"Take an umbrella"`
	Body  string `json:"body" example:"Rain is expected in London."`
}

// Advise picks the clothing notification for the current conditions, if any.
func Advise(city string, current models.ForecastEntry) (Notification, bool) {
	temp := current.TemperatureCelsius()

	switch {
	case current.SkyCondition == "Rain":
		return Notification{
			Title: "Take an umbrella",
			Body:  fmt.Sprintf("Rain is expected in %s.", city),
		}, true
	case current.SkyCondition == "Clear" && temp > warmThresholdC:
		return Notification{
			Title: "Dress light",
			Body:  fmt.Sprintf("It is %.0f°C and sunny in %s.", temp, city),
		}, true
	case temp < coldThresholdC:
		return Notification{
			Title: "Wear a jacket",
			Body:  fmt.Sprintf("It is %.0f°C in %s.", temp, city),
		}, true
	default:
		return Notification{}, false
	}
}
