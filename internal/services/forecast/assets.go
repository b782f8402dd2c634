package forecast

// AssetKey names the artwork the UI shows for a sky condition.
type AssetKey string

const (
	AssetClear        AssetKey = "clear"
	AssetClouds       AssetKey = "clouds"
	AssetRain         AssetKey = "rain"
	AssetDrizzle      AssetKey = "drizzle"
	AssetThunderstorm AssetKey = "thunderstorm"
	AssetSnow         AssetKey = "snow"
	AssetAtmosphere   AssetKey = "atmosphere"
	AssetUnknown      AssetKey = "unknown"
)

// AssetKeyFor maps a provider sky condition to its asset.
func AssetKeyFor(condition string) AssetKey {
	switch condition {
	case "Clear":
		return AssetClear
	case "Clouds":
		return AssetClouds
	case "Rain":
		return AssetRain
	case "Drizzle":
		return AssetDrizzle
	case "Thunderstorm":
		return AssetThunderstorm
	case "Snow":
		return AssetSnow
	case "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return AssetAtmosphere
	default:
		return AssetUnknown
	}
}
