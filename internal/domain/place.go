package domain

import "math"

type namedPoint struct {
	name     string
	lat, lon float64
	rangeDeg float64
}

// landmarks are matched by planar distance in degrees, in order.
var landmarks = []namedPoint{
	{"Tokyo", 35.6762, 139.6503, 0.5},
	{"Osaka", 34.6937, 135.5023, 0.4},
	{"Kyoto", 35.0116, 135.7681, 0.3},
	{"Yokohama", 35.4437, 139.6380, 0.3},
	{"Nagoya", 35.1815, 136.9066, 0.4},
	{"Sendai", 38.2682, 140.8694, 0.4},
	{"Hiroshima", 34.3853, 132.4553, 0.3},
	{"Fukuoka", 33.5904, 130.4017, 0.4},
	{"Sapporo", 43.0642, 141.3469, 0.5},
	{"Kumamoto", 32.8031, 130.7079, 0.3},
	{"Kobe", 34.6901, 135.1956, 0.2},
	{"Kanazawa", 36.5944, 136.6256, 0.3},
	{"Niigata", 37.9026, 139.0232, 0.3},
	{"Shizuoka", 34.9756, 138.3827, 0.3},
	{"Matsuyama", 33.8416, 132.7656, 0.3},
	{"Kagoshima", 31.5966, 130.5571, 0.3},
	{"Naha", 26.2124, 127.6792, 0.3},
}

// PlaceName gives a human-readable name for a point without any network
// lookup: a major city when the point is close to one, otherwise the
// surrounding region, otherwise "Japan". Region names follow loc.
func PlaceName(lat, lon float64, loc Locale) string {
	for _, p := range landmarks {
		if math.Hypot(lat-p.lat, lon-p.lon) < p.rangeDeg {
			return p.name
		}
	}
	return Text(loc, "region."+region(lat, lon))
}

func region(lat, lon float64) string {
	switch {
	case lat >= 35.5 && lon >= 139 && lon <= 142:
		return "kanto"
	case lat >= 34 && lat <= 35.5 && lon >= 135 && lon <= 137:
		return "kansai"
	case lat >= 35 && lat <= 37.5 && lon >= 136 && lon <= 139:
		return "chubu"
	case lat >= 37.5 && lon >= 140:
		return "tohoku"
	case lat >= 32 && lat <= 34 && lon >= 129 && lon <= 132:
		return "kyushu"
	case lat >= 33.5 && lat <= 35 && lon >= 132 && lon <= 135:
		return "chugoku"
	case lat >= 33 && lat <= 34.5 && lon >= 134 && lon <= 135:
		return "shikoku"
	case lat >= 41.5:
		return "hokkaido"
	case lat <= 28:
		return "okinawa"
	default:
		return "japan"
	}
}
