package request

import "strings"

const (
	ClientTypeWeb    = "web"
	ClientTypeMobile = "mobile"
)

// ResolveClientType menentukan jenis klien dari header eksplisit dulu,
// baru menebak dari User-Agent kalau header kosong.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientTypeWeb:
		return ClientTypeWeb
	case ClientTypeMobile:
		return ClientTypeMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") || strings.Contains(ua, "cfnetwork") {
		return ClientTypeMobile
	}

	return ClientTypeWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientTypeWeb
}
