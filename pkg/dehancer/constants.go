package dehancer

import "time"

// DefaultBaseURL is the production API endpoint. Overridable through
// DEHANCER_BASE_URL, mostly for tests.
const DefaultBaseURL = "https://online.dehancer.com/api/v1"

// siteURL is the web app origin the API expects in Referer/Origin headers.
const siteURL = "https://online.dehancer.com"

// Cache keys. The presets entry holds the sorted preset list; the token
// entries hold the auth session cookies.
const (
	cacheKeyPresets     = "presets"
	cacheKeyAccessToken = "access-token"
	cacheKeyAuth        = "auth"
)

// presetsMaxAge is how long a cached preset list is trusted before the next
// invocation refetches it.
const presetsMaxAge = 24 * time.Hour

// baseHeaders mimics the browser the web app is served to. The service has
// no official public API, so requests need to look like the web client.
var baseHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0",
	"Accept-Language": "en-US,en;q=0.5",
	"Referer":         siteURL,
	"Origin":          siteURL,
	"DNT":             "1",
	"Sec-GPC":         "1",
	"Sec-Fetch-Dest":  "empty",
	"Sec-Fetch-Mode":  "cors",
	"Sec-Fetch-Site":  "cross-site",
}
