package ratelimit

import (
	"strings"
)

// unlimited lists the liveness routes that are never rate limited, keyed by
// method and path.
var unlimited = map[string]bool{
	"GET /":       true,
	"GET /health": true,
}

// MatchEndpoint returns the configuration governing a request, or nil when
// the default limit applies. Liveness routes get a zero Limit, meaning
// unlimited. An exact path wins over a prefix; configured paths ending in "/"
// match any path below them.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefix == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefix = config
		}
	}
	return prefix
}
