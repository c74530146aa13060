package ratelimit

import "strings"

// MatchEndpoint finds the endpoint configuration matching the given
// path and method. Exact matches win over prefix matches. Returns nil
// when no configuration applies, in which case the caller should use
// the global default.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health check endpoint is unlimited.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Prefix match for paths ending with "/".
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
