package ratelimit

import "strings"

// matchEndpoint finds the endpoint override for a path and method. Exact
// matches win over prefix matches; nil means the default limit applies.
func matchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Path == path && ec.Method == method {
			return ec
		}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}

	return nil
}

// endpointClass returns the bucket grouping key for a path. Requests that
// share an endpoint override share a bucket; everything else is grouped under
// the default class.
func endpointClass(path, method string, configs []EndpointConfig) string {
	if ec := matchEndpoint(path, method, configs); ec != nil && ec.Path != "" {
		return method + " " + ec.Path
	}
	return "default"
}
