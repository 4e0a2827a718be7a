package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL tags connections with the service name so they are
// identifiable in pg_stat_activity. An explicit application name wins.
func normalizeDBURL(raw, applicationName string) string {
	trimmed := strings.TrimSpace(raw)
	applicationName = strings.TrimSpace(applicationName)
	if trimmed == "" || applicationName == "" {
		return raw
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get("application_name") != "" || query.Get("fallback_application_name") != "" {
			return raw
		}
		query.Set("fallback_application_name", applicationName)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	for _, token := range strings.Fields(trimmed) {
		if strings.HasPrefix(token, "application_name=") || strings.HasPrefix(token, "fallback_application_name=") {
			return raw
		}
	}
	return trimmed + " fallback_application_name=" + applicationName
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
