package shared

import "time"

// dateLayouts are the two shapes the client sends: the date picker's
// plain YYYY-MM-DD and full RFC3339 timestamps from older saved rows.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate validates a client-supplied date. Empty is allowed; the
// date fields are all optional at the wire level.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	var parsed time.Time
	for _, layout := range dateLayouts {
		parsed, err = time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
