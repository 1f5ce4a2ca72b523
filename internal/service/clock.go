package service

import (
	"strings"
	"time"
)

// now returns the current UTC time at the precision both stores keep
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optionalImage maps an empty image reference to nil
func optionalImage(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	v := *image
	return &v
}
