package utils

import "strings"

// NonEmptyStrings returns the trimmed elements of slice that are not blank.
func NonEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}
