package domain

import (
	"net/url"
	"strings"
)

type PosterVariant string

const (
	PosterCard   PosterVariant = "card"
	PosterDetail PosterVariant = "detail"
	PosterSearch PosterVariant = "search"
)

type ProfileVariant string

const (
	ProfileFull  ProfileVariant = "profile"
	ProfileSmall ProfileVariant = "small"
)

var posterSizes = map[PosterVariant]string{
	PosterCard:   "w342",
	PosterDetail: "w500",
	PosterSearch: "w92",
}

var profileSizes = map[ProfileVariant]string{
	ProfileFull:  "w185",
	ProfileSmall: "w92",
}

// PosterURL rewrites the size segment of an image CDN URL for the variant.
// It returns "" for a missing or unparsable URL.
func PosterURL(raw *string, variant PosterVariant) string {
	size, ok := posterSizes[variant]
	if !ok {
		size = posterSizes[PosterCard]
	}
	return resize(raw, size)
}

// ProfileURL is PosterURL for people pictures.
func ProfileURL(raw *string, variant ProfileVariant) string {
	size, ok := profileSizes[variant]
	if !ok {
		size = profileSizes[ProfileFull]
	}
	return resize(raw, size)
}

func resize(raw *string, size string) string {
	if raw == nil || *raw == "" {
		return ""
	}
	u, err := url.Parse(*raw)
	if err != nil || u.Scheme == "" {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for i, p := range parts {
		if p == "original" || strings.HasPrefix(p, "w") {
			parts[i] = size
			break
		}
	}
	u.Path = "/" + strings.Join(parts, "/")
	return u.String()
}
