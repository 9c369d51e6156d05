// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package slug generates ASCII URL slugs for product names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks      = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
)

// From converts s into a lowercase, hyphen-separated ASCII slug.
// Accents are removed ("Café Noir" becomes "cafe-noir").
func From(s string) string {
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}

// WithSuffix appends suffix to the slug of s, keeping slugs unique per product.
func WithSuffix(s, suffix string) string {
	base := From(s)
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
