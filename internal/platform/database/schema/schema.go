// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package schema names the tables and columns created by data/migrations.
//
// Repositories build their column lists from these descriptors so a renamed
// column is changed in one place.
package schema

import "strings"

// columnList joins columns for a SELECT or INSERT clause.
func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
