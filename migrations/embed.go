// Package migrations содержит SQL-схему, встроенную в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
