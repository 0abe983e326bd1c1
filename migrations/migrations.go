// migrations хранит SQL-миграции goose, встроенные в бинарник:
// `mensa-scraper -migrate` работает независимо от рабочей директории.
package migrations

import "embed"

// FS — корень с файлами NNNNN_name.sql.
//
//go:embed *.sql
var FS embed.FS
