package migrations

import "embed"

// FS holds the schema files applied by Open, in lexical order.
//
//go:embed *.sql
var FS embed.FS
