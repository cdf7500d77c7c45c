package sqlassets

import _ "embed"

//go:embed schema/leads_postgres.sql
var LeadsPostgresSQL string

//go:embed schema/leads_sqlite.sql
var LeadsSQLiteSQL string
