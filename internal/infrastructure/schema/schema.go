// Package schema holds the DDL for the seeded tables.
package schema

import _ "embed"

// TeamMembers creates the team_members table if it does not exist. Mixed-case
// and reserved column names are quoted so the statement runs unchanged on
// SQLite and Postgres.
//
//go:embed team_members.sql
var TeamMembers string
