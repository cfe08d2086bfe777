// Package models contains the entities persisted by the Fortress store.
package models

// Department groups users for reporting purposes. MemberCount is derived at
// read time from the users table (Active members only) and is never stored.
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}
