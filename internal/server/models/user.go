// Package models holds the server-side domain types shared by repositories
// and services.
package models

// User is an identity that can be reached with a passcode.
type User struct {
	ID   string
	Name string
	Key  string
}
