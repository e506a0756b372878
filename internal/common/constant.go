// Package common contains shared constants, sentinel errors and small helpers
// used across GophNotes components.
package common

// DateKeyLayout is the time layout of a calendar date key ("2024-01-05").
const DateKeyLayout = "2006-01-02"

// AppName prefixes domain-separation labels and envelope headers.
const AppName = "GOPHNOTES"
