// Package cli provides the interactive gophnotes command-line host.
//
// One run of the program is one connection: the App generates a connection
// identity at start and every login, document and goal command is bound to
// it. Typical flow: offer registration when the store is empty, then read
// commands until the user exits.
//
// Key features:
//   - Register / Login / Logout
//   - Write and read encrypted document files
//   - Mark the daily goal done and show the streak
//
// Leaving the REPL (exit, quit or end of input) closes every session, the
// same way closing the application window would.
package cli
