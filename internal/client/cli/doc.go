// Package cli implements the interactive jobintake command line.
//
// The App wires configuration, the local database, the careers API client
// and the application services, then runs a small REPL:
//
//	help             show available commands
//	apply <jobId>    fill in and submit an application for a posting
//	history          list applications submitted from this machine
//	token            store an access token (input is hidden)
//	logout           forget the stored access token
//	forget           delete the stored token and the local history
//	exit | quit      leave the program
//
// Inside apply the form has its own prompt with show, edit <field>, resume,
// submit and cancel. At a field prompt an empty answer keeps the current value
// and "-" clears an optional field.
package cli
