// Package history provides SQLite-based storage for the local
// reported-variants archive.
//
// Every report build appends its variants to an archive database in the
// user's data directory. The archive answers the recurring questions of
// clinical review: has this exact variant been reported in an earlier case,
// and what has been reported in this gene before. It never touches the input
// annotation database.
//
// The archive file lives in the XDG data directory by default and is created
// on first use.
package history
