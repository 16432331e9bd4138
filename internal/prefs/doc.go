// Package prefs implements the preference store: a plain key/value table
// in a local SQLite database. It holds settings that need no protection,
// such as the access group the stored user was last saved under.
//
// Use OpenSQLite to open the database and apply the embedded migrations,
// then NewSQLiteRepository to access it.
package prefs
