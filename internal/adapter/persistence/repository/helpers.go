package repository

import "os"

// getenvDefault resolves table names like SESSIONS_TABLE with a local-run
// fallback.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
