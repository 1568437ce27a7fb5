package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default linguaflow data directory name (relative to home).
	DefaultDataDir = ".linguaflow"
	// DBFile is the filename for the sessions database.
	DBFile = "linguaflow.db"
)

// DBPath returns the full path to the sessions database inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}
