package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slok/linguaflow/internal/storage"
	taskio "github.com/slok/linguaflow/internal/storage/io"
	"github.com/slok/linguaflow/internal/storage/remote"
)

// newTaskRepository resolves a task source into a repository. Sources
// starting with http:// or https:// are fetched remotely, anything else is
// treated as a local file path.
func newTaskRepository(rootCmd *RootCommand, source string) (storage.TaskRepository, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		repo, err := remote.NewTaskHTTPRepository(remote.TaskHTTPRepositoryConfig{
			URL:    source,
			Logger: rootCmd.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create HTTP task repository: %w", err)
		}
		return repo, nil
	}

	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("could not resolve task file path: %w", err)
	}

	dir, file := filepath.Split(absPath)
	return taskio.NewTaskFileRepository(os.DirFS(dir), file), nil
}
