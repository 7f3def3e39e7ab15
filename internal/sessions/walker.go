package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	sessionFileExt = ".jsonl"

	// subagentDirName is where delegated sub-agent transcripts live, nested
	// under the parent session's UUID directory.
	subagentDirName = "subagents"
)

// SessionFile is one candidate session log found under the projects root.
type SessionFile struct {
	Path       string
	Project    string // display name, already normalized
	Autonomous bool
	Size       int64
	ModTime    time.Time
}

// DefaultSessionsDir returns the standard Claude Code projects directory.
func DefaultSessionsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude", "projects"), nil
}

// DiscoverSessionFiles enumerates session logs for every project under root.
// Direct *.jsonl files are interactive sessions; files under
// <uuid>/subagents/ are autonomous. An unreadable root is fatal; unreadable
// project directories are skipped.
func DiscoverSessionFiles(root string) ([]SessionFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory %s: %w", root, err)
	}

	var files []SessionFile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := ProjectDisplayName(entry.Name())
		files = append(files, collectProjectFiles(filepath.Join(root, entry.Name()), project)...)
	}
	return files, nil
}

func collectProjectFiles(dir, project string) []SessionFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []SessionFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			// Sub-agent transcripts sit under a session UUID directory.
			if _, err := uuid.Parse(name); err != nil {
				continue
			}
			subDir := filepath.Join(dir, name, subagentDirName)
			files = append(files, collectSessionFiles(subDir, project, true)...)
			continue
		}
		if filepath.Ext(name) != sessionFileExt {
			continue
		}
		if f, ok := statSessionFile(filepath.Join(dir, name), project, false, entry); ok {
			files = append(files, f)
		}
	}
	return files
}

func collectSessionFiles(dir, project string, autonomous bool) []SessionFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []SessionFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != sessionFileExt {
			continue
		}
		if f, ok := statSessionFile(filepath.Join(dir, entry.Name()), project, autonomous, entry); ok {
			files = append(files, f)
		}
	}
	return files
}

func statSessionFile(path, project string, autonomous bool, entry os.DirEntry) (SessionFile, bool) {
	info, err := entry.Info()
	if err != nil {
		return SessionFile{}, false
	}
	return SessionFile{
		Path:       path,
		Project:    project,
		Autonomous: autonomous,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
	}, true
}
