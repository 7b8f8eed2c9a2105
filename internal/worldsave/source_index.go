// Package worldsave enumerates the files of a Minecraft save that the
// rest of the pipeline needs to look at — block regions, entity regions,
// and player data.
//
// File discovery is a directory listing plus a suffix/pattern filter, the
// same shape as OpenAnvilWorld (anvil_world.go: os.Open + Readdir +
// strings.HasSuffix), not a filesystem-globbing library: no repo in the
// retrieved corpus uses one for this.
package worldsave

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// SourceFile is one file the pipeline will scan or read, along with its
// last-modified time as reported by the filesystem.
type SourceFile struct {
	Path       string
	ModifiedAt time.Time
}

// Save is the set of source files discovered under a save directory root.
type Save struct {
	Root          string
	BlockRegions  []SourceFile
	EntityRegions []SourceFile
	PlayerFiles   []SourceFile
	LevelDat      *SourceFile
}

var anvilName = regexp.MustCompile(`^r\.-?\d+\.-?\d+\.mca$`)

// Open discovers every candidate file under root. A missing save directory
// is fatal; a missing entities/ or playerdata/ subdirectory is not — it
// simply yields no files for that category.
func Open(root string) (*Save, error) {
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("worldsave: save directory %q: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("worldsave: %q is not a directory", root)
	}

	save := &Save{Root: root}

	regions, err := listAnvilFiles(filepath.Join(root, "region"))
	if err != nil {
		return nil, fmt.Errorf("worldsave: region/: %w", err)
	}
	save.BlockRegions = regions

	entities, err := listAnvilFiles(filepath.Join(root, "entities"))
	if err != nil {
		return nil, err
	}
	save.EntityRegions = entities

	players, err := listFilesWithSuffix(filepath.Join(root, "playerdata"), ".dat")
	if err != nil {
		return nil, err
	}
	save.PlayerFiles = players

	levelPath := filepath.Join(root, "level.dat")
	if info, err := os.Stat(levelPath); err == nil {
		save.LevelDat = &SourceFile{Path: levelPath, ModifiedAt: info.ModTime()}
	}

	return save, nil
}

func listAnvilFiles(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() || !anvilName.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, SourceFile{Path: filepath.Join(dir, entry.Name()), ModifiedAt: info.ModTime()})
	}
	return files, nil
}

func listFilesWithSuffix(dir, suffix string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != suffix {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, SourceFile{Path: filepath.Join(dir, entry.Name()), ModifiedAt: info.ModTime()})
	}
	return files, nil
}
