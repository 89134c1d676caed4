package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/cartstate/internal/catalog"
)

// LoadMode controls how errors are handled while loading catalogs.
type LoadMode int

const (
	// LoadModeFailFast stops at the first catalog that fails to load.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll loads every catalog and collects all errors.
	LoadModeCollectAll
)

// CatalogFile is one catalog found under a path.
type CatalogFile struct {
	Path    string
	Catalog *catalog.Catalog // nil when Err is set
	Err     error
}

// LoadCatalogs loads the catalog at path, or every catalog file below
// path when it is a directory. The returned error is set only when
// nothing could be loaded at all: path missing, unreadable, or holding no
// catalog files. Per-file failures are reported in CatalogFile.Err.
func LoadCatalogs(path string, mode LoadMode) ([]CatalogFile, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &catalog.LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog path not found: %s", path)}
	}
	if err != nil {
		return nil, &catalog.LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog path: %v", err)}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindCatalogFiles(path)
		if err != nil {
			return nil, &catalog.LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &catalog.LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no catalog files found in %s", path)}
		}
	}

	results := make([]CatalogFile, 0, len(files))
	for _, file := range files {
		c, err := catalog.Load(file)
		results = append(results, CatalogFile{Path: file, Catalog: c, Err: err})
		if err != nil && mode == LoadModeFailFast {
			break
		}
	}
	return results, nil
}

// FindCatalogFiles walks dir and returns every .cue, .yaml and .yml path.
func FindCatalogFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".cue", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// errorCode returns the code of a *catalog.LoadError, or ErrCodeGeneric.
func errorCode(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

// errorLine returns the source line of a *catalog.LoadError, or 0.
func errorLine(err error) int {
	var loadErr *catalog.LoadError
	if !errors.As(err, &loadErr) {
		return 0
	}
	if loadErr.Pos.IsValid() {
		return loadErr.Pos.Line()
	}
	return loadErr.Line
}
