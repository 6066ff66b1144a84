package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/bisim/internal/compiler"
	"github.com/aretw0/bisim/internal/dto"
	"github.com/aretw0/bisim/pkg/domain"
)

var graphExtensions = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// projectFile is the CLI configuration file, never a graph.
const projectFile = "bisim.yaml"

// Loader implements ports.GraphLoader over a directory of YAML or JSON graph documents.
// A graph is named by its "name" field, or by its file name without extension.
type Loader struct {
	BasePath string
	parser   *compiler.Parser
}

// NewLoader creates a loader reading graph documents from basePath.
// basePath may also point at a single document.
func NewLoader(basePath string) *Loader {
	if basePath == "" {
		basePath = "."
	}
	return &Loader{BasePath: basePath, parser: compiler.NewParser()}
}

// Load parses and compiles the named graph.
func (l *Loader) Load(ctx context.Context, name string) (*domain.TransitionSystem, error) {
	doc, err := l.find(name)
	if err != nil {
		return nil, err
	}
	ts, _, err := compiler.Compile(doc)
	return ts, err
}

// Initial returns the initial partition declared by the named document, or nil.
func (l *Loader) Initial(ctx context.Context, name string) (domain.Partitioning, error) {
	doc, err := l.find(name)
	if err != nil {
		return nil, err
	}
	_, initial, err := compiler.Compile(doc)
	return initial, err
}

// List returns the names of all graph documents in ascending order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.scan()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) find(name string) (*dto.GraphDocument, error) {
	docs, err := l.scan()
	if err != nil {
		return nil, err
	}
	doc, ok := docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	return doc, nil
}

// scan reads every graph document under BasePath (non-recursive).
func (l *Loader) scan() (map[string]*dto.GraphDocument, error) {
	info, err := os.Stat(l.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*dto.GraphDocument{}, nil
		}
		return nil, fmt.Errorf("failed to stat graph path: %w", err)
	}

	var paths []string
	if info.IsDir() {
		entries, err := os.ReadDir(l.BasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to list graphs: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && entry.Name() != projectFile && graphExtensions[filepath.Ext(entry.Name())] {
				paths = append(paths, filepath.Join(l.BasePath, entry.Name()))
			}
		}
	} else {
		paths = []string{l.BasePath}
	}

	docs := make(map[string]*dto.GraphDocument, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read graph file: %w", err)
		}
		doc, err := l.parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if doc.Name == "" {
			base := filepath.Base(path)
			doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		// Collision Detection
		if existing, ok := seen[doc.Name]; ok {
			return nil, fmt.Errorf("collision detected: graph '%s' is defined in both '%s' and '%s'", doc.Name, existing, path)
		}
		seen[doc.Name] = path
		docs[doc.Name] = doc
	}
	return docs, nil
}
