package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// FileSource loads a planning state from a materials file and a commodities file.
// Each file's encoding is chosen by its extension.
type FileSource struct {
	MaterialsPath   string
	CommoditiesPath string
	builder         *Builder
}

// NewFileSource creates a file source; alpha is the default demand smoothing factor
func NewFileSource(materialsPath, commoditiesPath string, alpha float64) *FileSource {
	return &FileSource{
		MaterialsPath:   materialsPath,
		CommoditiesPath: commoditiesPath,
		builder:         NewBuilder(alpha),
	}
}

// ReadDocument decodes both files without building domain objects
func (s *FileSource) ReadDocument() (*Document, error) {
	doc := &Document{}
	if err := readMaterialsFile(s.MaterialsPath, &doc.Materials); err != nil {
		return nil, err
	}
	if err := readFile(s.CommoditiesPath, &doc.Commodities); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load decodes and builds the catalog
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.ReadDocument()
	if err != nil {
		return nil, err
	}
	return s.builder.Build(doc)
}

// LoadState implements planning.StateLoader
func (s *FileSource) LoadState(ctx context.Context) (*planning.PlanningState, []*planning.DataRangeWarning, error) {
	cat, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	state, err := cat.State()
	if err != nil {
		return nil, cat.Warnings, err
	}
	return state, cat.Warnings, nil
}

func readFile(path string, out interface{}) error {
	format, data, err := readRaw(path)
	if err != nil {
		return err
	}
	return decodeFile(path, data, format, out)
}

// readMaterialsFile rejects repeated material names before the keyed decode collapses them
func readMaterialsFile(path string, out *map[string]MaterialRecord) error {
	format, data, err := readRaw(path)
	if err != nil {
		return err
	}
	if err := CheckUniqueMaterials(data, format, filepath.Base(path)); err != nil {
		return err
	}
	return decodeFile(path, data, format, out)
}

func readRaw(path string) (Format, []byte, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	return format, data, nil
}

func decodeFile(path string, data []byte, format Format, out interface{}) error {
	if err := Decode(data, format, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteDocument encodes doc into dir as materials.<ext> and commodities.<ext>
// and returns the two paths written.
func WriteDocument(dir string, doc *Document, format Format) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create catalog directory: %w", err)
	}

	materialsPath := filepath.Join(dir, "materials"+format.Extension())
	commoditiesPath := filepath.Join(dir, "commodities"+format.Extension())

	if err := writeFile(materialsPath, doc.Materials, format); err != nil {
		return "", "", err
	}
	if err := writeFile(commoditiesPath, doc.Commodities, format); err != nil {
		return "", "", err
	}
	return materialsPath, commoditiesPath, nil
}

func writeFile(path string, v interface{}, format Format) error {
	data, err := Encode(v, format)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
