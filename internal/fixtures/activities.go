package fixtures

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"gopkg.in/yaml.v3"
)

//go:embed activities.yaml
var defaultActivities []byte

// catalogFile is the on-disk shape of an activity catalog.
type catalogFile struct {
	Categories []string            `yaml:"categories"`
	Activities []activity.Activity `yaml:"activities"`
}

// DefaultCatalog returns the built-in activity catalog.
func DefaultCatalog() (*activity.Catalog, error) {
	return parseCatalog(defaultActivities)
}

// LoadCatalog reads a catalog from path, or returns the built-in catalog
// when path is empty.
func LoadCatalog(path string) (*activity.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open activity catalog: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// ReadCatalog decodes a YAML catalog from r.
func ReadCatalog(r io.Reader) (*activity.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read activity catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*activity.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", activity.ErrInvalidCatalog, err)
	}
	return activity.NewCatalog(file.Categories, file.Activities)
}
