package fiscal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Ids of the built-in datasets.
const (
	DatasetTreasuryRates    = "avg_interest_rates"
	DatasetDebtToPenny      = "debt_to_penny"
	DatasetMonthlyStatement = "mts_table_1"
	DatasetExchangeRates    = "rates_of_exchange"
)

const defaultDatasetLimit = 100

// Dataset describes one Fiscal Data endpoint: where it lives under the
// service root and the default query shape requests carry. The monthly
// statement intentionally has no sort; the API already serves it
// newest-first and the upstream table rejects unknown sort fields.
type Dataset struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Limit int    `json:"limit" yaml:"limit"`
	Sort  string `json:"sort" yaml:"sort"`
}

var defaultDatasets = []Dataset{
	{
		ID:    DatasetTreasuryRates,
		Name:  "Average Interest Rates on U.S. Treasury Securities",
		Path:  "/v1/accounting/od/avg_interest_rates",
		Limit: 100,
		Sort:  "-record_date",
	},
	{
		ID:    DatasetDebtToPenny,
		Name:  "Debt to the Penny",
		Path:  "/v1/accounting/od/debt_to_penny",
		Limit: 1000,
		Sort:  "-record_date",
	},
	{
		ID:    DatasetMonthlyStatement,
		Name:  "Monthly Treasury Statement (Table 1)",
		Path:  "/v1/accounting/mts/mts_table_1",
		Limit: 100,
	},
	{
		ID:    DatasetExchangeRates,
		Name:  "Treasury Reporting Rates of Exchange",
		Path:  "/v1/accounting/od/rates_of_exchange",
		Limit: 200,
		Sort:  "-record_date",
	},
}

// catalogFile represents the structure of the datasets registry file.
type catalogFile struct {
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
}

// Catalog materializes dataset definitions, either built-in or loaded from a
// registry file.
type Catalog struct {
	mu       sync.RWMutex
	datasets []Dataset
	idx      map[string]Dataset
}

// DefaultCatalog returns the built-in dataset catalog.
func DefaultCatalog() *Catalog {
	cat := &Catalog{
		datasets: make([]Dataset, len(defaultDatasets)),
		idx:      make(map[string]Dataset, len(defaultDatasets)),
	}
	copy(cat.datasets, defaultDatasets)
	for _, ds := range cat.datasets {
		cat.idx[ds.ID] = ds
	}
	return cat
}

// LoadCatalog loads the dataset catalog from a YAML/JSON registry file. The
// file replaces the built-in set.
func LoadCatalog(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("datasets file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open datasets file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read datasets file: %w", err)
	}

	fileCat, err := parseCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileCat.Datasets) == 0 {
		return nil, errors.New("datasets file contains no datasets entries")
	}

	cat := &Catalog{
		datasets: make([]Dataset, len(fileCat.Datasets)),
		idx:      make(map[string]Dataset, len(fileCat.Datasets)),
	}
	for i := range fileCat.Datasets {
		ds := sanitizeDataset(fileCat.Datasets[i])
		if err := validateDataset(ds); err != nil {
			return nil, fmt.Errorf("datasets[%d]: %w", i, err)
		}
		if _, exists := cat.idx[ds.ID]; exists {
			return nil, fmt.Errorf("duplicate dataset id %q", ds.ID)
		}
		cat.datasets[i] = ds
		cat.idx[ds.ID] = ds
	}

	return cat, nil
}

// parseCatalog attempts to decode the datasets file content.
func parseCatalog(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if cat, err := unmarshalCatalog(d.name, data, d.fn); err == nil {
			return cat, nil
		}
	}

	return catalogFile{}, errors.New("datasets file format not recognized (expected YAML or JSON)")
}

// unmarshalCatalog decodes the datasets file using the provided function.
func unmarshalCatalog(name string, data []byte, fn func([]byte, any) error) (catalogFile, error) {
	var cat catalogFile
	if err := fn(data, &cat); err != nil {
		return catalogFile{}, fmt.Errorf("decode %s datasets: %w", name, err)
	}
	return cat, nil
}

// sanitizeDataset trims and normalizes the dataset fields.
func sanitizeDataset(ds Dataset) Dataset {
	ds.ID = strings.TrimSpace(ds.ID)
	ds.Name = strings.TrimSpace(ds.Name)
	ds.Path = strings.TrimSpace(ds.Path)
	ds.Sort = strings.TrimSpace(ds.Sort)
	if ds.Limit <= 0 {
		ds.Limit = defaultDatasetLimit
	}
	return ds
}

// validateDataset checks that required fields are present.
func validateDataset(ds Dataset) error {
	if ds.ID == "" {
		return errors.New("id is required")
	}
	if ds.Name == "" {
		return fmt.Errorf("name is required for dataset %q", ds.ID)
	}
	if ds.Path == "" {
		return fmt.Errorf("path is required for dataset %q", ds.ID)
	}
	if !strings.HasPrefix(ds.Path, "/") {
		return fmt.Errorf("path must start with / for dataset %q", ds.ID)
	}
	return nil
}

// ByID returns the dataset entry for the given id, if present.
func (c *Catalog) ByID(id string) (Dataset, bool) {
	if c == nil {
		return Dataset{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Dataset{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.idx[id]
	return ds, ok
}

// All returns a copy of the catalog entries.
func (c *Catalog) All() []Dataset {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Dataset, len(c.datasets))
	copy(out, c.datasets)
	return out
}
