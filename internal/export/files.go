package export

import (
	"fmt"
	"os"
	"path/filepath"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
)

// File names match the warehouse ingestion jobs downstream.
const (
	UsageFile      = "phone_usage_data.csv"
	ChurnFile      = "churn_records.csv"
	AttributesFile = "account_attributes_monthly.csv"
	InsertsFile    = "insert_statements.sql"
)

// Bundle is one complete generated dataset ready for serialization.
type Bundle struct {
	Usage      []generatordomain.UsageRecord
	Churn      []generatordomain.ChurnRecord
	Attributes []accountdomain.AttributeRow
}

// WriteDir writes the full bundle into dir, creating it if needed.
func WriteDir(dir string, b Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(f *os.File) error
	}{
		{UsageFile, func(f *os.File) error { return WriteUsageCSV(f, b.Usage) }},
		{ChurnFile, func(f *os.File) error { return WriteChurnCSV(f, b.Churn) }},
		{AttributesFile, func(f *os.File) error { return WriteAttributesCSV(f, b.Attributes) }},
		{InsertsFile, func(f *os.File) error { return WriteAttributeInserts(f, b.Attributes, SQLOptions{}) }},
	}

	for _, w := range writers {
		f, err := os.Create(filepath.Join(dir, w.name))
		if err != nil {
			return fmt.Errorf("create %s: %w", w.name, err)
		}
		if err := w.write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", w.name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", w.name, err)
		}
	}
	return nil
}
