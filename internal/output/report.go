package output

import (
	"os"

	"github.com/rentvest/property-vs-fund/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes results in the named format to a timestamped file.
// "all" writes the verbose console report and the yearly CSV.
func GenerateReport(results *domain.ScenarioComparison, format string) error {
	_, err := WriteReport(results, format, "")
	return err
}

// WriteReport writes results in the named format to filename, or to a
// timestamped file when filename is empty. Returns the file written.
func WriteReport(results *domain.ScenarioComparison, format, filename string) (string, error) {
	if NormalizeFormatName(format) == "all" {
		if _, err := WriteFormatted(ConsoleVerboseFormatter{}, results, "txt"); err != nil {
			return "", err
		}
		return WriteFormatted(CSVDetailedExporter{}, results, "csv")
	}

	f, err := LookupFormatter(format)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return WriteFormatted(f, results, FileExtension(format))
	}
	return filename, WriteFormattedTo(f, results, filename)
}

// SaveConfiguration writes a scenario configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
