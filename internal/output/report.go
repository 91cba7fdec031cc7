package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/itrgo/tax-estimator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport writes the result in the named format to a timestamped file
// in dir and returns its path. "all" writes the console, slab CSV and JSON
// reports.
func GenerateReport(result *domain.ComputationResult, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, name := range []string{"console", "detailed-csv", "json"} {
			path, err := WriteFormatted(GetFormatterByName(name), result, dir, ExtensionFor(name))
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
		return written, nil
	}
	f, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, result, dir, ExtensionFor(format))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Lookup resolves a format name, listing the choices when it is unknown.
func Lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveRequest writes a computation request as YAML so it can be fed back to
// the calculate command.
func SaveRequest(request *domain.ComputationRequest, filename string) error {
	b, err := yaml.Marshal(request)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
