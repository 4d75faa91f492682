package salary

import (
	"context"
	"fmt"
	"strings"

	apperr "github.com/rusoc/rusoc-go/internal/errors"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/namekit"
	"github.com/rusoc/rusoc-go/internal/storage"
	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// minComponentLen is the shortest name fragment worth matching on;
// shorter tokens ("J.", "de") hit far too many unrelated names.
const minComponentLen = 3

// Service answers instructor salary lookups against the stored records.
type Service struct {
	db      *storage.DB
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewService creates a salary service. metrics may be nil (tests).
func NewService(db *storage.DB, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		db:      db,
		log:     log.WithModule("salary"),
		metrics: m,
	}
}

// LoadFromFiles loads salary records from the CSV or JSON path and
// replaces the stored table. Returns the number of records loaded.
func (s *Service) LoadFromFiles(ctx context.Context, csvPath, jsonPath string) (int, error) {
	records, err := Load(csvPath, jsonPath)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		s.log.Warn("no salary data files found", "csv", csvPath, "json", jsonPath)
		return 0, nil
	}

	if err := s.db.ReplaceSalaries(ctx, records); err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.SalaryRecords.Set(float64(len(records)))
	}
	s.log.Info("salary records loaded", "count", len(records))
	return len(records), nil
}

// GetByInstructor finds one salary record for a name in any common
// format. The cascade runs exact normalized lookup, then name-component
// matching, then a single-token fallback, and stops at the first tier
// that produces anything. Ambiguous component matches return the first
// record rather than failing; returning the whole candidate set would
// be more honest but would break the at-most-one contract clients rely
// on. Misses return ErrNotFound.
func (s *Service) GetByInstructor(ctx context.Context, name string) (storage.SalaryRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.SalaryRecord{}, fmt.Errorf("%w: empty name", apperr.ErrInvalidInput)
	}

	normalized := stringutil.NormalizeLower(name)
	converted := stringutil.NormalizeLower(namekit.ConvertLastFirst(name))

	exact, err := s.db.SalariesByExactName(ctx, normalized, converted)
	if err != nil {
		return storage.SalaryRecord{}, err
	}
	if len(exact) > 0 {
		return exact[0], nil
	}

	all, err := s.db.AllSalaries(ctx)
	if err != nil {
		return storage.SalaryRecord{}, err
	}

	if match, ok := s.matchByComponents(name, all); ok {
		return match, nil
	}

	if !strings.Contains(normalized, " ") {
		for _, r := range all {
			if nameHasWord(r.Name, normalized) {
				return r, nil
			}
		}
	}

	return storage.SalaryRecord{}, fmt.Errorf("%w: no salary record for %q", apperr.ErrNotFound, name)
}

// matchByComponents matches each sufficiently long name component
// against whole words of stored names, deduplicates by stored name, and
// takes the first hit.
func (s *Service) matchByComponents(name string, all []storage.SalaryRecord) (storage.SalaryRecord, bool) {
	components := namekit.Components(name)
	if len(components) == 0 {
		return storage.SalaryRecord{}, false
	}

	seen := make(map[string]bool)
	var matches []storage.SalaryRecord
	for _, component := range components {
		if len(component) < minComponentLen {
			continue
		}
		component = stringutil.NormalizeLower(component)
		for _, r := range all {
			if nameHasWord(r.Name, component) && !seen[r.Name] {
				seen[r.Name] = true
				matches = append(matches, r)
			}
		}
	}

	if len(matches) == 0 {
		return storage.SalaryRecord{}, false
	}
	if len(matches) > 1 {
		s.log.Warn("ambiguous salary match, using first",
			"query", name, "candidates", len(matches))
	}
	return matches[0], true
}

func nameHasWord(name, word string) bool {
	for _, w := range strings.Fields(stringutil.NormalizeLower(name)) {
		if w == word {
			return true
		}
	}
	return false
}
