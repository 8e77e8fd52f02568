// Package store provides functionality for storing and retrieving ledger data.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-manager/internal/fileutils"
	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultSeedFile is looked up when no seed file is configured.
const DefaultSeedFile = "seed.yaml"

// SeedStore loads and saves the categories, investments and savings goal a
// session starts from.
type SeedStore struct {
	SeedFile string
	logger   logging.Logger
}

// NewSeedStore creates a store reading seedFile, or DefaultSeedFile when empty.
func NewSeedStore(seedFile string, logger logging.Logger) *SeedStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &SeedStore{SeedFile: seedFile, logger: logger}
}

// seedDocument is the on-disk layout. Amounts are strings so that YAML
// floats never round them.
type seedDocument struct {
	SavingsGoal string             `yaml:"savings_goal,omitempty"`
	Categories  []categoryRecord   `yaml:"categories"`
	Investments []investmentRecord `yaml:"investments"`
}

type categoryRecord struct {
	ID     int    `yaml:"id,omitempty"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Budget string `yaml:"budget,omitempty"`
}

type investmentRecord struct {
	ID          int    `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Value       string `yaml:"value"`
	Type        string `yaml:"type"`
	Performance string `yaml:"performance,omitempty"`
}

// FindConfigFile looks for a file in the standard locations: the path as
// given, ./config, ./.finance-manager and $HOME/.finance-manager.
func (s *SeedStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".finance-manager", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".finance-manager", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *SeedStore) fileName() string {
	if s.SeedFile == "" {
		return DefaultSeedFile
	}
	return s.SeedFile
}

// LoadSeed reads the seed file. A missing file yields the built-in seed.
// Sections left out of the file fall back to the built-in ones, while an
// explicitly empty list stays empty. SavingsGoal is zero unless the file
// sets it, so callers can apply their own default.
func (s *SeedStore) LoadSeed() (models.Seed, error) {
	filename := s.fileName()
	defaults := models.DefaultSeed()
	defaults.SavingsGoal = decimal.Zero

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if s.SeedFile != "" {
			s.logger.Warn("Seed file not found, using built-in categories and investments",
				logging.Field{Key: logging.FieldFile, Value: filename})
		} else {
			s.logger.Debug("No seed file, using built-in categories and investments")
		}
		return defaults, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Seed{}, &ledgererror.SeedError{FilePath: filePath, Err: err}
	}

	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return models.Seed{}, &ledgererror.SeedError{FilePath: filePath, Err: err}
	}

	seed, err := doc.toSeed(filePath, defaults)
	if err != nil {
		return models.Seed{}, err
	}

	s.logger.Debug("Loaded seed file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "categories", Value: len(seed.Categories)},
		logging.Field{Key: "investments", Value: len(seed.Investments)})
	return seed, nil
}

func (d seedDocument) toSeed(filePath string, defaults models.Seed) (models.Seed, error) {
	seed := defaults

	if strings.TrimSpace(d.SavingsGoal) != "" {
		goal, err := decimal.NewFromString(strings.TrimSpace(d.SavingsGoal))
		if err != nil || !goal.IsPositive() {
			return models.Seed{}, &ledgererror.SeedError{
				FilePath: filePath,
				Err:      ledgererror.NewValidationError("savings_goal", d.SavingsGoal, ledgererror.ErrInvalidAmount),
			}
		}
		seed.SavingsGoal = goal
	}

	if d.Categories != nil {
		categories := make([]models.Category, 0, len(d.Categories))
		for i, rec := range d.Categories {
			cat, err := rec.toCategory()
			if err != nil {
				return models.Seed{}, &ledgererror.SeedError{FilePath: filePath, Section: "categories", Index: i, Err: err}
			}
			categories = append(categories, cat)
		}
		assignCategoryIDs(categories)
		seed.Categories = categories
	}

	if d.Investments != nil {
		investments := make([]models.Investment, 0, len(d.Investments))
		for i, rec := range d.Investments {
			inv, err := rec.toInvestment()
			if err != nil {
				return models.Seed{}, &ledgererror.SeedError{FilePath: filePath, Section: "investments", Index: i, Err: err}
			}
			investments = append(investments, inv)
		}
		assignInvestmentIDs(investments)
		seed.Investments = investments
	}

	return seed, nil
}

func (r categoryRecord) toCategory() (models.Category, error) {
	kind, ok := models.ParseKind(r.Kind)
	if !ok {
		return models.Category{}, ledgererror.NewValidationError("kind", r.Kind, ledgererror.ErrInvalidKind)
	}
	budget, err := parseOptionalAmount("budget", r.Budget)
	if err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: r.ID, Name: strings.TrimSpace(r.Name), Kind: kind, Budget: budget}, nil
}

func (r investmentRecord) toInvestment() (models.Investment, error) {
	value, err := parseOptionalAmount("value", r.Value)
	if err != nil {
		return models.Investment{}, err
	}
	performance, err := parseOptionalAmount("performance", r.Performance)
	if err != nil {
		return models.Investment{}, err
	}
	return models.Investment{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name),
		Value:       value,
		Type:        strings.TrimSpace(r.Type),
		Performance: performance,
	}, nil
}

func parseOptionalAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ledgererror.NewValidationError(field, raw, ledgererror.ErrInvalidAmount)
	}
	return d, nil
}

// assignCategoryIDs numbers records that were written without an id,
// continuing after the highest explicit one.
func assignCategoryIDs(categories []models.Category) {
	next := 1
	for _, c := range categories {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	for i := range categories {
		if categories[i].ID == 0 {
			categories[i].ID = next
			next++
		}
	}
}

func assignInvestmentIDs(investments []models.Investment) {
	next := 1
	for _, inv := range investments {
		if inv.ID >= next {
			next = inv.ID + 1
		}
	}
	for i := range investments {
		if investments[i].ID == 0 {
			investments[i].ID = next
			next++
		}
	}
}

// SaveSeed writes seed to path, or to the configured seed file when path is
// empty. Parent directories are created as needed.
func (s *SeedStore) SaveSeed(seed models.Seed, path string) error {
	if path == "" {
		path = s.fileName()
	}

	data, err := yaml.Marshal(fromSeed(seed))
	if err != nil {
		return fmt.Errorf("error marshaling seed: %w", err)
	}

	if err := fileutils.WriteFile(path, data); err != nil {
		return fmt.Errorf("error writing seed file: %w", err)
	}

	s.logger.Info("Saved seed file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "categories", Value: len(seed.Categories)},
		logging.Field{Key: "investments", Value: len(seed.Investments)})
	return nil
}

// MarshalSeed renders seed in the seed file layout.
func MarshalSeed(seed models.Seed) ([]byte, error) {
	return yaml.Marshal(fromSeed(seed))
}

func fromSeed(seed models.Seed) seedDocument {
	doc := seedDocument{
		Categories:  make([]categoryRecord, 0, len(seed.Categories)),
		Investments: make([]investmentRecord, 0, len(seed.Investments)),
	}
	if seed.SavingsGoal.IsPositive() {
		doc.SavingsGoal = seed.SavingsGoal.String()
	}
	for _, c := range seed.Categories {
		rec := categoryRecord{ID: c.ID, Name: c.Name, Kind: c.Kind.String()}
		if c.HasBudget() {
			rec.Budget = c.Budget.String()
		}
		doc.Categories = append(doc.Categories, rec)
	}
	for _, inv := range seed.Investments {
		rec := investmentRecord{ID: inv.ID, Name: inv.Name, Value: inv.Value.String(), Type: inv.Type}
		if !inv.Performance.IsZero() {
			rec.Performance = inv.Performance.String()
		}
		doc.Investments = append(doc.Investments, rec)
	}
	return doc
}

