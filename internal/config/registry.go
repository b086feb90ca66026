package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// ErrUnknownBank is returned when no definition exists for a bank id.
var ErrUnknownBank = errors.New("unknown bank")

// Registry holds compiled bank definitions keyed by id.
type Registry struct {
	banks map[models.BankID]*Bank
}

// banksFile is the on-disk YAML layout.
type banksFile struct {
	Banks []Bank `yaml:"banks"`
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{banks: make(map[models.BankID]*Bank)}
}

// Add compiles b and stores it, replacing any definition with the same id.
func (r *Registry) Add(b Bank) error {
	b.ID = models.BankID(strings.ToLower(string(b.ID)))
	if err := b.Compile(); err != nil {
		return err
	}
	r.banks[b.ID] = &b
	return nil
}

// Get returns the definition for id.
func (r *Registry) Get(id models.BankID) (*Bank, error) {
	b, ok := r.banks[models.BankID(strings.ToLower(string(id)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, id)
	}
	return b, nil
}

// Banks returns all definitions sorted by id.
func (r *Registry) Banks() []*Bank {
	out := make([]*Bank, 0, len(r.banks))
	for _, b := range r.banks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultRegistry returns a registry with the built-in bank definitions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range Defaults() {
		if err := r.Add(b); err != nil {
			panic("config: built-in bank " + string(b.ID) + ": " + err.Error())
		}
	}
	return r
}

// LoadBanks reads bank definitions from a YAML file on top of the built-in ones.
// Definitions in the file replace built-ins with the same id.
func LoadBanks(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading banks file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file banksFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing banks file: %w", err)
	}

	r := DefaultRegistry()
	for _, b := range file.Banks {
		if err := r.Add(b); err != nil {
			return nil, fmt.Errorf("banks file %s: %w", path, err)
		}
	}
	return r, nil
}

// SaveBanks writes the registry's definitions as YAML.
func SaveBanks(path string, r *Registry) error {
	var file banksFile
	for _, b := range r.Banks() {
		file.Banks = append(file.Banks, *b)
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling banks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing banks file: %w", err)
	}
	return nil
}
