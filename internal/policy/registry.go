package policy

import (
	"embed"
	"fmt"
	"sync"

	"bazaar/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// CapabilityRule declares the account types and subscription statuses required
// to hold a capability. Empty lists mean the predicate is not checked.
type CapabilityRule struct {
	ID                   Capability                  `yaml:"id"`
	AccountTypes         []models.AccountType        `yaml:"account_types"`
	SubscriptionStatuses []models.SubscriptionStatus `yaml:"subscription_statuses"`
}

type capabilityFile struct {
	Capabilities []CapabilityRule `yaml:"capabilities"`
}

// Registry holds the capability requirement table loaded from embedded YAML.
type Registry struct {
	rules map[Capability]CapabilityRule
	mu    sync.RWMutex
}

// NewRegistry creates a new capability registry and loads the embedded table
func NewRegistry() (*Registry, error) {
	r := &Registry{
		rules: make(map[Capability]CapabilityRule),
	}

	if err := r.loadFile("capabilities"); err != nil {
		return nil, fmt.Errorf("failed to load capability table: %w", err)
	}

	return r, nil
}

// loadFile loads one embedded capability YAML file into the rule map
func (r *Registry) loadFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var file capabilityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range file.Capabilities {
		if rule.ID == "" {
			return fmt.Errorf("%s: capability rule missing id", filename)
		}
		if _, exists := r.rules[rule.ID]; exists {
			return fmt.Errorf("%s: duplicate capability %q", filename, rule.ID)
		}
		r.rules[rule.ID] = rule
	}

	return nil
}

// Lookup returns the rule for a capability, or false for unknown capabilities
func (r *Registry) Lookup(capability Capability) (CapabilityRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[capability]
	return rule, ok
}

// Capabilities returns all known capability ids
func (r *Registry) Capabilities() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]Capability, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	return ids
}
