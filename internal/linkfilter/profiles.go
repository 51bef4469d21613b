package linkfilter

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// ProfileStore persists FilterProfiles per host so a generic site only
// pays the inference cost on its first run. The store only grows or
// updates; nothing expires automatically.
type ProfileStore struct {
	mu       sync.Mutex
	filePath string
	profiles map[string]FilterProfile
	dirty    bool
}

// NewProfileStore creates or loads the profile cache at filePath.
func NewProfileStore(filePath string) *ProfileStore {
	store := &ProfileStore{
		filePath: filePath,
		profiles: make(map[string]FilterProfile),
	}
	store.load()
	return store
}

// Get returns the cached profile for a host key if present.
func (ps *ProfileStore) Get(hostKey string) (FilterProfile, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	profile, ok := ps.profiles[hostKey]
	return profile, ok
}

// Put records a freshly inferred profile for a host. The file is only
// rewritten once Save runs, at the end of the site's scrape.
func (ps *ProfileStore) Put(hostKey string, profile FilterProfile) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.profiles[hostKey] = profile
	ps.dirty = true
}

// Save flushes newly inferred profiles to disk. No-op when nothing
// changed since load.
func (ps *ProfileStore) Save() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if !ps.dirty {
		return nil
	}
	data, err := json.MarshalIndent(ps.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal site profiles: %w", err)
	}
	if err := os.WriteFile(ps.filePath, data, 0644); err != nil {
		return fmt.Errorf("write site profiles: %w", err)
	}
	ps.dirty = false
	return nil
}

func (ps *ProfileStore) load() {
	data, err := os.ReadFile(ps.filePath)
	if err != nil {
		//first run: nothing cached yet
		return
	}
	var profiles map[string]FilterProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		//a corrupt cache falls back to fresh inference
		return
	}
	ps.profiles = profiles
}
