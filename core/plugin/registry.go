package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Registry holds registered plugins and classifies each into
// per-capability ordered lists.
//
// A Registry is long-lived and shared across parse/validate/format
// calls; callers wanting per-call isolation construct a fresh one.
// Registration and unregistration must not overlap an in-flight call
// against the same instance.
type Registry struct {
	mu     sync.RWMutex
	logger zerolog.Logger

	// plugins by name
	plugins map[string]*entry

	// per-capability lists, kept sorted by (priority desc, seq asc)
	validators []*entry
	hooks      []*entry

	// tag-keyed categories: last registration for a tag wins
	types   map[string]*entry
	formats map[string]*entry

	seq int
}

type entry struct {
	plugin *Plugin
	seq    int
}

// NewRegistry creates an empty registry. The logger reports destroy
// failures and replacements.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger:  logger,
		plugins: make(map[string]*entry),
		types:   make(map[string]*entry),
		formats: make(map[string]*entry),
	}
}

// Register classifies the plugin by its declared capability slots,
// inserts it into every matching category, and runs its Init hook.
// An Init failure aborts the registration and is returned as an *Error
// with code "init-failed". Registering a name that already exists
// replaces the prior entry's bookkeeping under that name.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return fmt.Errorf("nil plugin")
	}
	if p.Name == "" {
		return fmt.Errorf("plugin has no name")
	}
	roles := p.roles()
	if len(roles) == 0 {
		return fmt.Errorf("plugin %q declares no capability", p.Name)
	}

	if p.Init != nil {
		if err := p.Init(); err != nil {
			return wrapErr(p.Name, CodeInitFailed, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.plugins[p.Name]; exists {
		r.logger.Debug().Str("plugin", p.Name).Msg("replacing registered plugin")
		r.removeLocked(old)
	}

	e := &entry{plugin: p, seq: r.seq}
	r.seq++
	r.plugins[p.Name] = e

	if p.Validator != nil {
		r.validators = append(r.validators, e)
		sortEntries(r.validators)
	}
	if p.Hooks != nil {
		r.hooks = append(r.hooks, e)
		sortEntries(r.hooks)
	}
	if p.Types != nil {
		for _, tag := range p.Types.Tags {
			r.types[tag] = e
		}
	}
	if p.Formatter != nil {
		for _, tag := range p.Formatter.Formats {
			r.formats[tag] = e
		}
	}

	r.logger.Debug().
		Str("plugin", p.Name).
		Strs("roles", roles).
		Int("priority", p.Priority).
		Msg("plugin registered")
	return nil
}

// Unregister removes the named plugin from every category list and
// runs its Destroy hook. Destroy failures are logged and swallowed so
// they cannot block cleanup of other plugins.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	e, exists := r.plugins[name]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("plugin %q not registered", name)
	}
	r.removeLocked(e)
	r.mu.Unlock()

	if e.plugin.Destroy != nil {
		if err := e.plugin.Destroy(); err != nil {
			r.logger.Error().
				Err(err).
				Str("plugin", name).
				Str("code", CodeDestroyFailed).
				Msg("plugin destroy failed")
		}
	}
	return nil
}

// removeLocked drops the entry from the name map, the ordered lists,
// and any tag slots it still owns. Caller holds the write lock.
func (r *Registry) removeLocked(e *entry) {
	delete(r.plugins, e.plugin.Name)
	r.validators = removeEntry(r.validators, e)
	r.hooks = removeEntry(r.hooks, e)
	for tag, owner := range r.types {
		if owner == e {
			delete(r.types, tag)
		}
	}
	for tag, owner := range r.formats {
		if owner == e {
			delete(r.formats, tag)
		}
	}
}

// Get returns a registered plugin by name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.plugins[name]
	if !ok {
		return nil, false
	}
	return e.plugin, true
}

// Validators returns the validator plugins in invocation order.
func (r *Registry) Validators() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pluginsOf(r.validators)
}

// ParseHooks returns the parse-hook plugins in invocation order.
func (r *Registry) ParseHooks() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pluginsOf(r.hooks)
}

// TypeHandler returns the plugin handling the given type tag.
func (r *Registry) TypeHandler(tag string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.types[tag]
	if !ok {
		return nil, false
	}
	return e.plugin, true
}

// FormatterFor returns the plugin whose declared format-tag set
// contains the given tag.
func (r *Registry) FormatterFor(tag string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.formats[tag]
	if !ok {
		return nil, false
	}
	return e.plugin, true
}

// Formats returns all registered format tags.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.formats))
	for tag := range r.formats {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// All returns every registered plugin, sorted by name.
func (r *Registry) All() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.plugins))
	for _, e := range r.plugins {
		result = append(result, e.plugin)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// sortEntries orders a category list by priority descending, ties
// broken by registration order.
func sortEntries(entries []*entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].plugin.Priority != entries[j].plugin.Priority {
			return entries[i].plugin.Priority > entries[j].plugin.Priority
		}
		return entries[i].seq < entries[j].seq
	})
}

func removeEntry(entries []*entry, e *entry) []*entry {
	result := entries[:0]
	for _, item := range entries {
		if item != e {
			result = append(result, item)
		}
	}
	return result
}

func pluginsOf(entries []*entry) []*Plugin {
	result := make([]*Plugin, len(entries))
	for i, e := range entries {
		result[i] = e.plugin
	}
	return result
}
