package game

import "sort"

// TaskTemplate is the blueprint a concrete task is stamped from.
type TaskTemplate struct {
	Description string
	Points      int
	Hint        string
}

// Module is a named bundle of related task templates with its own point
// pool. A user masters a module by accumulating MasteryThreshold points in
// it; mastering prerequisites unlocks dependent modules.
type Module struct {
	Name             string
	Description      string
	TaskTemplates    []TaskTemplate
	MasteryThreshold int
	Prerequisites    []string
}

// ModuleCatalog is the read-only registry of learning modules. The
// prerequisite relation must be acyclic and thresholds positive; both are
// assembly-time preconditions.
type ModuleCatalog struct {
	modules map[string]Module
	names   []string // registration order
}

func NewModuleCatalog(modules []Module) *ModuleCatalog {
	catalog := &ModuleCatalog{modules: make(map[string]Module, len(modules))}
	for _, m := range modules {
		catalog.modules[m.Name] = m
		catalog.names = append(catalog.names, m.Name)
	}
	return catalog
}

// Get looks a module up by name.
func (mc *ModuleCatalog) Get(name string) (Module, bool) {
	m, ok := mc.modules[name]
	return m, ok
}

// Names returns module names in registration order.
func (mc *ModuleCatalog) Names() []string {
	out := make([]string, len(mc.names))
	copy(out, mc.names)
	return out
}

// IsMastered reports whether the user's accumulated points in the module
// reach its mastery threshold.
func (mc *ModuleCatalog) IsMastered(u *User, name string) bool {
	m, ok := mc.modules[name]
	if !ok {
		return false
	}
	return u.ModulePoints[name] >= m.MasteryThreshold
}

// AvailableFor returns the names of every module whose prerequisites are all
// registered and mastered by the user. Modules with no prerequisites are
// always available, and already-mastered modules stay available so the user
// can revisit them. The result is sorted for deterministic output.
func (mc *ModuleCatalog) AvailableFor(u *User) []string {
	var available []string
	for _, name := range mc.names {
		m := mc.modules[name]
		met := true
		for _, prereq := range m.Prerequisites {
			if !mc.IsMastered(u, prereq) {
				met = false
				break
			}
		}
		if met {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}

// ProgressFor returns each module's mastery fraction in [0,1]: accumulated
// points over the threshold, clamped at 1. A zero threshold yields 0.
func (mc *ModuleCatalog) ProgressFor(u *User) map[string]float64 {
	progress := make(map[string]float64, len(mc.modules))
	for name, m := range mc.modules {
		if m.MasteryThreshold <= 0 {
			progress[name] = 0.0
			continue
		}
		fraction := float64(u.ModulePoints[name]) / float64(m.MasteryThreshold)
		if fraction > 1.0 {
			fraction = 1.0
		}
		progress[name] = fraction
	}
	return progress
}
