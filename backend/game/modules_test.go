package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableFor_TwoModuleChain(t *testing.T) {
	catalog := NewModuleCatalog([]Module{
		{Name: "A", MasteryThreshold: 10, TaskTemplates: []TaskTemplate{{Description: "a", Points: 5}}},
		{Name: "B", MasteryThreshold: 10, Prerequisites: []string{"A"}, TaskTemplates: []TaskTemplate{{Description: "b", Points: 5}}},
	})
	u := newUser("alice", DefaultLevels())

	assert.Equal(t, []string{"A"}, catalog.AvailableFor(u))

	u.ModulePoints["A"] = 10
	assert.Equal(t, []string{"A", "B"}, catalog.AvailableFor(u))
}

func TestAvailableFor_DefaultCatalogUnlocks(t *testing.T) {
	catalog := DefaultModules()
	u := newUser("alice", DefaultLevels())

	// Only the root module has no prerequisites.
	assert.Equal(t, []string{"Profile Optimization"}, catalog.AvailableFor(u))

	u.ModulePoints["Profile Optimization"] = 12
	assert.Equal(t,
		[]string{"Pitch Mastery", "Profile Optimization", "Resource Integration"},
		catalog.AvailableFor(u))

	u.ModulePoints["Pitch Mastery"] = 14
	assert.Equal(t,
		[]string{"Event Participation", "Mentor Outreach", "Pitch Mastery", "Profile Optimization", "Resource Integration"},
		catalog.AvailableFor(u))
}

func TestAvailableFor_MasteredModulesStayAvailable(t *testing.T) {
	catalog := DefaultModules()
	u := newUser("alice", DefaultLevels())

	u.ModulePoints["Profile Optimization"] = 99
	assert.Contains(t, catalog.AvailableFor(u), "Profile Optimization")
}

func TestAvailableFor_UnregisteredPrerequisiteBlocks(t *testing.T) {
	catalog := NewModuleCatalog([]Module{
		{Name: "Orphan", MasteryThreshold: 10, Prerequisites: []string{"Ghost"}},
	})
	u := newUser("alice", DefaultLevels())

	// Ghost is not registered, so Orphan can never unlock even with points.
	u.ModulePoints["Ghost"] = 1000
	assert.Empty(t, catalog.AvailableFor(u))
}

func TestProgressFor_ClampsAtOne(t *testing.T) {
	catalog := DefaultModules()
	u := newUser("alice", DefaultLevels())
	u.ModulePoints["Profile Optimization"] = 6
	u.ModulePoints["Pitch Mastery"] = 100

	progress := catalog.ProgressFor(u)
	assert.InDelta(t, 0.5, progress["Profile Optimization"], 1e-9)
	assert.InDelta(t, 1.0, progress["Pitch Mastery"], 1e-9)
	assert.InDelta(t, 0.0, progress["Mentor Outreach"], 1e-9)
}

func TestProgressFor_ZeroThresholdYieldsZero(t *testing.T) {
	catalog := NewModuleCatalog([]Module{{Name: "Broken", MasteryThreshold: 0}})
	u := newUser("alice", DefaultLevels())
	u.ModulePoints["Broken"] = 50

	assert.InDelta(t, 0.0, catalog.ProgressFor(u)["Broken"], 1e-9)
}

func TestDefaultModules_PrerequisitesRegistered(t *testing.T) {
	catalog := DefaultModules()
	for _, name := range catalog.Names() {
		m, ok := catalog.Get(name)
		require.True(t, ok)
		assert.Positive(t, m.MasteryThreshold, "module %s", name)
		for _, prereq := range m.Prerequisites {
			_, ok := catalog.Get(prereq)
			assert.True(t, ok, "module %s has unregistered prerequisite %s", name, prereq)
		}
	}
}
