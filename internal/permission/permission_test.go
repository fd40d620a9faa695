package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMissingModule(t *testing.T) {
	m := Map{ModuleCrops: {View: true}}

	assert.Equal(t, Set{}, Evaluate(m, ModuleSales))
	assert.Equal(t, Set{}, Evaluate(nil, ModuleCrops))
	assert.Equal(t, Set{}, Evaluate(m, "nonsense"))
}

func TestEvaluateGrantedModule(t *testing.T) {
	m := Map{ModuleGap: {View: true, Create: true}}

	s := Evaluate(m, ModuleGap)
	assert.True(t, s.View)
	assert.True(t, s.Create)
	assert.False(t, s.Edit)
	assert.False(t, s.Delete)
}

func TestAllows(t *testing.T) {
	s := Set{View: true, Edit: true}

	assert.True(t, s.Allows(ActionView))
	assert.True(t, s.Allows(ActionEdit))
	assert.False(t, s.Allows(ActionCreate))
	assert.False(t, s.Allows(ActionDelete))
	assert.False(t, s.Allows("unknown"))
}

func TestNormalizeActionImpliesView(t *testing.T) {
	in := Map{
		ModuleCrops:  {Create: true},
		ModuleLedger: {Delete: true},
		ModuleSales:  {Edit: true},
	}

	out := Normalize(in)
	for _, module := range []string{ModuleCrops, ModuleLedger, ModuleSales} {
		assert.True(t, out[module].View, "action grant on %s must imply view", module)
	}
}

func TestNormalizeDropsUnknownModules(t *testing.T) {
	in := Map{
		ModuleCrops: {View: true},
		"warehouse": {View: true, Create: true},
	}

	out := Normalize(in)
	require.Contains(t, out, ModuleCrops)
	assert.NotContains(t, out, "warehouse")
}

func TestNormalizeKeepsViewOnlySet(t *testing.T) {
	out := Normalize(Map{ModuleReports: {View: true}})
	assert.Equal(t, Set{View: true}, out[ModuleReports])
}

func TestViewableModulesOrder(t *testing.T) {
	m := Map{
		ModuleSettings:  {View: true},
		ModuleDashboard: {View: true},
		ModuleInventory: {Create: true, View: true},
		ModuleSales:     {Create: true}, // no view, not listed
	}

	viewable := ViewableModules(m)
	assert.Equal(t, []string{ModuleDashboard, ModuleInventory, ModuleSettings}, viewable)
}

func TestViewableModulesEmpty(t *testing.T) {
	assert.Empty(t, ViewableModules(nil))
	assert.Empty(t, ViewableModules(Map{ModuleCrops: {Create: true}}))
}
