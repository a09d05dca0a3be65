package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/startrader/startrader/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return scripting.NewManager(zap.New(core)), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func TestManager_Load_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function on_victory(event)
			return "a " .. event.category .. " falls"
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	defer mgr.Close()

	msg, ok := mgr.CallHook("on_victory", map[string]string{"category": "pirate"})
	require.True(t, ok)
	assert.Equal(t, "a pirate falls", msg)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.Load(dir, 0))
	defer mgr.Close()

	_, ok := mgr.CallHook("nonexistent_hook", nil)
	assert.False(t, ok)
}

func TestManager_CallHook_NoScriptsLoaded(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, ok := mgr.CallHook("on_victory", nil)
	assert.False(t, ok)
}

func TestManager_CallHook_NonStringReturnIgnored(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function on_board(event)
			return 42
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	defer mgr.Close()

	_, ok := mgr.CallHook("on_board", nil)
	assert.False(t, ok, "only string returns replace the message")
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	defer mgr.Close()

	_, ok := mgr.CallHook("bad_hook", nil)
	assert.False(t, ok)

	found := false
	for _, e := range logs.All() {
		if e.Level == zap.WarnLevel {
			found = true
		}
	}
	assert.True(t, found, "expected a Warn log for the Lua error")
}

func TestManager_Load_BadScriptFails(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "broken.lua", `function oops(`)
	assert.Error(t, mgr.Load(dir, 0))
}

func TestManager_Load_MissingDirFails(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load(filepath.Join(t.TempDir(), "nope"), 0))
}

func TestManager_Load_ReplacesPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	first := writeTempLua(t, "a.lua", `function greet() return "old" end`)
	require.NoError(t, mgr.Load(first, 0))
	second := writeTempLua(t, "b.lua", `function hello() return "new" end`)
	require.NoError(t, mgr.Load(second, 0))
	defer mgr.Close()

	_, ok := mgr.CallHook("greet", nil)
	assert.False(t, ok, "old VM must be gone")
	msg, ok := mgr.CallHook("hello", nil)
	require.True(t, ok)
	assert.Equal(t, "new", msg)
}
