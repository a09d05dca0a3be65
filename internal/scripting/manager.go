package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// CommanderInfo is a read-only snapshot of the commander passed to Lua
// hooks. Hooks can inspect it but never write back.
type CommanderInfo struct {
	Name         string
	Credits      int
	Reputation   int
	PoliceRecord int
	Kills        int
}

// Manager owns one sandboxed LState holding every loaded hook script and
// dispatches encounter events into it. It satisfies the engine's Hooks
// interface: a hook that returns a string replaces the engine's message
// for that event.
//
// Manager is safe for concurrent CallHook after Load completes; the single
// LState is serialized behind the mutex.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	logger *zap.Logger

	// GetCommander supplies the snapshot behind engine.commander(). nil
	// makes the Lua call return nil. Injected after construction.
	GetCommander func() *CommanderInfo
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Load creates a sandboxed VM, registers the engine.* modules, then
// executes every *.lua file in scriptDir in lexicographic order. A second
// Load replaces the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: On nil error the VM is live and CallHook dispatches into it.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.mu.Unlock()

	m.logger.Info("hook scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM. CallHook after Close is a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// CallHook calls the named Lua global function with the event fields as a
// table argument. Returns the hook's first return value and true when it is
// a string; ("", false) when no VM exists, the hook is undefined, or it
// returned anything else. Lua runtime errors are logged at Warn level and
// never propagated.
//
// Postcondition: Never panics and never mutates game state.
func (m *Manager) CallHook(hook string, fields map[string]string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return "", false
	}
	L := m.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return "", false
	}

	event := L.NewTable()
	for k, v := range fields {
		event.RawSetString(k, lua.LString(v))
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, event); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return "", false
	}

	ret := L.Get(-1)
	L.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}
