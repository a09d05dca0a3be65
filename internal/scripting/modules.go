package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua table into L:
//
//	engine.log(msg)     -- write msg to the structured log at Info
//	engine.commander()  -- snapshot table of the commander, or nil
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: The engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		m.logger.Info("script", zap.String("msg", msg))
		return 0
	}))

	L.SetField(engine, "commander", L.NewFunction(func(L *lua.LState) int {
		if m.GetCommander == nil {
			L.Push(lua.LNil)
			return 1
		}
		info := m.GetCommander()
		if info == nil {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		t.RawSetString("name", lua.LString(info.Name))
		t.RawSetString("credits", lua.LNumber(info.Credits))
		t.RawSetString("reputation", lua.LNumber(info.Reputation))
		t.RawSetString("police_record", lua.LNumber(info.PoliceRecord))
		t.RawSetString("kills", lua.LNumber(info.Kills))
		L.Push(t)
		return 1
	}))

	L.SetGlobal("engine", engine)
}
