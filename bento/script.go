package bento

import (
	"context"
	"log"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// ScriptState tracks one running pack script. Relative paths inside the
// script resolve against Dir (normally the script's directory).
type ScriptState struct {
	Dir     string
	Context context.Context
	Results []*JobResult
}

func (state *ScriptState) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || state.Dir == "" {
		return p
	}
	return filepath.Join(state.Dir, p)
}

// Read one pack() argument table into a config. Unknown keys raise a lua
// error rather than being silently dropped.
func (state *ScriptState) configFromTable(L *lua.LState, t *lua.LTable) *Config {
	cfg := DefaultConfig()
	setters := map[string]func(lua.LValue){
		"name":         func(v lua.LValue) { cfg.Name = lua.LVAsString(v) },
		"output_dir":   func(v lua.LValue) { cfg.OutputDir = state.resolve(lua.LVAsString(v)) },
		"format":       func(v lua.LValue) { cfg.Format = lua.LVAsString(v) },
		"image_format": func(v lua.LValue) { cfg.ImageFormat = lua.LVAsString(v) },
		"compress":     func(v lua.LValue) { cfg.Compress = lua.LVAsString(v) },
		"max_width":    func(v lua.LValue) { cfg.MaxWidth = int(lua.LVAsNumber(v)) },
		"max_height":   func(v lua.LValue) { cfg.MaxHeight = int(lua.LVAsNumber(v)) },
		"padding":      func(v lua.LValue) { cfg.Padding = int(lua.LVAsNumber(v)) },
		"trim":         func(v lua.LValue) { cfg.Trim = lua.LVAsBool(v) },
		"trim_margin":  func(v lua.LValue) { cfg.TrimMargin = int(lua.LVAsNumber(v)) },
		"resize_width": func(v lua.LValue) { cfg.ResizeWidth = int(lua.LVAsNumber(v)) },
		"resize_scale": func(v lua.LValue) { cfg.ResizeScale = float64(lua.LVAsNumber(v)) },
		"heuristic":    func(v lua.LValue) { cfg.Heuristic = lua.LVAsString(v) },
		"pack_mode":    func(v lua.LValue) { cfg.PackMode = lua.LVAsString(v) },
		"pot":          func(v lua.LValue) { cfg.Pot = lua.LVAsBool(v) },
		"extrude":      func(v lua.LValue) { cfg.Extrude = int(lua.LVAsNumber(v)) },
		"opaque":       func(v lua.LValue) { cfg.Opaque = lua.LVAsBool(v) },
		"background":   func(v lua.LValue) { cfg.Background = lua.LVAsString(v) },
		"input": func(v lua.LValue) {
			inputs, ok := v.(*lua.LTable)
			if !ok {
				L.RaiseError("input must be a table of globs")
				return
			}
			inputs.ForEach(func(_, item lua.LValue) {
				cfg.Input = append(cfg.Input, state.resolve(lua.LVAsString(item)))
			})
		},
	}
	t.ForEach(func(key, value lua.LValue) {
		name := lua.LVAsString(key)
		setter, ok := setters[name]
		if !ok {
			L.RaiseError("unknown pack option %q", name)
			return
		}
		setter(value)
	})
	return &cfg
}

// The pack(table) lua function: runs a full job and returns a result table
// with the atlas list and the files written.
func (state *ScriptState) luaPack(L *lua.LState) int {
	cfg := state.configFromTable(L, L.CheckTable(1))
	result, err := RunJob(state.Context, cfg, nil)
	if err != nil {
		L.RaiseError("pack failed: %s", err)
		return 0
	}
	state.Results = append(state.Results, result)

	out := L.NewTable()
	atlases := L.NewTable()
	for i, a := range result.Atlases {
		at := L.NewTable()
		at.RawSetString("image", lua.LString(result.Manifest.Atlases[i].Image))
		at.RawSetString("width", lua.LNumber(a.Width))
		at.RawSetString("height", lua.LNumber(a.Height))
		at.RawSetString("sprites", lua.LNumber(len(a.Placements)))
		at.RawSetString("occupancy", lua.LNumber(a.Occupancy()))
		atlases.Append(at)
	}
	out.RawSetString("atlases", atlases)
	out.RawSetString("manifest", lua.LString(result.ManifestFile))
	L.Push(out)
	return 1
}

func luaLog(L *lua.LState) int {
	log.Printf("Script: %s\n", L.ToString(1))
	return 0
}

// RunPackScript executes a lua pack script. The script sees two globals:
// pack(options) and log(message).
func RunPackScript(ctx context.Context, script string, dir string) (*ScriptState, error) {
	state := &ScriptState{Dir: dir, Context: ctx}
	L := lua.NewState()
	defer L.Close()
	L.SetGlobal("pack", L.NewFunction(state.luaPack))
	L.SetGlobal("log", L.NewFunction(luaLog))
	if err := L.DoString(script); err != nil {
		return nil, err
	}
	return state, nil
}
