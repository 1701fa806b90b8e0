//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	groupEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	groupEngine.Set("loadDocument", js.FuncOf(loadDocument))
	groupEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	groupEngine.Set("movePoint", js.FuncOf(movePoint))
	groupEngine.Set("movePointDirectly", js.FuncOf(movePointDirectly))
	groupEngine.Set("removeElement", js.FuncOf(removeElement))
	groupEngine.Set("apply", js.FuncOf(apply))
	groupEngine.Set("setSnapSize", js.FuncOf(setSnapSize))

	// --- Queries (frontend ← engine) ---
	groupEngine.Set("getState", js.FuncOf(getState))
	groupEngine.Set("getGroups", js.FuncOf(getGroups))
	groupEngine.Set("hitTest", js.FuncOf(hitTest))
	groupEngine.Set("exportDocument", js.FuncOf(exportDocument))

	js.Global().Set("groupEngine", groupEngine)
	js.Global().Set("groupWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errResult(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okResult() js.Value {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

// loadDocument takes the document text and an optional format, "json"
// unless given.
func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document"})
	}
	format := document.FormatJSON
	if len(args) > 1 {
		format = document.Format(args[1].String())
	}
	if err := eng.LoadDocument([]byte(args[0].String()), format); err != nil {
		return errResult(err)
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadSampleDocument(); err != nil {
		return errResult(err)
	}
	return okResult()
}

func movePoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "usage: movePoint(name, x, y)"})
	}
	if err := eng.MovePoint(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func movePointDirectly(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "usage: movePointDirectly(name, x, y)"})
	}
	if err := eng.MovePointDirectly(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func removeElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "usage: removeElement(name)"})
	}
	removed, err := eng.RemoveElement(args[0].String())
	if err != nil {
		return errResult(err)
	}
	out := make([]interface{}, len(removed))
	for i, name := range removed {
		out[i] = name
	}
	return js.ValueOf(map[string]interface{}{"removed": out})
}

// apply runs a JSON command such as {"op":"point.move","target":"A","x":1,"y":2}.
func apply(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing command JSON"})
	}
	cmd, err := engine.ParseCommand([]byte(args[0].String()))
	if err != nil {
		return errResult(err)
	}
	if err := eng.Apply(cmd); err != nil {
		return errResult(err)
	}
	return okResult()
}

func setSnapSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetSnapSize(args[0].Float())
	return nil
}

// --- Query Handlers ---

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.StateJSON())
}

func getGroups(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Groups())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	radius := 0.25
	if len(args) > 2 {
		radius = args[2].Float()
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float(), radius))
}

func exportDocument(this js.Value, args []js.Value) interface{} {
	format := document.FormatJSON
	if len(args) > 0 {
		format = document.Format(args[0].String())
	}
	doc, err := eng.Export()
	if err != nil {
		return errResult(err)
	}
	data, err := doc.Encode(format)
	if err != nil {
		return errResult(err)
	}
	return js.ValueOf(string(data))
}
