// Package scraper compiles and fetches the Lua scripts behind scripted city providers.
package scraper

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/tonneli-cli/tonneli/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// bytecodeCache maps a script content hash to its compiled prototype.
var bytecodeCache sync.Map

// PreCompileAndLoad runs the script at scriptPath inside L.
// Compiled prototypes are cached by content, so an edited script is always recompiled.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	source, err := filesystem.API().ReadFile(scriptPath)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(source)
	hash := hex.EncodeToString(sum[:])

	proto, err := compile(hash, scriptPath, source)
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(hash, name string, source []byte) (*lua.FunctionProto, error) {
	if cached, ok := bytecodeCache.Load(hash); ok {
		return cached.(*lua.FunctionProto), nil
	}

	chunk, err := parse.Parse(bytes.NewReader(source), name)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}

	bytecodeCache.Store(hash, proto)
	return proto, nil
}
