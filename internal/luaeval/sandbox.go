// Package luaeval evaluates expressions typed after %lua in a sandboxed Lua
// state. It is the shell's escape hatch for inspecting its own state.
package luaeval

import (
	"context"
	"errors"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is returned when an evaluation exceeds its timeout.
var ErrTimeout = errors.New("lua: evaluation timed out")

// Options controls the sandbox.
type Options struct {
	// Timeout bounds the evaluation; zero means DefaultTimeout.
	Timeout time.Duration
}

// Eval runs expr with globals installed and returns its first result as a Go
// value. expr is tried as an expression first and as a statement chunk when
// that does not compile.
func Eval(ctx context.Context, expr string, globals map[string]any, opts Options) (any, error) {
	L := newSandboxState()
	defer L.Close()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	L.SetContext(ctx)

	for k, v := range globals {
		L.SetGlobal(k, toLValue(L, v))
	}

	fn, err := L.LoadString("return " + expr)
	if err != nil {
		fn, err = L.LoadString(expr)
		if err != nil {
			return nil, err
		}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return fromLValue(ret), nil
}

// newSandboxState opens only the pure libraries and removes the file loaders
// from base.
func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib(lua.BaseLibName, lua.OpenBase)
	openLib(lua.StringLibName, lua.OpenString)
	openLib(lua.TabLibName, lua.OpenTable)
	openLib(lua.MathLibName, lua.OpenMath)
	for _, name := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}
