package custom

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
	lua "github.com/yuin/gopher-lua"
)

// Provider is a city provider backed by a Lua state.
// A state is not safe for concurrent use, so calls are serialized.
type Provider struct {
	city   schedule.City
	client *http.Client

	mu      sync.Mutex
	state   *lua.LState
	httpErr error
}

func (p *Provider) City() schedule.City {
	return p.city
}

// Close releases the Lua state.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Close()
}

// call runs a global function and returns its table result.
// A nil result is treated as an empty table.
func (p *Provider) call(ctx context.Context, fn string, args ...lua.LValue) (*lua.LTable, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	luaFn := p.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	p.httpErr = nil
	p.state.SetContext(ctx)
	defer p.state.RemoveContext()

	err := p.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		log.City(p.city.ID).Errorf("%s: %v", fn, err)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case p.httpErr != nil:
			return nil, p.httpErr
		default:
			return nil, fmt.Errorf("%w: %s: %v", provider.ErrUpstreamFormat, fn, err)
		}
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	switch ret.Type() {
	case lua.LTNil:
		return p.state.NewTable(), nil
	case lua.LTTable:
		return ret.(*lua.LTable), nil
	default:
		return nil, fmt.Errorf("%w: %s returned %s, expected table", provider.ErrUpstreamFormat, fn, ret.Type())
	}
}
