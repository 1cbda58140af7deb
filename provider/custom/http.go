package custom

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/tonneli-cli/tonneli/network"
	"github.com/tonneli-cli/tonneli/provider"
	lua "github.com/yuin/gopher-lua"
)

// registerHTTP exposes the provider's HTTP client to the script as the http_tls module:
//
//	http_tls.get(url [, headers])     -> body
//	http_tls.request({method, url, headers, body}) -> {status, body, headers}
//
// Requests are bound to the context of the running call.
func registerHTTP(L *lua.LState, p *Provider) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(p.httpGet))
	L.SetField(mod, "request", L.NewFunction(p.httpRequest))
	L.SetGlobal("http_tls", mod)
}

func (p *Provider) httpGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := tableToHeaders(L.OptTable(2, nil))

	status, body, _, err := p.do(L.Context(), http.MethodGet, url, headers, "")
	if err == nil {
		err = provider.Classify(&http.Response{StatusCode: status, Status: http.StatusText(status)}, nil)
	}
	if err != nil {
		p.httpErr = err
		L.RaiseError("http_tls.get failed: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(body))
	return 1
}

func (p *Provider) httpRequest(L *lua.LState) int {
	opts := L.CheckTable(1)

	method := strings.ToUpper(getString(opts, "method"))
	if method == "" {
		method = http.MethodGet
	}

	url := getString(opts, "url")
	if url == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	headersTable, _ := opts.RawGetString("headers").(*lua.LTable)
	status, body, respHeaders, err := p.do(L.Context(), method, url, tableToHeaders(headersTable), getString(opts, "body"))
	if err != nil {
		p.httpErr = err
		L.RaiseError("http_tls.request failed: %s", err.Error())
		return 0
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(status))
	L.SetField(result, "body", lua.LString(body))

	headers := L.NewTable()
	for k := range respHeaders {
		L.SetField(headers, k, lua.LString(respHeaders.Get(k)))
	}
	L.SetField(result, "headers", headers)

	L.Push(result)
	return 1
}

func (p *Provider) do(ctx context.Context, method, url string, headers map[string]string, body string) (int, string, http.Header, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, "", nil, err
	}

	req.Header.Set("User-Agent", network.BrowserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, "", nil, ctx.Err()
		}
		return 0, "", nil, provider.Classify(nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", nil, provider.Classify(nil, err)
	}

	return resp.StatusCode, string(respBody), resp.Header, nil
}

func tableToHeaders(table *lua.LTable) map[string]string {
	headers := make(map[string]string)
	if table == nil {
		return headers
	}

	table.ForEach(func(k, v lua.LValue) {
		headers[k.String()] = v.String()
	})
	return headers
}
