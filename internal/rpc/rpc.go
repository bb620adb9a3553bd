// Package rpc implements line-delimited JSON-RPC 2.0 framing over the
// Session API: one request per input line, one response per output
// line, matching spec.md §6's framing note. This package only frames
// and dispatches — process lifecycle, TLS, and transport stay a
// front-end's problem.
package rpc

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nasedkinpv/numr/internal/session"
)

// request is one JSON-RPC 2.0 call.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// response is one JSON-RPC 2.0 reply; Error is omitted on success,
// Result is omitted on failure.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeEvalError      = -32000
)

// Serve reads JSON-RPC requests from r, one per line, dispatches them
// to sess, and writes one JSON-RPC response per line to w. It returns
// when r is exhausted or on a read error.
func Serve(r io.Reader, w io.Writer, sess *session.Session) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		resp := handle(sess, line)
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func handle(sess *session.Session, line string) response {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		logrus.WithError(err).Debug("rpc: malformed request")
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}}
	}
	resp := response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "eval":
		var p struct {
			Source string `json:"source"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			resp.Error = &rpcError{Code: codeInvalidRequest, Message: "invalid params"}
			return resp
		}
		resp.Result = outcomeJSON(sess.Eval(p.Source))

	case "eval_lines":
		var p struct {
			Lines []string `json:"lines"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			resp.Error = &rpcError{Code: codeInvalidRequest, Message: "invalid params"}
			return resp
		}
		outcomes := sess.EvalLines(p.Lines)
		results := make([]any, len(outcomes))
		for i, o := range outcomes {
			results[i] = outcomeJSON(o)
		}
		resp.Result = results

	case "clear":
		sess.Clear()
		resp.Result = map[string]any{}

	case "get_totals":
		groups := sess.GetTotals()
		out := make([]map[string]any, len(groups))
		for i, g := range groups {
			out[i] = map[string]any{"label": g.Label, "value": g.Sum.String()}
		}
		resp.Result = out

	case "get_variables":
		vars := sess.GetVariables()
		out := make([]map[string]any, len(vars))
		for i, v := range vars {
			out[i] = map[string]any{"name": v.Name, "value": v.Value.String()}
		}
		resp.Result = out

	case "reload_rates":
		var p struct {
			Path string `json:"path"`
		}
		_ = json.Unmarshal(req.Params, &p)
		if err := sess.ReloadRates(p.Path); err != nil {
			resp.Error = &rpcError{Code: codeEvalError, Message: err.Error()}
			return resp
		}
		resp.Result = map[string]any{}

	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
	return resp
}

func outcomeJSON(o session.Outcome) map[string]any {
	if o.Err != nil {
		return map[string]any{
			"kind":    o.Err.Kind.String(),
			"message": o.Err.Message,
		}
	}
	if o.Empty {
		return map[string]any{"empty": true}
	}
	return map[string]any{"display": o.Display}
}
