package calc

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
)

// Service is the remote calculation service. Any returned error is a
// transport failure; application failures travel in the reply's Error field.
type Service interface {
	Calculate(ctx context.Context, req CalculationRequest) (Reply, error)
	Graph(ctx context.Context, req GraphRequest) (GraphReply, error)
}

// Reply is the calculate endpoint response body.
type Reply struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// GraphReply is the graph endpoint response body. A nil entry in Y marks a
// sample where f(x) is undefined.
type GraphReply struct {
	X     []float64  `json:"x"`
	Y     []*float64 `json:"y"`
	Error string     `json:"error,omitempty"`
}

// ResultText renders the result value as display text. Strings are shown
// unquoted, numbers in plain decimal notation, anything else verbatim.
func (r Reply) ResultText() string {
	raw := bytes.TrimSpace(r.Result)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if value, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return FormatNumber(value)
		}
	}
	return string(raw)
}
