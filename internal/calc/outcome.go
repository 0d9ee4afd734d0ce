package calc

import "github.com/csheth/calcscout/internal/chart"

// ConnectivityMessage is shown for every transport failure regardless of
// mode, so it never reads like a complaint about the user's input.
const ConnectivityMessage = "Could not reach the calculation service."

// OutcomeKind tags a CalculationOutcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure is an error reported by the service for a request it received.
	OutcomeFailure
	// OutcomeTransportFailure covers unreachable service, non-success HTTP
	// status and undecodable bodies.
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Outcome is the normalized result of one dispatched request.
type Outcome struct {
	Kind    OutcomeKind
	Result  string
	Message string
}

// Success builds a successful outcome.
func Success(result string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Result: result}
}

// Failure builds an application failure outcome.
func Failure(message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message}
}

// TransportFailure builds the fixed connectivity failure outcome.
func TransportFailure() Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Message: ConnectivityMessage}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// GraphOutcome is the result of a graph request. Series is only populated on
// success.
type GraphOutcome struct {
	Outcome
	Series chart.Series
}
