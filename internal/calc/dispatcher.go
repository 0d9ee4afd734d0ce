package calc

import (
	"context"
	"log/slog"

	"github.com/csheth/calcscout/internal/chart"
)

// Dispatcher sends requests to the service and folds every possible result
// into an Outcome. It never retries and keeps no state between calls.
type Dispatcher struct {
	service Service
	logger  *slog.Logger
}

// NewDispatcher wraps a service. A nil logger uses slog.Default.
func NewDispatcher(service Service, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{service: service, logger: logger}
}

// Calculate performs a single calculate call.
func (d *Dispatcher) Calculate(ctx context.Context, req CalculationRequest) Outcome {
	reply, err := d.service.Calculate(ctx, req)
	if err != nil {
		d.logger.Warn("calculate transport failure", "mode", req.RequestMode(), "error", err)
		return TransportFailure()
	}
	if reply.Error != "" {
		d.logger.Info("calculate rejected", "mode", req.RequestMode(), "error", reply.Error)
		return Failure(reply.Error)
	}
	return Success(reply.ResultText())
}

// Graph performs a single graph call.
func (d *Dispatcher) Graph(ctx context.Context, req GraphRequest) GraphOutcome {
	reply, err := d.service.Graph(ctx, req)
	if err != nil {
		d.logger.Warn("graph transport failure", "expression", req.Expression, "error", err)
		return GraphOutcome{Outcome: TransportFailure()}
	}
	if reply.Error != "" {
		d.logger.Info("graph rejected", "expression", req.Expression, "error", reply.Error)
		return GraphOutcome{Outcome: Failure(reply.Error)}
	}
	series := chart.NewSeries(reply.X, reply.Y)
	return GraphOutcome{
		Outcome: Success(chart.Label(req.Expression)),
		Series:  series,
	}
}
