package metrics

import (
	"time"

	"github.com/Alias1177/QuotexSignals/models"
)

// NoopRecorder is used when the metrics server is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) ObserveSignal(_ string, _ models.Direction, _ time.Duration) {}
func (n *NoopRecorder) ObserveError(_ string)                                       {}
func (n *NoopRecorder) ObserveCache(_ bool)                                         {}
func (n *NoopRecorder) ObserveDelivery(_ error)                                     {}
