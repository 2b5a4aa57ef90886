package ai

import (
	"context"
	"time"

	"parley/internal/pkg/metrics"
)

// InstrumentedPredictor 为 Predictor 记录请求数和耗时
type InstrumentedPredictor struct {
	next    Predictor
	metrics *metrics.GenerationMetrics
}

// NewInstrumentedPredictor 包装 Predictor
func NewInstrumentedPredictor(next Predictor, m *metrics.GenerationMetrics) *InstrumentedPredictor {
	return &InstrumentedPredictor{next: next, metrics: m}
}

// Predict 实现 Predictor，错误原样透传
func (p *InstrumentedPredictor) Predict(ctx context.Context, modelPath string, in *PredictionInput) ([]string, error) {
	start := time.Now()
	fragments, err := p.next.Predict(ctx, modelPath, in)

	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.Requests.WithLabelValues(modelPath, status).Inc()
	p.metrics.Duration.WithLabelValues(modelPath).Observe(time.Since(start).Seconds())

	return fragments, err
}
