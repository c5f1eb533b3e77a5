package eval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pdfpilot/internal/log"
)

// predictTimeout bounds one predictor call. Agent runs make many model
// calls in sequence, so this is generous.
const predictTimeout = 300 * time.Second

// Predictor produces a predicted answer for one question.
type Predictor func(ctx context.Context, question string) (string, error)

// Harness runs an evaluation set through a predictor and the judge. The
// finished report lists items in input order even when prediction runs on
// several workers.
type Harness struct {
	judge   *Judge
	predict Predictor
	workers int
	timeout time.Duration
}

// NewHarness builds a harness. workers bounds concurrent predictor calls;
// values below 2 keep prediction strictly sequential.
func NewHarness(judge *Judge, predict Predictor, workers int) *Harness {
	if workers < 1 {
		workers = 1
	}
	return &Harness{
		judge:   judge,
		predict: predict,
		workers: workers,
		timeout: predictTimeout,
	}
}

// Run processes every item and returns the finished report. Per-item
// failures are recorded and graded, never propagated.
func (h *Harness) Run(ctx context.Context, items []Item) *Report {
	predictions := h.predictAll(ctx, items)

	report := &Report{}
	for i, item := range items {
		grade := h.judge.Grade(ctx, item.Question, item.Answer, predictions[i])
		report.Add(item.Question, item.Answer, predictions[i], grade)
		log.Infof("[%d/%d] graded %q: %s", i+1, len(items), item.Question, grade)
	}
	return report
}

// predictAll collects one predicted answer per item, indexed by input
// position.
func (h *Harness) predictAll(ctx context.Context, items []Item) []string {
	predictions := make([]string, len(items))

	if h.workers <= 1 {
		for i, item := range items {
			log.Infof("[%d/%d] predicting: %s", i+1, len(items), item.Question)
			predictions[i] = h.predictOne(ctx, item.Question)
		}
		return predictions
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, h.workers)
	for i, item := range items {
		wg.Add(1)
		go func(idx int, question string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			predictions[idx] = h.predictOne(ctx, question)
		}(i, item.Question)
	}
	wg.Wait()
	return predictions
}

// predictOne converts predictor failures into a literal error string so a
// failed prediction is graded instead of aborting the batch.
func (h *Harness) predictOne(ctx context.Context, question string) string {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	answer, err := h.predict(ctx, question)
	if err != nil {
		log.Warnf("predictor: %v", err)
		return fmt.Sprintf("Error: %s", err)
	}
	return answer
}
