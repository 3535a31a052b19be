package word2vec

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anyvec"
)

// DefaultRate is the step size used when Trainer.Rate is
// 0.
const DefaultRate = 0.3

// DefaultLogInterval is the number of steps between log
// entries when Trainer.LogInterval is 0.
const DefaultLogInterval = 100

// A Trainer runs stochastic gradient descent on a stacked
// input/output matrix using a MiniBatch.
type Trainer struct {
	Batch *MiniBatch

	// Vectors is updated in place by every step.
	Vectors *anyvec.Matrix

	// Rate is the step size.
	// If 0, DefaultRate is used.
	Rate float64

	// AnnealEvery, if non-zero, halves the step size after
	// every AnnealEvery steps.
	AnnealEvery int

	// StatusFunc, if non-nil, is called after every training
	// step with the cost from that step.
	StatusFunc func(step int, cost float64)

	// Logger, if non-nil, receives a log entry every
	// LogInterval steps.
	Logger      logrus.FieldLogger
	LogInterval int

	// NumSteps counts the steps taken so far.
	NumSteps int

	avgCost float64
}

// Step applies one update and returns the cost of the
// batch before the update.
func (t *Trainer) Step(gen *rand.Rand) (float64, error) {
	cost, grad, err := t.Batch.Gradient(gen, t.Vectors)
	if err != nil {
		return 0, err
	}
	rate := t.rate()
	grad.Data.Scale(grad.Data.Creator().MakeNumeric(rate))
	t.Vectors.Data.Sub(grad.Data)
	t.NumSteps++
	t.report(cost, rate)
	return cost, nil
}

// Train trains the model until the done channel is closed
// or a step fails.
func (t *Trainer) Train(gen *rand.Rand, done <-chan struct{}) error {
	for {
		select {
		case <-done:
			return nil
		default:
		}
		if _, err := t.Step(gen); err != nil {
			return err
		}
	}
}

func (t *Trainer) rate() float64 {
	rate := t.Rate
	if rate == 0 {
		rate = DefaultRate
	}
	if t.AnnealEvery != 0 {
		for i := 0; i < t.NumSteps/t.AnnealEvery; i++ {
			rate /= 2
		}
	}
	return rate
}

func (t *Trainer) report(cost, rate float64) {
	if t.StatusFunc != nil {
		t.StatusFunc(t.NumSteps, cost)
	}
	if t.Logger == nil {
		return
	}
	interval := t.LogInterval
	if interval == 0 {
		interval = DefaultLogInterval
	}

	// Exponential moving average of the batch cost.
	if t.NumSteps == 1 {
		t.avgCost = cost
	} else {
		t.avgCost = 0.95*t.avgCost + 0.05*cost
	}
	if t.NumSteps%interval == 0 {
		t.Logger.WithFields(logrus.Fields{
			"step":     t.NumSteps,
			"cost":     cost,
			"avg_cost": t.avgCost,
			"rate":     rate,
		}).Info("training step")
	}
}
