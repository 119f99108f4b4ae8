package services

import (
	"errors"
	"fmt"
	"math"
)

// NaiveBayes is a multinomial event-count classifier with additive
// smoothing. It is fit once and immutable afterwards, so a single model can
// serve concurrent predictions without locking.
type NaiveBayes struct {
	alpha       float64
	numClasses  int
	vocabSize   int
	logPriors   []float64
	tokenCounts [][]float64 // per class, per token
	classTotals []float64   // total token count per class
	trained     bool
}

// NewNaiveBayes creates an untrained model. Alpha is the additive smoothing
// constant; values <= 0 fall back to Laplace smoothing (1.0).
func NewNaiveBayes(alpha float64) *NaiveBayes {
	if alpha <= 0 {
		alpha = 1.0
	}
	return &NaiveBayes{alpha: alpha}
}

// Fit estimates per-class token likelihoods and class priors from
// token-count vectors. Every class in [0, numClasses) must be represented
// by at least one document, otherwise its prior would be degenerate.
func (nb *NaiveBayes) Fit(vectors [][]int, labels []int, numClasses int) error {
	if len(vectors) == 0 {
		return errors.New("no training vectors")
	}
	if len(labels) != len(vectors) {
		return fmt.Errorf("label count %d does not match vector count %d", len(labels), len(vectors))
	}
	if numClasses < 2 {
		return errors.New("at least two classes required")
	}

	vocabSize := len(vectors[0])
	docCounts := make([]float64, numClasses)
	tokenCounts := make([][]float64, numClasses)
	classTotals := make([]float64, numClasses)
	for c := range tokenCounts {
		tokenCounts[c] = make([]float64, vocabSize)
	}

	for i, vec := range vectors {
		c := labels[i]
		if c < 0 || c >= numClasses {
			return fmt.Errorf("label %d out of range", c)
		}
		docCounts[c]++
		for t, n := range vec {
			tokenCounts[c][t] += float64(n)
			classTotals[c] += float64(n)
		}
	}

	logPriors := make([]float64, numClasses)
	total := float64(len(vectors))
	for c, n := range docCounts {
		if n == 0 {
			return fmt.Errorf("class %d has no training documents", c)
		}
		logPriors[c] = math.Log(n / total)
	}

	nb.numClasses = numClasses
	nb.vocabSize = vocabSize
	nb.logPriors = logPriors
	nb.tokenCounts = tokenCounts
	nb.classTotals = classTotals
	nb.trained = true

	return nil
}

// IsTrained reports whether Fit has completed successfully
func (nb *NaiveBayes) IsTrained() bool {
	return nb.trained
}

// PredictProba returns the normalized class posteriors for a token-count
// vector. A vector with no observed tokens yields the priors, which keeps
// fully out-of-vocabulary messages classifiable.
func (nb *NaiveBayes) PredictProba(vector []int) []float64 {
	logPosteriors := make([]float64, nb.numClasses)
	for c := 0; c < nb.numClasses; c++ {
		lp := nb.logPriors[c]
		denom := nb.classTotals[c] + nb.alpha*float64(nb.vocabSize)
		for t, n := range vector {
			if n == 0 || t >= nb.vocabSize {
				continue
			}
			likelihood := (nb.tokenCounts[c][t] + nb.alpha) / denom
			lp += float64(n) * math.Log(likelihood)
		}
		logPosteriors[c] = lp
	}

	// Normalize via log-sum-exp to avoid underflow
	maxLog := logPosteriors[0]
	for _, lp := range logPosteriors[1:] {
		if lp > maxLog {
			maxLog = lp
		}
	}
	var sum float64
	probs := make([]float64, nb.numClasses)
	for c, lp := range logPosteriors {
		probs[c] = math.Exp(lp - maxLog)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}

	return probs
}

// Predict returns the argmax class for a token-count vector
func (nb *NaiveBayes) Predict(vector []int) int {
	probs := nb.PredictProba(vector)
	best := 0
	for c, p := range probs {
		if p > probs[best] {
			best = c
		}
	}
	return best
}
