package services

import (
	"fmt"
	"math"

	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/models"
	"payguard-lab/pkg/logger"
)

// class indices inside the naive Bayes model
const (
	classBenign   = 0
	classScamLike = 1
	numClasses    = 2
)

// TextClassifier pairs a fixed Vocabulary with a multinomial NaiveBayes
// model. Training happens once in the constructor, before any request is
// served; afterwards the classifier is read-only and safe for concurrent
// use.
type TextClassifier struct {
	vocab  *Vocabulary
	model  *NaiveBayes
	logger *logger.Logger
}

// NewTextClassifier trains a classifier on the given corpus. An empty
// corpus, or one missing either class, is a fatal initialization error:
// there is no per-request recovery from a model that never existed.
func NewTextClassifier(corpus TrainingCorpus, cfg config.ClassifierConfig, log *logger.Logger) (*TextClassifier, error) {
	if len(corpus) == 0 {
		return nil, models.ErrEmptyCorpus
	}

	messages := make([]string, len(corpus))
	labels := make([]int, len(corpus))
	for i, m := range corpus {
		messages[i] = m.Text
		labels[i] = classBenign
		if m.ScamLike {
			labels[i] = classScamLike
		}
	}

	vocab := BuildVocabulary(messages)
	vectors := make([][]int, len(messages))
	for i, msg := range messages {
		vectors[i] = vocab.Vectorize(msg)
	}

	model := NewNaiveBayes(cfg.SmoothingAlpha)
	if err := model.Fit(vectors, labels, numClasses); err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	c := &TextClassifier{
		vocab:  vocab,
		model:  model,
		logger: log.WithComponent("text-classifier"),
	}

	c.logger.Info().
		Int("corpus_size", len(corpus)).
		Int("vocabulary_size", vocab.Size()).
		Float64("smoothing_alpha", cfg.SmoothingAlpha).
		Msg("classifier trained")

	return c, nil
}

// Classify predicts whether a message looks like a scam notification.
// A message with zero in-vocabulary tokens still classifies on the class
// priors alone.
func (c *TextClassifier) Classify(message string) models.ClassificationResult {
	vector := c.vocab.Vectorize(message)
	probs := c.model.PredictProba(vector)

	scamProb := probs[classScamLike]
	predicted := models.MessageClassBenign
	if scamProb > probs[classBenign] {
		predicted = models.MessageClassScamLike
	}

	return models.ClassificationResult{
		PredictedClass:  predicted,
		ScamProbability: scamProb,
		RiskPoints:      int(math.Round(scamProb * 100)),
	}
}

// VocabularySize returns the number of distinct trained tokens
func (c *TextClassifier) VocabularySize() int {
	return c.vocab.Size()
}
