package services

// LabeledMessage is one training exemplar for the text classifier
type LabeledMessage struct {
	Text     string
	ScamLike bool
}

// TrainingCorpus is the fixed labeled corpus the classifier is fit on.
// It is initialization data: built once at startup, passed by reference,
// never mutated from live traffic.
type TrainingCorpus []LabeledMessage

// DefaultTrainingCorpus returns the built-in corpus of short payment
// notification exemplars, benign and scam-like.
func DefaultTrainingCorpus() TrainingCorpus {
	return TrainingCorpus{
		{Text: "Payment successful", ScamLike: false},
		{Text: "Money credited to your account", ScamLike: false},
		{Text: "You received 500 rupees", ScamLike: false},
		{Text: "Transaction completed", ScamLike: false},
		{Text: "Approve collect request", ScamLike: true},
		{Text: "Enter UPI PIN to receive reward", ScamLike: true},
		{Text: "Urgent request approve now", ScamLike: true},
		{Text: "You won prize claim now", ScamLike: true},
		{Text: "Click link to get cashback", ScamLike: true},
		{Text: "Verify your account immediately", ScamLike: true},
	}
}
