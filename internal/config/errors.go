package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr        = errors.New("addr must not be empty")
	ErrBadHistoryWindow = errors.New("history_window must be at least 1")
	ErrBadLearningRate  = errors.New("base_learning_rate must be positive")
	ErrBadThreshold     = errors.New("provisional_threshold must be at least 1")
	ErrBadDecayRate     = errors.New("decay_rate must not be negative")
)
