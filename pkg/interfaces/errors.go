/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed error taxonomy for the Akaylee Cracker. Distinguishes recoverable
input errors from fatal snapshot corruption and untrained-model conditions so callers
can react with errors.As instead of string matching.
*/

package interfaces

import "fmt"

// InvalidInputError indicates empty or malformed text handed to the
// normalizer or tokenizer. Always recoverable by the caller; it never
// corrupts model state. During training these are absorbed into the
// skip count.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// SnapshotCorruptError indicates a schema version mismatch or structural
// corruption detected while loading a model snapshot. Fatal to the inference
// run: the loader must fail loudly rather than silently degrade to wrong
// probabilities.
type SnapshotCorruptError struct {
	Path   string
	Reason string
}

func (e *SnapshotCorruptError) Error() string {
	return fmt.Sprintf("snapshot corrupt (%s): %s", e.Path, e.Reason)
}

// ModelNotTrainedError indicates scoring or generation was attempted against
// an absent or empty model. Fatal, surfaced immediately.
type ModelNotTrainedError struct {
	Op string
}

func (e *ModelNotTrainedError) Error() string {
	return fmt.Sprintf("model not trained: %s requires a trained model", e.Op)
}
