package llm

import "context"

// Purpose labels what an LLM call was made for. It is recorded with every
// request event and filters `edupath llm list --purpose`.
type Purpose string

const (
	// PurposeCurriculum is a learning path generation.
	PurposeCurriculum Purpose = "curriculum"
	// PurposeUnknown marks calls made without a label.
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose labels the LLM calls made with ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
