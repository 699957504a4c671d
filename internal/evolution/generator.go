package evolution

import (
	"context"
	"fmt"
)

// Generator produces evolution content for a milestone score.
type Generator interface {
	Generate(ctx context.Context, score int) (Record, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, score int) (Record, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, score int) (Record, error) {
	return f(ctx, score)
}

// Fetch asks g for content and always returns a displayable record.
// On any failure, including an invalid record or a cancelled context, the
// fallback record is returned together with the error so callers can log it.
func Fetch(ctx context.Context, g Generator, score int) (Record, error) {
	if g == nil {
		return Fallback(), ErrUnavailable
	}

	rec, err := g.Generate(ctx, score)
	if err == nil {
		err = rec.Validate()
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return Fallback(), fmt.Errorf("evolution: fetch for score %d: %w", score, err)
	}
	return rec, nil
}
