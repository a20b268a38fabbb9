package candidate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Prepare segments generated output and derives the name and normalized form
// of every fragment. Fragments are processed concurrently; the result keeps
// source order. A failure on any fragment discards the whole batch.
func Prepare(ctx context.Context, text string) ([]Candidate, error) {
	fragments, err := Segment(text)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(fragments))
	g, gctx := errgroup.WithContext(ctx)
	for i, fragment := range fragments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name, err := ExtractName(fragment)
			if err != nil {
				return fmt.Errorf("fragment at line %d: %w", fragment.StartLine, err)
			}
			candidates[i] = Candidate{
				ID:         uuid.NewString(),
				Name:       name,
				Fragment:   fragment,
				Normalized: Normalize(fragment.Source),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}
