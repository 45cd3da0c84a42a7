package universe

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Provider supplies the set of instruments to scan.
type Provider interface {
	Fetch(ctx context.Context) ([]string, error)
	Name() string
}

// Fallback tries providers in order and returns the first usable universe.
type Fallback struct {
	Providers []Provider
}

func (f *Fallback) Name() string { return "auto" }

func (f *Fallback) Fetch(ctx context.Context) ([]string, error) {
	var errs []error
	for _, p := range f.Providers {
		symbols, err := p.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[WARN] universe source %s failed: %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if p != f.Providers[0] {
			log.Printf("[INFO] universe resolved via fallback source: %s (%d symbols)", p.Name(), len(symbols))
		}
		return symbols, nil
	}
	return nil, errors.Join(errs...)
}
