package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/blurhash/internal/encoder"
	"github.com/AnyUserName/blurhash/internal/manifest"
	"github.com/AnyUserName/blurhash/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Verbose   bool
	Previews  bool               // write rendered placeholder images
	Previous  *manifest.Manifest // incremental: reuse entries with a matching fingerprint
}

func (c Config) logf(format string, args ...any) {
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[blurhash] "+format+"\n", args...)
	}
}

// Pipeline orchestrates placeholder generation for a directory.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	return NewWithRegistry(cfg, encoder.NewRegistry())
}

// NewWithRegistry creates a pipeline that renders previews with the given
// encoders.
func NewWithRegistry(cfg Config, registry *encoder.Registry) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg, registry: registry}
}

// Run executes the full build pipeline and returns the manifest.
// Cancelling ctx stops scheduling new images; Run then returns ctx.Err().
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	if p.cfg.Previews {
		p.cfg.logf("%s", p.registry.String())
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.cfg.logf("found %d images", len(sources))

	// Step 2: Process images in parallel; each goroutine owns results[idx].
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

schedule:
	for i, src := range sources {
		select {
		case sem <- struct{}{}: // acquire
		case <-ctx.Done():
			break schedule
		}
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			defer func() { <-sem }() // release

			p.cfg.logf("processing: %s", s.Key)
			results[idx] = processImage(s, p.cfg, p.registry)
			if r := results[idx]; r.err == nil {
				p.cfg.logf("done: %s %s (reused=%t)", s.Key, r.asset.BlurHash, r.reused)
			}
		}(i, src)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	reused := 0
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
		if r.reused {
			reused++
		}
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[blurhash] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[blurhash] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:     p.cfg.Workers,
		SampleSize:  p.cfg.Profile.SampleSize,
		ComponentsX: p.cfg.Profile.ComponentsX,
		ComponentsY: p.cfg.Profile.ComponentsY,
	}
	m.Stats.Reused = reused
	m.ComputeStats()
	return m, nil
}
