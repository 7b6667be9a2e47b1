package encoder

import (
	"fmt"
	"strings"
)

// priority is the order formats are listed in.
var priority = []string{"avif", "webp", "jpeg", "png"}

// Registry holds all available encoders and selects one per format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(
		NewAVIFEncoder(),
		NewWebPEncoder(),
		&JPEGEncoder{},
		&PNGEncoder{},
	)
}

// NewRegistryWith registers the given encoders.  Only available ones
// will be used.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted for "jpeg".
func (r *Registry) Get(format string) Encoder {
	f := strings.ToLower(format)
	if f == "jpg" {
		f = "jpeg"
	}
	return r.encoders[f]
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to those available.  When
// nothing requested is available it falls back to png.
func (r *Registry) ResolveFormats(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}

	for _, f := range requested {
		enc := r.Get(f)
		if enc == nil || seen[enc.Format()] {
			continue
		}
		resolved = append(resolved, enc.Format())
		seen[enc.Format()] = true
	}

	if len(resolved) == 0 && r.encoders["png"] != nil {
		resolved = append(resolved, "png")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
