package profile

// Profile defines how placeholders are computed and rendered.
type Profile struct {
	Name        string
	ComponentsX int      // horizontal cosine terms, 1-9
	ComponentsY int      // vertical cosine terms, 1-9
	SampleSize  int      // longest side the source is reduced to before encoding
	AutoOrient  bool     // swap X/Y for portrait sources
	Punch       float64  // contrast applied when rendering previews
	PreviewW    int      // preview image width; 0 disables previews
	Formats     []string // preview formats in priority order
	Quality     int      // preview encoding quality 1-100
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:        "default",
		ComponentsX: 4,
		ComponentsY: 3,
		SampleSize:  64,
		AutoOrient:  true,
		Punch:       1,
		PreviewW:    32,
		Formats:     []string{"png"},
		Quality:     80,
	},
	"square": {
		Name:        "square",
		ComponentsX: 4,
		ComponentsY: 4,
		SampleSize:  64,
		Punch:       1,
		PreviewW:    32,
		Formats:     []string{"png"},
		Quality:     80,
	},
	"detailed": {
		Name:        "detailed",
		ComponentsX: 6,
		ComponentsY: 5,
		SampleSize:  96,
		AutoOrient:  true,
		Punch:       1.1,
		PreviewW:    64,
		Formats:     []string{"webp", "png"},
		Quality:     85,
	},
	"minimal": {
		Name:        "minimal",
		ComponentsX: 3,
		ComponentsY: 3,
		SampleSize:  32,
		Punch:       1,
		Formats:     []string{"jpeg"},
		Quality:     70,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		p.Formats = append([]string(nil), p.Formats...)
		return p
	}
	p := profiles["default"]
	p.Formats = append([]string(nil), p.Formats...)
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles.
func Names() []string {
	return []string{"default", "square", "detailed", "minimal"}
}

// Components returns the component counts for a source of the given size.
// With AutoOrient the larger count follows the longer side.
func (p Profile) Components(width, height int) (int, int) {
	x, y := p.ComponentsX, p.ComponentsY
	if p.AutoOrient && height > width && x > y {
		x, y = y, x
	}
	return x, y
}

// PreviewSize returns the preview dimensions for a source aspect ratio,
// or 0, 0 when previews are disabled.
func (p Profile) PreviewSize(width, height int) (int, int) {
	if p.PreviewW <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	h := p.PreviewW * height / width
	if h < 1 {
		h = 1
	}
	return p.PreviewW, h
}
