package profile

import "testing"

func TestGet_Fallback(t *testing.T) {
	p := Get("nope")
	if p.Name != "nope" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.ComponentsX != 4 || p.ComponentsY != 3 {
		t.Errorf("components: got %dx%d", p.ComponentsX, p.ComponentsY)
	}
}

func TestGet_FormatsAreCopied(t *testing.T) {
	p := Get("detailed")
	p.Formats[0] = "bmp"
	if Get("detailed").Formats[0] != "webp" {
		t.Error("Get leaked the built-in Formats slice")
	}
}

func TestNames_AllResolve(t *testing.T) {
	for _, n := range Names() {
		p := Get(n)
		if p.Name != n {
			t.Errorf("%s: name %q", n, p.Name)
		}
		if p.ComponentsX < 1 || p.ComponentsX > 9 || p.ComponentsY < 1 || p.ComponentsY > 9 {
			t.Errorf("%s: components %dx%d out of range", n, p.ComponentsX, p.ComponentsY)
		}
	}
}

func TestComponents_AutoOrient(t *testing.T) {
	p := Get("default")
	if x, y := p.Components(800, 600); x != 4 || y != 3 {
		t.Errorf("landscape: got %dx%d", x, y)
	}
	if x, y := p.Components(600, 800); x != 3 || y != 4 {
		t.Errorf("portrait: got %dx%d", x, y)
	}

	p.AutoOrient = false
	if x, y := p.Components(600, 800); x != 4 || y != 3 {
		t.Errorf("fixed: got %dx%d", x, y)
	}
}

func TestPreviewSize(t *testing.T) {
	p := Get("default")
	if w, h := p.PreviewSize(800, 600); w != 32 || h != 24 {
		t.Errorf("got %dx%d", w, h)
	}
	if w, h := p.PreviewSize(4000, 10); w != 32 || h != 1 {
		t.Errorf("thin: got %dx%d", w, h)
	}
	if w, h := Get("minimal").PreviewSize(800, 600); w != 0 || h != 0 {
		t.Errorf("disabled: got %dx%d", w, h)
	}
}
