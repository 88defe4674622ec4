package comps

import "testing"

func TestDecodeBaseProps(t *testing.T) {
	// JSON transports hand numbers over as float64, sometimes as strings
	base, err := DecodeBaseProps(map[string]any{
		"width":  float64(800),
		"height": "450",
		"title":  "ignored",
	})
	if err != nil {
		t.Fatal(err)
	}
	if base.Width != 800 || base.Height != 450 {
		t.Fatalf("got %+v", base)
	}
}

func TestResolveSize(t *testing.T) {
	width, height := ResolveSize(map[string]any{"width": 300}, 800, 450)
	if width != 300 || height != 450 {
		t.Fatalf("got %d x %d", width, height)
	}

	width, height = ResolveSize(nil, 800, 450)
	if width != 800 || height != 450 {
		t.Fatalf("got %d x %d", width, height)
	}
}

func TestMergedProps(t *testing.T) {
	def := &Definition{
		CustomProps: map[string]any{
			"accent": "#fff",
			"width":  500,
		},
		Width:  640,
		Height: 480,
	}

	props := def.MergedProps(800, 450)
	// custom properties layer over the base fields
	if props["width"] != 500 {
		t.Fatalf("got width %v", props["width"])
	}
	if props["height"] != 450 {
		t.Fatalf("got height %v", props["height"])
	}
	if props["accent"] != "#fff" {
		t.Fatal()
	}

	// measured size zero falls back to the definition's fixed fields
	props = (&Definition{Width: 640, Height: 480}).MergedProps(0, 0)
	if props["width"] != 640 || props["height"] != 480 {
		t.Fatalf("got %v x %v", props["width"], props["height"])
	}
}
