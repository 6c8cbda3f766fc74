package media

import "testing"

func newTestResolver() *Resolver {
	return NewResolver("https://cdn.example.io/", "p01ab", "production")
}

func TestURLForResolvesImageReference(t *testing.T) {
	resolver := newTestResolver()
	ref := &AssetReference{Ref: "image-a1b2c3d4e5-1200x800-jpg", Alt: "Folicur pack shot"}

	url, ok := resolver.URLFor(ref, nil)
	if !ok {
		t.Fatal("expected resolvable reference")
	}
	want := "https://cdn.example.io/images/p01ab/production/a1b2c3d4e5-1200x800.jpg"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
}

func TestURLForAppliesTransformInStableOrder(t *testing.T) {
	resolver := newTestResolver()
	ref := &AssetReference{Ref: "image-a1b2c3d4e5-1200x800-jpg"}
	transform := &Transform{Width: 640, Height: 480, Fit: FitCover, Format: "auto"}

	first, ok := resolver.URLFor(ref, transform)
	if !ok {
		t.Fatal("expected resolvable reference")
	}
	second, _ := resolver.URLFor(ref, transform)
	if first != second {
		t.Fatalf("expected deterministic URLs, got %q then %q", first, second)
	}

	want := "https://cdn.example.io/images/p01ab/production/a1b2c3d4e5-1200x800.jpg?w=640&h=480&fit=cover&auto=format"
	if first != want {
		t.Fatalf("expected %q, got %q", want, first)
	}
}

func TestURLForExplicitFormat(t *testing.T) {
	resolver := newTestResolver()
	ref := &AssetReference{Ref: "image-a1b2c3d4e5-1200x800-jpg"}

	url, ok := resolver.URLFor(ref, &Transform{Width: 320, Format: "webp"})
	if !ok {
		t.Fatal("expected resolvable reference")
	}
	want := "https://cdn.example.io/images/p01ab/production/a1b2c3d4e5-1200x800.jpg?w=320&fm=webp"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
}

func TestURLForResolvesFileReference(t *testing.T) {
	resolver := newTestResolver()
	ref := &AssetReference{Ref: "file-9f8e7d6c-pdf"}

	url, ok := resolver.URLFor(ref, nil)
	if !ok {
		t.Fatal("expected resolvable reference")
	}
	want := "https://cdn.example.io/files/p01ab/production/9f8e7d6c.pdf"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
}

func TestURLForMissingOrMalformedReference(t *testing.T) {
	resolver := newTestResolver()

	cases := map[string]*AssetReference{
		"nil reference":   nil,
		"blank pointer":   {Ref: "   "},
		"unknown kind":    {Ref: "video-a1b2-1200x800-mp4"},
		"missing dims":    {Ref: "image-a1b2-jpg"},
		"bad dimensions":  {Ref: "image-a1b2-wide-jpg"},
		"truncated parts": {Ref: "file-a1b2"},
	}

	for name, ref := range cases {
		t.Run(name, func(t *testing.T) {
			if url, ok := resolver.URLFor(ref, nil); ok || url != "" {
				t.Fatalf("expected absent result, got %q", url)
			}
		})
	}
}
