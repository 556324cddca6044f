package platform

import (
	"testing"
)

func TestDefaultPlatformsExist(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{"facebook", "instagram", "linkedin", "twitter"} {
		p, ok := registry.Get(name)
		if !ok {
			t.Fatalf("expected %s platform to exist in registry", name)
		}
		if p.Name != name {
			t.Errorf("expected platform name to be '%s', got '%s'", name, p.Name)
		}
	}
}

func TestInstagramRequiresImage(t *testing.T) {
	registry := NewRegistry()
	ig, ok := registry.Get("instagram")
	if !ok {
		t.Fatal("expected instagram platform to exist")
	}

	if !ig.RequiresImage {
		t.Error("expected instagram to require an image")
	}
}

func TestGet_Normalizes(t *testing.T) {
	registry := NewRegistry()

	if _, ok := registry.Get("  LinkedIn "); !ok {
		t.Error("expected lookup to ignore case and surrounding spaces")
	}
}

func TestNames_Sorted(t *testing.T) {
	registry := NewRegistry()
	names := registry.Names()

	want := []string{"facebook", "instagram", "linkedin", "twitter"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d: %v", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewRegistryFor_RestrictsAndAddsCustom(t *testing.T) {
	registry := NewRegistryFor([]string{"LinkedIn", "mastodon", ""})

	if registry.Has("facebook") {
		t.Error("facebook should not be registered when not listed")
	}
	li, ok := registry.Get("linkedin")
	if !ok {
		t.Fatal("expected linkedin to be registered")
	}
	if li.DisplayName != "LinkedIn" {
		t.Errorf("expected built-in definition for linkedin, got %+v", li)
	}
	m, ok := registry.Get("mastodon")
	if !ok {
		t.Fatal("expected custom platform to be registered")
	}
	if m.Label() != "mastodon" {
		t.Errorf("Label() = %q, want %q", m.Label(), "mastodon")
	}
	if len(registry.Names()) != 2 {
		t.Errorf("expected 2 platforms, got %v", registry.Names())
	}
}

func TestRequiringImage(t *testing.T) {
	registry := NewRegistry()

	got := registry.RequiringImage([]string{"facebook", "instagram", "unknown"})
	if len(got) != 1 || got[0].Name != "instagram" {
		t.Errorf("RequiringImage = %v, want [instagram]", got)
	}
}

func TestUnschedulable(t *testing.T) {
	registry := NewRegistry()

	got := registry.Unschedulable([]string{"facebook", "twitter", "linkedin"})
	if len(got) != 2 || got[0].Name != "twitter" || got[1].Name != "linkedin" {
		t.Errorf("Unschedulable = %v, want [twitter linkedin]", got)
	}
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&Platform{Name: "Threads", Schedulable: true})

	if !registry.Has("threads") {
		t.Error("expected registered platform to be found by normalized name")
	}
}
