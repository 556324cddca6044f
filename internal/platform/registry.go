package platform

import (
	"sort"
	"strings"
)

// Registry holds all platforms offered for selection
type Registry struct {
	platforms map[string]*Platform
}

// defaultPlatforms contains the destinations the content service knows how to post to
var defaultPlatforms = []Platform{
	{
		Name:        "facebook",
		DisplayName: "Facebook",
		Description: "Page feed post, or photo post when an image is generated",
		Schedulable: true,
	},
	{
		Name:          "instagram",
		DisplayName:   "Instagram",
		Description:   "Business account media post (image required)",
		RequiresImage: true,
		Schedulable:   true,
	},
	{
		Name:        "linkedin",
		DisplayName: "LinkedIn",
		Description: "Company page share (text only); scheduling is not supported by the API",
		Schedulable: false,
	},
	{
		Name:        "twitter",
		DisplayName: "Twitter / X",
		Description: "Short post; scheduling is not supported by the API",
		Schedulable: false,
	},
}

// NewRegistry creates a new platform registry with the default platforms
func NewRegistry() *Registry {
	r := &Registry{
		platforms: make(map[string]*Platform),
	}
	for i := range defaultPlatforms {
		p := defaultPlatforms[i]
		r.platforms[p.Name] = &p
	}
	return r
}

// NewRegistryFor creates a registry restricted to the given names.
// Names without a built-in definition are registered as plain platforms.
func NewRegistryFor(names []string) *Registry {
	all := NewRegistry()
	r := &Registry{
		platforms: make(map[string]*Platform, len(names)),
	}
	for _, name := range names {
		name = Normalize(name)
		if name == "" {
			continue
		}
		if p, ok := all.Get(name); ok {
			r.platforms[name] = p
			continue
		}
		r.platforms[name] = &Platform{Name: name, Schedulable: true}
	}
	return r
}

// Normalize lower-cases and trims a platform name
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns a platform by name
func (r *Registry) Get(name string) (*Platform, bool) {
	p, ok := r.platforms[Normalize(name)]
	return p, ok
}

// Has reports whether the named platform is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// All returns all registered platforms
func (r *Registry) All() []*Platform {
	result := make([]*Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		result = append(result, p)
	}
	// Sort by name for consistent ordering
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns all platform names
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or updates a platform in the registry
func (r *Registry) Register(p *Platform) {
	p.Name = Normalize(p.Name)
	r.platforms[p.Name] = p
}

// RequiringImage returns the selected platforms that reject text-only posts
func (r *Registry) RequiringImage(selected []string) []*Platform {
	var result []*Platform
	for _, name := range selected {
		if p, ok := r.Get(name); ok && p.RequiresImage {
			result = append(result, p)
		}
	}
	return result
}

// Unschedulable returns the selected platforms that cannot take a scheduled post
func (r *Registry) Unschedulable(selected []string) []*Platform {
	var result []*Platform
	for _, name := range selected {
		if p, ok := r.Get(name); ok && !p.Schedulable {
			result = append(result, p)
		}
	}
	return result
}
