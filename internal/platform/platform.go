// Package platform provides the destinations generated content can be posted to
package platform

// Platform is a target destination the user selects for generated content
type Platform struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`

	// RequiresImage is set for destinations that reject text-only posts
	RequiresImage bool `json:"requires_image"`

	// Schedulable is false when the destination API has no scheduled publishing
	Schedulable bool `json:"schedulable"`
}

// Label returns the human-facing name, falling back to Name
func (p *Platform) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}
