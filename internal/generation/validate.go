package generation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vscj1234/content-agent-langgraph/internal/platform"
)

// Validator checks generate requests before they are sent
type Validator struct {
	validate *validator.Validate
	known    map[string]bool
}

// NewValidator creates a validator accepting the given platform names.
// An empty list accepts any non-empty platform name.
func NewValidator(platforms []string) *Validator {
	v := &Validator{
		validate: validator.New(),
		known:    make(map[string]bool, len(platforms)),
	}
	for _, p := range platforms {
		v.known[platform.Normalize(p)] = true
	}
	_ = v.validate.RegisterValidation("platform", v.isKnownPlatform)
	return v
}

func (v *Validator) isKnownPlatform(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}
	if len(v.known) == 0 {
		return true
	}
	return v.known[name]
}

// Normalize trims the topic and lower-cases, trims and de-duplicates platforms in place
func Normalize(req *Request) {
	req.Topic = strings.TrimSpace(req.Topic)

	seen := make(map[string]bool, len(req.Platforms))
	platforms := make([]string, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		p = platform.Normalize(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	req.Platforms = platforms

	if req.ScheduleTime != nil {
		t := strings.TrimSpace(*req.ScheduleTime)
		req.ScheduleTime = &t
	}
}

// Validate normalizes req and reports the first violated rule as a *ValidationError.
// The topic is checked before the platforms.
func (v *Validator) Validate(req *Request) error {
	Normalize(req)

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating request: %w", err)
	}

	var platformErr *ValidationError
	for _, fe := range verrs {
		switch {
		case fe.Field() == "Topic":
			return &ValidationError{
				Kind:    KindMissingTopic,
				Field:   "topic",
				Message: "Please enter a topic for your content.",
			}
		case fe.Tag() == "platform":
			if platformErr == nil {
				platformErr = &ValidationError{
					Kind:    KindInvalidPlatform,
					Field:   "platforms",
					Message: fmt.Sprintf("Unknown platform %q.", fe.Value()),
				}
			}
		case strings.HasPrefix(fe.Field(), "Platforms"):
			if platformErr == nil || platformErr.Kind != KindMissingPlatform {
				platformErr = &ValidationError{
					Kind:    KindMissingPlatform,
					Field:   "platforms",
					Message: "Please select at least one platform.",
				}
			}
		}
	}
	if platformErr != nil {
		return platformErr
	}
	return fmt.Errorf("validating request: %w", err)
}
