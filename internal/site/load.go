package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-slug"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultProfile []byte

// Default returns the embedded sample profile.
func Default() Profile {
	profile, err := Load(bytes.NewReader(defaultProfile))
	if err != nil {
		panic(fmt.Sprintf("site: embedded profile is invalid: %v", err))
	}
	return profile
}

// Load decodes a YAML profile, fills derived fields and validates it.
// Unknown keys are rejected.
func Load(r io.Reader) (Profile, error) {
	var profile Profile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&profile); err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, errors.New("site: profile is empty")
		}
		return Profile{}, fmt.Errorf("site: decode profile: %w", err)
	}
	if err := profile.Normalize(); err != nil {
		return Profile{}, err
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// LoadFile reads the profile at path. An empty path returns Default.
func LoadFile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("site: open profile: %w", err)
	}
	defer file.Close()
	return Load(file)
}

// Normalize derives missing project slugs from titles.
func (p *Profile) Normalize() error {
	for i := range p.Projects {
		project := &p.Projects[i]
		source := project.Slug
		if strings.TrimSpace(source) == "" {
			source = project.Title
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		normalized, err := slug.Normalize(source)
		if err != nil {
			return fmt.Errorf("site: project %d slug: %w", i, err)
		}
		project.Slug = normalized
	}
	return nil
}

// Validate checks the fields the page shell relies on.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Hero),
		validation.Field(&p.Contact),
		validation.Field(&p.Projects),
		validation.Field(&p.Skills),
	)
}

// Validate implements validation.Validatable.
func (h Hero) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Name, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (c Contact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, is.EmailFormat),
		validation.Field(&c.LinkedIn, is.URL),
		validation.Field(&c.GitHub, is.URL),
	)
}

// Validate implements validation.Validatable.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Slug, validation.By(func(value any) error {
			s, _ := value.(string)
			if s != "" && !slug.IsValid(s) {
				return validation.NewError("site.project.slug_invalid", "slug is not valid")
			}
			return nil
		})),
		validation.Field(&p.Features),
		validation.Field(&p.Benefits),
	)
}

// Validate implements validation.Validatable.
func (h Highlight) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Text, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (g SkillGroup) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Category, validation.Required),
	)
}
