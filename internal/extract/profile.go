package extract

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Profile controls where content is looked for and how it is filtered.
// The defaults target X.com; a YAML profile file can override any field,
// which keeps the selector set out of the extraction logic.
type Profile struct {
	// ContainerSelectors are candidate content containers, evaluated in
	// order. Among the candidates that exist on the page, the one with the
	// most visible text wins.
	ContainerSelectors []string `yaml:"container_selectors" validate:"min=1,dive,required"`

	// ArticleBodySelector locates the structured article body, used as the
	// source region for the sparse-text fallback pass.
	ArticleBodySelector string `yaml:"article_body_selector" validate:"required"`

	// PostTextSelector locates the primary post text, used for title
	// fallback and as a container anchor.
	PostTextSelector string `yaml:"post_text_selector" validate:"required"`

	// AuthorSelector locates the author name block.
	AuthorSelector string `yaml:"author_selector" validate:"required"`

	// StatsSelector locates like/reply/repost counters.
	StatsSelector string `yaml:"stats_selector" validate:"required"`

	// MediaHost is the media asset domain; images from anywhere else are
	// chrome (avatars, emoji, UI sprites).
	MediaHost string `yaml:"media_host" validate:"required"`

	// MinImageSize is the minimum rendered width and height in device
	// pixels; both must be exceeded.
	MinImageSize int `yaml:"min_image_size" validate:"gt=0"`

	// SparseThreshold is the structured-text length below which the
	// line-based fallback pass runs.
	SparseThreshold int `yaml:"sparse_threshold" validate:"gte=0"`

	// TitleMaxRunes caps the title derived from the post text.
	TitleMaxRunes int `yaml:"title_max_runes" validate:"gt=0"`
}

// DefaultProfile returns the X.com extraction profile.
func DefaultProfile() *Profile {
	return &Profile{
		ContainerSelectors: []string{
			`[data-testid="article-body"]`,
			`[data-testid="articleBody"]`,
			`article`,
			`article:has([data-testid="tweetText"])`,
			`main`,
		},
		ArticleBodySelector: `[data-testid="article-body"], [data-testid="articleBody"]`,
		PostTextSelector:    `[data-testid="tweetText"]`,
		AuthorSelector:      `[data-testid="User-Name"]`,
		StatsSelector:       `[role="group"] [data-testid*="count"]`,
		MediaHost:           "pbs.twimg.com",
		MinImageSize:        100,
		SparseThreshold:     400,
		TitleMaxRunes:       100,
	}
}

// ProfileFromFile loads a profile from a YAML file. Fields absent from the
// file keep their default values.
func ProfileFromFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads a user-specified profile
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile for usable values.
func (p *Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}
