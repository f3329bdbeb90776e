package menu

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/cardmenu/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed copy.yaml
var defaultCopy []byte

// Item is one entry of the root menu.
type Item struct {
	Label string      `yaml:"label"`
	Mode  domain.Mode `yaml:"mode"`
}

// Copy holds the user-facing text of the menu.
type Copy struct {
	Title string   `yaml:"title"`
	Items []Item   `yaml:"items"`
	Rules []string `yaml:"rules"`
}

// DefaultCopy returns the embedded copy.
func DefaultCopy() Copy {
	c, err := ParseCopy(defaultCopy)
	if err != nil {
		panic(fmt.Sprintf("menu: embedded copy is invalid: %v", err))
	}
	return c
}

// ParseCopy decodes YAML copy and checks it can drive a menu.
func ParseCopy(data []byte) (Copy, error) {
	var c Copy
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Copy{}, fmt.Errorf("failed to parse menu copy: %w", err)
	}
	if err := c.validate(); err != nil {
		return Copy{}, err
	}
	return c, nil
}

// ReadCopy decodes copy from r.
func ReadCopy(r io.Reader) (Copy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Copy{}, fmt.Errorf("failed to read menu copy: %w", err)
	}
	return ParseCopy(data)
}

// LoadCopy reads copy from path. An empty path returns DefaultCopy.
func LoadCopy(path string) (Copy, error) {
	if path == "" {
		return DefaultCopy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Copy{}, fmt.Errorf("failed to open menu copy: %w", err)
	}
	defer f.Close()
	return ReadCopy(f)
}

func (c Copy) validate() error {
	if len(c.Items) == 0 {
		return &domain.ConfigError{Mode: RootMenu, Reason: "menu copy has no items"}
	}
	for _, item := range c.Items {
		if item.Mode != Playing && item.Mode != Rules {
			return &domain.ConfigError{
				Mode:   RootMenu,
				Name:   item.Label,
				Reason: fmt.Sprintf("menu item leads to unknown mode %q", item.Mode),
			}
		}
	}
	if len(c.Rules) == 0 {
		return &domain.ConfigError{Mode: Rules, Reason: "menu copy has no rules pages"}
	}
	return nil
}
