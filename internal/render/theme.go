package render

import "fmt"

// A Theme is a fixed named palette. The Ramp holds the five intensity
// colors, index 0 for days with no contributions.
type Theme struct {
	Name       string
	Background string
	Border     string
	Text       string
	Subtext    string
	Accent     string
	Ramp       [5]string
}

func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Border:     "#d0d7de",
		Text:       "#24292f",
		Subtext:    "#57606a",
		Accent:     "#0969da",
		Ramp:       [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	}
}

func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#0d1117",
		Border:     "#30363d",
		Text:       "#e6edf3",
		Subtext:    "#8b949e",
		Accent:     "#58a6ff",
		Ramp:       [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
	}
}

// An Override replaces individual theme colors; empty fields keep the
// built-in value. Loaded from the optional YAML config file.
type Override struct {
	Background string   `koanf:"background" yaml:"background"`
	Border     string   `koanf:"border" yaml:"border"`
	Text       string   `koanf:"text" yaml:"text"`
	Subtext    string   `koanf:"subtext" yaml:"subtext"`
	Accent     string   `koanf:"accent" yaml:"accent"`
	Ramp       []string `koanf:"ramp" yaml:"ramp"`
}

// Merge applies o on top of t. A non-empty Ramp must carry exactly five
// colors.
func (t Theme) Merge(o Override) (Theme, error) {
	if o.Background != "" {
		t.Background = o.Background
	}
	if o.Border != "" {
		t.Border = o.Border
	}
	if o.Text != "" {
		t.Text = o.Text
	}
	if o.Subtext != "" {
		t.Subtext = o.Subtext
	}
	if o.Accent != "" {
		t.Accent = o.Accent
	}
	if len(o.Ramp) > 0 {
		if len(o.Ramp) != len(t.Ramp) {
			return Theme{}, fmt.Errorf("theme %s: ramp has %d colors, want %d", t.Name, len(o.Ramp), len(t.Ramp))
		}
		copy(t.Ramp[:], o.Ramp)
	}
	return t, nil
}
