package scholar

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"text/template"
)

const (
	JSONFileName = "scholar_metrics.json"
	JSFileName   = "scholar_metrics.js"
)

//go:embed templates/scholar_metrics.js.tmpl
var jsTemplate string

var jsTmpl = template.Must(template.New("scholar_js").Parse(jsTemplate))

// WriteJSON writes the metrics record to path as indented JSON.
func WriteJSON(path string, m Metrics) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("scholar: marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("scholar: write %s: %w", path, err)
	}
	return nil
}

// RenderJS produces the page snippet that copies the formatted metric
// strings into the well-known element ids. Elements absent from the
// page are skipped; the updater runs on DOM readiness and once more
// after a short delay.
func RenderJS(m Metrics) ([]byte, error) {
	var buf bytes.Buffer
	if err := jsTmpl.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("scholar: render js: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJS renders the page snippet and writes it to path.
func WriteJS(path string, m Metrics) error {
	data, err := RenderJS(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scholar: write %s: %w", path, err)
	}
	return nil
}
