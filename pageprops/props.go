package pageprops

import (
	"fmt"

	"github.com/iridum-cli/iridum/source"
)

// Props is the decoded page payload, {"props": {...}, ...}.
type Props map[string]any

// Section returns the props object where titles, sliders and seasons live.
func (p Props) Section() (map[string]any, error) {
	section, ok := p["props"].(map[string]any)
	if !ok {
		return nil, &source.ParseError{Stage: "props", Cause: fmt.Errorf("missing props object")}
	}
	return section, nil
}
