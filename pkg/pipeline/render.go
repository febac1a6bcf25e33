package pipeline

import (
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/export"
)

// renderFormats dispatches each requested format to its renderer.
func renderFormats(ctx context.Context, p *export.Plan, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		data, err := renderFormat(ctx, p, format)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderFormat(ctx context.Context, p *export.Plan, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return export.RenderSVG(p)
	case FormatJSON:
		return export.MarshalPlan(p)
	case FormatDOT:
		return []byte(export.ToDOT(p)), nil
	case FormatPNG:
		return export.RenderDOT(ctx, export.ToDOT(p), graphviz.PNG)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
}
