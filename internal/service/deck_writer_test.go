package service

import (
	"errors"
	"testing"

	"deck-converter/internal/domain"
)

func TestWrite_EmptyOutline(t *testing.T) {
	writer := NewPPTXWriter(noopLogger{})

	if _, _, err := writer.Write(nil); !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument for nil outline, got %v", err)
	}
	if _, _, err := writer.Write(&domain.DeckOutline{}); !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument for empty outline, got %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	outline := &domain.DeckOutline{
		Slides: []domain.SlideOutline{
			{
				SlideIndex: 0,
				Shapes: []domain.ShapeOutline{
					{
						ShapeIndex: 0,
						Name:       "Title Box",
						Preset:     "rect",
						Text:       "Q3 Results\nRevenue up 12%",
						Geometry:   domain.Geometry{LeftEMU: 914400, TopEMU: 457200, WidthEMU: 7315200, HeightEMU: 1143000},
						Fill:       &domain.SolidFill{Color: "4472C4"},
						Line:       &domain.LineStyle{Color: "000000", WidthEMU: 12700},
						Font:       &domain.FontStyle{Name: "Arial", SizeHPt: 3200, Bold: true},
					},
				},
			},
			{
				SlideIndex: 1,
				Shapes: []domain.ShapeOutline{
					{ShapeIndex: 0, Name: "Callout", Preset: "roundRect", Text: "Thanks"},
				},
			},
		},
	}

	writer := NewPPTXWriter(noopLogger{})
	data, stats, err := writer.Write(outline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.SlideCount != 2 || stats.CopiedShapes != 2 || stats.SkippedShapes != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// The regenerated archive must be readable by our own parser.
	parser := NewPPTXParser(noopLogger{})
	parsed, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("failed to re-parse regenerated deck: %v", err)
	}
	if len(parsed.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(parsed.Slides))
	}

	shape := parsed.Slides[0].Shapes[0]
	if shape.Name != "Title Box" {
		t.Errorf("unexpected name: %q", shape.Name)
	}
	if shape.Preset != "rect" {
		t.Errorf("unexpected preset: %q", shape.Preset)
	}
	if shape.Text != "Q3 Results\nRevenue up 12%" {
		t.Errorf("text did not round-trip: %q", shape.Text)
	}
	if shape.Geometry != outline.Slides[0].Shapes[0].Geometry {
		t.Errorf("geometry did not round-trip: %+v", shape.Geometry)
	}
	if shape.Fill == nil || shape.Fill.Color != "4472C4" {
		t.Errorf("fill did not round-trip: %+v", shape.Fill)
	}
	if shape.Line == nil || shape.Line.Color != "000000" || shape.Line.WidthEMU != 12700 {
		t.Errorf("line did not round-trip: %+v", shape.Line)
	}
	if shape.Font == nil || shape.Font.Name != "Arial" || shape.Font.SizeHPt != 3200 || !shape.Font.Bold {
		t.Errorf("font did not round-trip: %+v", shape.Font)
	}
}

func TestWrite_SkipsShapesWithoutPreset(t *testing.T) {
	outline := &domain.DeckOutline{
		Slides: []domain.SlideOutline{
			{
				SlideIndex: 0,
				Shapes: []domain.ShapeOutline{
					{ShapeIndex: 0, Name: "Picture 1", Text: "ignored"},
					{ShapeIndex: 1, Name: "Box", Preset: "rect", Text: "kept"},
				},
			},
		},
	}

	writer := NewPPTXWriter(noopLogger{})
	data, stats, err := writer.Write(outline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CopiedShapes != 1 || stats.SkippedShapes != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	parser := NewPPTXParser(noopLogger{})
	parsed, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("failed to re-parse: %v", err)
	}
	if len(parsed.Slides[0].Shapes) != 1 || parsed.Slides[0].Shapes[0].Text != "kept" {
		t.Fatalf("unexpected shapes: %+v", parsed.Slides[0].Shapes)
	}
}

func TestWrite_EscapesMarkup(t *testing.T) {
	outline := &domain.DeckOutline{
		Slides: []domain.SlideOutline{
			{
				Shapes: []domain.ShapeOutline{
					{Name: `A <"B"> & 'C'`, Preset: "rect", Text: "x < y && y > z"},
				},
			},
		},
	}

	writer := NewPPTXWriter(noopLogger{})
	data, _, err := writer.Write(outline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parser := NewPPTXParser(noopLogger{})
	parsed, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("failed to re-parse: %v", err)
	}
	shape := parsed.Slides[0].Shapes[0]
	if shape.Name != `A <"B"> & 'C'` {
		t.Errorf("name did not survive escaping: %q", shape.Name)
	}
	if shape.Text != "x < y && y > z" {
		t.Errorf("text did not survive escaping: %q", shape.Text)
	}
}
