package domain

import "time"

// RGBColor is a solid sRGB color as it appears in presentation XML
// ("FF0000" style hex, no leading '#').
type RGBColor string

// Geometry holds shape placement in EMUs (914400 per inch), the native
// unit of OOXML drawings.
type Geometry struct {
	LeftEMU   int64 `json:"left_emu"`
	TopEMU    int64 `json:"top_emu"`
	WidthEMU  int64 `json:"width_emu"`
	HeightEMU int64 `json:"height_emu"`
}

// SolidFill is a solid shape fill. Gradient and picture fills are not
// carried over; the regenerator only copies solid fills.
type SolidFill struct {
	Color RGBColor `json:"color"`
}

// LineStyle is a shape outline: solid color plus width.
type LineStyle struct {
	Color    RGBColor `json:"color,omitempty"`
	WidthEMU int64    `json:"width_emu,omitempty"`
}

// FontStyle captures the first-run font of a shape's text frame.
type FontStyle struct {
	Name    string   `json:"name,omitempty"`
	SizeHPt int      `json:"size_hpt,omitempty"` // hundredths of a point, as stored in the XML
	Bold    bool     `json:"bold,omitempty"`
	Italic  bool     `json:"italic,omitempty"`
	Color   RGBColor `json:"color,omitempty"`
}

// ShapeOutline is one shape on a slide as the parser sees it.
type ShapeOutline struct {
	ShapeIndex int        `json:"shape_idx"`
	Name       string     `json:"name,omitempty"`
	Preset     string     `json:"preset,omitempty"` // autoshape preset geometry, e.g. "rect"
	Text       string     `json:"text"`
	Geometry   Geometry   `json:"geometry"`
	Fill       *SolidFill `json:"fill,omitempty"`
	Line       *LineStyle `json:"line,omitempty"`
	Font       *FontStyle `json:"font,omitempty"`
}

// SlideOutline is the parsed content of a single slide.
type SlideOutline struct {
	SlideIndex int            `json:"slide_index"`
	Shapes     []ShapeOutline `json:"elements"`
}

// DeckOutline is the structured preview of a presentation.
type DeckOutline struct {
	Slides []SlideOutline `json:"slides"`
}

// SlideTexts flattens the outline into one joined text per slide,
// preserving slide order.
func (d *DeckOutline) SlideTexts() []string {
	texts := make([]string, len(d.Slides))
	for i, slide := range d.Slides {
		var joined string
		for _, shape := range slide.Shapes {
			if shape.Text == "" {
				continue
			}
			if joined != "" {
				joined += " "
			}
			joined += shape.Text
		}
		texts[i] = joined
	}
	return texts
}

// Deck is an uploaded presentation held by the studio.
type Deck struct {
	ID           string       `json:"id"`
	OriginalName string       `json:"original_name"`
	Kind         DocumentKind `json:"kind"`
	Data         []byte       `json:"-"`
	Outline      *DeckOutline `json:"-"`
	UploadedAt   time.Time    `json:"uploaded_at"`
}

// RegenerateStats summarizes a hybrid regeneration run.
type RegenerateStats struct {
	SlideCount    int `json:"slide_count"`
	CopiedShapes  int `json:"copied_shapes"`
	SkippedShapes int `json:"skipped_shapes"`
}
