package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"deck-converter/internal/domain"
)

// PPTXParser reads presentation archives without any native toolchain:
// a .pptx is a zip whose slides live under ppt/slides/slideN.xml.
// The parser extracts per-shape text plus the style attributes the
// regenerator copies (geometry, solid fill, line, first-run font).
type PPTXParser struct {
	logger domain.Logger
}

// NewPPTXParser creates a new parser.
func NewPPTXParser(logger domain.Logger) *PPTXParser {
	return &PPTXParser{logger: logger}
}

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Parse reads the deck into a structured outline. Slide order follows
// the numeric index in the part name, not zip entry order.
func (p *PPTXParser) Parse(data []byte) (*domain.DeckOutline, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open deck archive: %w", err)
	}

	type slidePart struct {
		number int
		file   *zip.File
	}
	var parts []slidePart
	for _, file := range reader.File {
		m := slidePartPattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{number: n, file: file})
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: archive contains no slides", domain.ErrInvalidFile)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].number < parts[j].number })

	outline := &domain.DeckOutline{Slides: make([]domain.SlideOutline, 0, len(parts))}
	for idx, part := range parts {
		slide, err := p.parseSlide(part.file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse slide %d: %w", part.number, err)
		}
		slide.SlideIndex = idx
		outline.Slides = append(outline.Slides, *slide)
	}

	return outline, nil
}

func (p *PPTXParser) parseSlide(file *zip.File) (*domain.SlideOutline, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	var slideXML xmlSlide
	if err := xml.Unmarshal(raw, &slideXML); err != nil {
		return nil, err
	}

	slide := &domain.SlideOutline{Shapes: make([]domain.ShapeOutline, 0, len(slideXML.CSld.SpTree.Shapes))}
	for i, sp := range slideXML.CSld.SpTree.Shapes {
		slide.Shapes = append(slide.Shapes, shapeFromXML(i, sp))
	}
	return slide, nil
}

func shapeFromXML(index int, sp xmlShape) domain.ShapeOutline {
	shape := domain.ShapeOutline{
		ShapeIndex: index,
		Name:       sp.NvSpPr.CNvPr.Name,
	}

	if sp.SpPr.PrstGeom != nil {
		shape.Preset = sp.SpPr.PrstGeom.Prst
	}
	if xfrm := sp.SpPr.Xfrm; xfrm != nil {
		shape.Geometry = domain.Geometry{
			LeftEMU:   xfrm.Off.X,
			TopEMU:    xfrm.Off.Y,
			WidthEMU:  xfrm.Ext.Cx,
			HeightEMU: xfrm.Ext.Cy,
		}
	}
	if color, ok := sp.SpPr.SolidFill.color(); ok {
		shape.Fill = &domain.SolidFill{Color: color}
	}
	if ln := sp.SpPr.Ln; ln != nil {
		if color, ok := ln.SolidFill.color(); ok {
			shape.Line = &domain.LineStyle{Color: color, WidthEMU: ln.W}
		}
	}

	if sp.TxBody != nil {
		shape.Text = sp.TxBody.text()
		shape.Font = sp.TxBody.firstRunFont()
	}
	return shape
}

// text joins every run of every paragraph; paragraphs after the first
// are separated with newlines.
func (b *xmlTextBody) text() string {
	var sb strings.Builder
	for i, para := range b.Paragraphs {
		if i > 0 && sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		for _, run := range para.Runs {
			sb.WriteString(run.T)
		}
	}
	return strings.TrimSpace(sb.String())
}

// firstRunFont mirrors the style copy of the original front-end: only
// the first paragraph's first run is inspected.
func (b *xmlTextBody) firstRunFont() *domain.FontStyle {
	for _, para := range b.Paragraphs {
		for _, run := range para.Runs {
			if run.RPr == nil {
				return nil
			}
			font := &domain.FontStyle{
				SizeHPt: run.RPr.Sz,
				Bold:    xmlBool(run.RPr.B),
				Italic:  xmlBool(run.RPr.I),
			}
			if run.RPr.Latin != nil {
				font.Name = run.RPr.Latin.Typeface
			}
			if color, ok := run.RPr.SolidFill.color(); ok {
				font.Color = color
			}
			if font.Name == "" && font.SizeHPt == 0 && !font.Bold && !font.Italic && font.Color == "" {
				return nil
			}
			return font
		}
		break
	}
	return nil
}

func xmlBool(v string) bool {
	return v == "1" || v == "true"
}

// XML mapping. Tags use local names only so the parser is agnostic to
// the namespace prefixes a producer chose.

type xmlSlide struct {
	XMLName xml.Name `xml:"sld"`
	CSld    struct {
		SpTree xmlSpTree `xml:"spTree"`
	} `xml:"cSld"`
}

type xmlSpTree struct {
	Shapes []xmlShape `xml:"sp"`
}

type xmlShape struct {
	NvSpPr struct {
		CNvPr struct {
			Name string `xml:"name,attr"`
		} `xml:"cNvPr"`
	} `xml:"nvSpPr"`
	SpPr   xmlShapeProps `xml:"spPr"`
	TxBody *xmlTextBody  `xml:"txBody"`
}

type xmlShapeProps struct {
	Xfrm *struct {
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"off"`
		Ext struct {
			Cx int64 `xml:"cx,attr"`
			Cy int64 `xml:"cy,attr"`
		} `xml:"ext"`
	} `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
	} `xml:"prstGeom"`
	SolidFill *xmlSolidFill `xml:"solidFill"`
	Ln        *struct {
		W         int64         `xml:"w,attr"`
		SolidFill *xmlSolidFill `xml:"solidFill"`
	} `xml:"ln"`
}

type xmlSolidFill struct {
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
}

func (f *xmlSolidFill) color() (domain.RGBColor, bool) {
	if f == nil || f.SrgbClr == nil || f.SrgbClr.Val == "" {
		return "", false
	}
	return domain.RGBColor(strings.ToUpper(f.SrgbClr.Val)), true
}

type xmlTextBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlParagraph struct {
	Runs []xmlRun `xml:"r"`
}

type xmlRun struct {
	RPr *xmlRunProps `xml:"rPr"`
	T   string       `xml:"t"`
}

type xmlRunProps struct {
	Sz        int           `xml:"sz,attr"`
	B         string        `xml:"b,attr"`
	I         string        `xml:"i,attr"`
	SolidFill *xmlSolidFill `xml:"solidFill"`
	Latin     *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"latin"`
}
