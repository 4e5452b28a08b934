package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"deck-converter/internal/domain"
)

// PPTXWriter rebuilds a simplified deck from a parsed outline: one
// blank-layout slide per source slide, copying autoshape geometry,
// solid fill, line style, text and the first-run font. Shapes without
// a preset geometry (pictures, tables, placeholders) are skipped and
// counted in the stats.
type PPTXWriter struct {
	logger domain.Logger
}

// NewPPTXWriter creates a new writer.
func NewPPTXWriter(logger domain.Logger) *PPTXWriter {
	return &PPTXWriter{logger: logger}
}

// Write serializes the outline into a .pptx archive.
func (w *PPTXWriter) Write(outline *domain.DeckOutline) ([]byte, *domain.RegenerateStats, error) {
	if outline == nil || len(outline.Slides) == 0 {
		return nil, nil, domain.ErrEmptyDocument
	}

	stats := &domain.RegenerateStats{SlideCount: len(outline.Slides)}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml":                          contentTypesXML(len(outline.Slides)),
		"_rels/.rels":                                  rootRelsXML,
		"ppt/presentation.xml":                         presentationXML(len(outline.Slides)),
		"ppt/_rels/presentation.xml.rels":              presentationRelsXML(len(outline.Slides)),
		"ppt/slideMasters/slideMaster1.xml":            slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":            slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                         themeXML,
	}
	for i, slide := range outline.Slides {
		n := i + 1
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = w.slideXML(slide, stats)
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = slideRelsXML
	}

	for name, content := range parts {
		entry, err := archive.Create(name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			return nil, nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), stats, nil
}

func (w *PPTXWriter) slideXML(slide domain.SlideOutline, stats *domain.RegenerateStats) string {
	var shapes strings.Builder
	shapeID := 2 // id 1 is the group shape
	for _, shape := range slide.Shapes {
		if shape.Preset == "" {
			stats.SkippedShapes++
			w.logger.Debug("Skipping non-autoshape",
				"slide", slide.SlideIndex, "shape", shape.ShapeIndex, "name", shape.Name)
			continue
		}
		shapes.WriteString(shapeXML(shapeID, shape))
		shapeID++
		stats.CopiedShapes++
	}

	return xmlHeader + `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		shapes.String() +
		`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`
}

func shapeXML(id int, shape domain.ShapeOutline) string {
	var sb strings.Builder

	name := shape.Name
	if name == "" {
		name = fmt.Sprintf("Shape %d", id)
	}

	sb.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="`)
	fmt.Fprintf(&sb, "%d", id)
	sb.WriteString(`" name="`)
	sb.WriteString(escapeXML(name))
	sb.WriteString(`"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`)

	fmt.Fprintf(&sb, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		shape.Geometry.LeftEMU, shape.Geometry.TopEMU, shape.Geometry.WidthEMU, shape.Geometry.HeightEMU)
	fmt.Fprintf(&sb, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, escapeXML(shape.Preset))

	if shape.Fill != nil {
		fmt.Fprintf(&sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escapeXML(string(shape.Fill.Color)))
	}
	if shape.Line != nil && shape.Line.Color != "" {
		if shape.Line.WidthEMU > 0 {
			fmt.Fprintf(&sb, `<a:ln w="%d">`, shape.Line.WidthEMU)
		} else {
			sb.WriteString(`<a:ln>`)
		}
		fmt.Fprintf(&sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, escapeXML(string(shape.Line.Color)))
	}

	sb.WriteString(`</p:spPr><p:txBody><a:bodyPr/><a:lstStyle/>`)
	writeTextParagraphs(&sb, shape)
	sb.WriteString(`</p:txBody></p:sp>`)

	return sb.String()
}

// writeTextParagraphs emits one a:p per text line. The first-run font
// captured by the parser is applied to every run; finer-grained run
// styling was not copied by the original either.
func writeTextParagraphs(sb *strings.Builder, shape domain.ShapeOutline) {
	lines := strings.Split(shape.Text, "\n")
	if shape.Text == "" {
		lines = nil
	}
	if len(lines) == 0 {
		sb.WriteString(`<a:p/>`)
		return
	}
	for _, line := range lines {
		sb.WriteString(`<a:p><a:r>`)
		sb.WriteString(runPropsXML(shape.Font))
		sb.WriteString(`<a:t>`)
		sb.WriteString(escapeXML(line))
		sb.WriteString(`</a:t></a:r></a:p>`)
	}
}

func runPropsXML(font *domain.FontStyle) string {
	var sb strings.Builder
	sb.WriteString(`<a:rPr lang="en-US"`)
	if font != nil {
		if font.SizeHPt > 0 {
			fmt.Fprintf(&sb, ` sz="%d"`, font.SizeHPt)
		}
		if font.Bold {
			sb.WriteString(` b="1"`)
		}
		if font.Italic {
			sb.WriteString(` i="1"`)
		}
	}
	if font == nil || (font.Color == "" && font.Name == "") {
		sb.WriteString(`/>`)
		return sb.String()
	}
	sb.WriteString(`>`)
	if font.Color != "" {
		fmt.Fprintf(&sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escapeXML(string(font.Color)))
	}
	if font.Name != "" {
		fmt.Fprintf(&sb, `<a:latin typeface="%s"/>`, escapeXML(font.Name))
	}
	sb.WriteString(`</a:rPr>`)
	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

func contentTypesXML(slideCount int) string {
	var overrides strings.Builder
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&overrides,
			`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	return xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
		`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>` +
		`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
		`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
		overrides.String() +
		`</Types>`
}

const rootRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`

func presentationXML(slideCount int) string {
	var slideIDs strings.Builder
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&slideIDs, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	return xmlHeader + `<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldIdLst>` + slideIDs.String() + `</p:sldIdLst>` +
		`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>` +
		`</p:presentation>`
}

func presentationRelsXML(slideCount int) string {
	var rels strings.Builder
	rels.WriteString(xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	rels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i)
	}
	rels.WriteString(`</Relationships>`)
	return rels.String()
}

const slideMasterXML = xmlHeader + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const slideMasterRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const slideLayoutXML = xmlHeader + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank"><p:cSld name="Blank"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

const slideRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/></Relationships>`

const themeXML = xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2><a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
