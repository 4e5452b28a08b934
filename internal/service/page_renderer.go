package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"deck-converter/internal/domain"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"
)

// FitzRenderer rasterizes PDF pages and extracts their text with MuPDF.
// A fitz.Document is not safe for concurrent use, so pages are pulled
// from the document sequentially; PNG encoding fans out to a bounded
// worker group.
type FitzRenderer struct {
	logger      domain.Logger
	workers     int
	pageTimeout time.Duration
}

// NewFitzRenderer creates a new renderer. workers bounds concurrent PNG
// encoding; pageTimeout bounds the time spent on a single page.
func NewFitzRenderer(logger domain.Logger, workers int, pageTimeout time.Duration) *FitzRenderer {
	if workers < 1 {
		workers = 1
	}
	if pageTimeout <= 0 {
		pageTimeout = 90 * time.Second
	}
	return &FitzRenderer{
		logger:      logger,
		workers:     workers,
		pageTimeout: pageTimeout,
	}
}

type rawPage struct {
	index int
	text  string
	img   image.Image
}

// RenderPages extracts every page of the document as text plus a PNG
// rendering. A page that fails or times out degrades to an empty
// artifact instead of failing the document.
func (r *FitzRenderer) RenderPages(ctx context.Context, pdfBytes []byte) ([]domain.PageArtifact, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages == 0 {
		return nil, domain.ErrEmptyDocument
	}

	raw := make([]rawPage, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("Rendering page", "page", pageNum+1, "total", numPages)
		raw[pageNum] = r.extractPage(doc, pageNum)
	}

	// Encode PNGs in parallel; encoding is pure CPU on copied pixels.
	artifacts := make([]domain.PageArtifact, numPages)
	sem := make(chan struct{}, r.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range raw {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			artifacts[i] = domain.PageArtifact{
				PageIndex: raw[i].index,
				Text:      strings.TrimSpace(raw[i].text),
			}
			if raw[i].img == nil {
				return nil
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, raw[i].img); err != nil {
				r.logger.Warn("Failed to encode page image", "page", i+1, "error", err)
				return nil
			}
			artifacts[i].PNG = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// extractPage pulls text and pixels for one page, guarded by the page
// timeout. On timeout the page is left empty and the stuck goroutine is
// drained in the background.
func (r *FitzRenderer) extractPage(doc *fitz.Document, pageNum int) rawPage {
	type pageResult struct {
		text string
		img  image.Image
		err  error
	}
	resultCh := make(chan pageResult, 1)
	go func(idx int) {
		text, terr := doc.Text(idx)
		if terr != nil {
			resultCh <- pageResult{err: terr}
			return
		}
		img, ierr := doc.Image(idx)
		if ierr != nil {
			resultCh <- pageResult{text: text, err: ierr}
			return
		}
		resultCh <- pageResult{text: text, img: img}
	}(pageNum)

	select {
	case res := <-resultCh:
		if res.err != nil {
			r.logger.Warn("Failed to extract page; using empty artifact", "page", pageNum+1, "error", res.err)
		}
		return rawPage{index: pageNum, text: res.text, img: res.img}
	case <-time.After(r.pageTimeout):
		r.logger.Warn("Page extraction timeout; using empty artifact",
			"page", pageNum+1, "timeout_sec", int(r.pageTimeout.Seconds()))
		go func() { <-resultCh }() // drain so goroutine can exit
		return rawPage{index: pageNum}
	}
}
