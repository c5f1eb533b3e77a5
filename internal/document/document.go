// Package document provides the PDF boundary: page counting, per-page text
// extraction, and per-page raster rendering.
package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ledongthuc/pdf"
)

// Document is an immutable PDF byte buffer with lazily derived per-page
// accessors. The page count is computed once per document and never changes.
type Document struct {
	data []byte

	countOnce sync.Once
	pageCount int
}

// New wraps raw PDF bytes. Nothing is parsed until a page accessor is used.
func New(data []byte) *Document {
	return &Document{data: data}
}

// PageCount returns the number of pages, falling back to a single-page
// assumption when the buffer cannot be parsed.
func (d *Document) PageCount() int {
	d.countOnce.Do(func() {
		d.pageCount = 1
		// The pdf parser panics on some malformed files.
		defer func() { _ = recover() }()
		reader, err := pdf.NewReader(bytes.NewReader(d.data), int64(len(d.data)))
		if err != nil {
			return
		}
		if n := reader.NumPage(); n > 0 {
			d.pageCount = n
		}
	})
	return d.pageCount
}

// PageText returns the extracted text of the 0-based page, or the empty
// string when the page is out of range or has no extractable text layer.
func (d *Document) PageText(pageIndex int) string {
	if pageIndex < 0 || pageIndex >= d.PageCount() {
		return ""
	}
	text, err := d.extractText(pageIndex)
	if err != nil {
		return ""
	}
	return text
}

func (d *Document) extractText(pageIndex int) (text string, err error) {
	// The pdf parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract text from page %d: %v", pageIndex+1, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(d.data), int64(len(d.data)))
	if err != nil {
		return "", fmt.Errorf("open pdf for text extraction: %w", err)
	}
	page := reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// PageImage renders the 0-based page to PNG and returns it as a base64 data
// URI. Rendering uses Ghostscript for proper PDF rasterization.
func (d *Document) PageImage(pageIndex int) (string, error) {
	if pageIndex < 0 || pageIndex >= d.PageCount() {
		return "", fmt.Errorf("page index %d out of range [0,%d)", pageIndex, d.PageCount())
	}

	tempDir, err := os.MkdirTemp("", "pdf-render-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inputPath := filepath.Join(tempDir, "input.pdf")
	if err := os.WriteFile(inputPath, d.data, 0o600); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	// -dNOPAUSE -dBATCH: non-interactive mode
	// -sDEVICE=png16m: 24-bit color PNG
	// -r150: 150 DPI resolution (good balance between quality and size)
	outputPath := filepath.Join(tempDir, "page.png")
	pageNum := strconv.Itoa(pageIndex + 1) // Ghostscript numbers pages from 1
	cmd := exec.Command("gs",
		"-dQUIET",
		"-dSAFER",
		"-dNOPAUSE",
		"-dBATCH",
		"-sDEVICE=png16m",
		"-r150",
		"-dFirstPage="+pageNum,
		"-dLastPage="+pageNum,
		fmt.Sprintf("-sOutputFile=%s", outputPath),
		inputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ghostscript render failed: %w, stderr: %s", err, stderr.String())
	}

	imageData, err := os.ReadFile(outputPath)
	if err != nil {
		return "", fmt.Errorf("read rendered page %d: %w", pageIndex+1, err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageData), nil
}
