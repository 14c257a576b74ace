package source

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the successive frames that are compared pairwise
type Source interface {
	FrameCount() int
	Dimensions(index int) (width, height int, err error)
	RenderFrame(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks a PDF source for .pdf paths and an image source otherwise
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// FitzPDFSource treats every PDF page as one frame
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) FrameCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) Dimensions(index int) (int, int, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return rect.Dx(), rect.Dy(), nil
}

// RenderFrame opens its own document handle so pages can render in parallel
func (f *FitzPDFSource) RenderFrame(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
