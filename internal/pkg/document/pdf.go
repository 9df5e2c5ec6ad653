package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is page-addressable content of one opened file. Pages are 1-based.
type Document interface {
	PageCount() int
	PageBytes(pageNum int) ([]byte, error)
	MIMEType() string
	Close() error
}

// PageSource resolves a stored document reference to page-addressable content.
// Failures here are session-fatal: a document that cannot be opened aborts the
// whole extraction session.
type PageSource interface {
	Open(ctx context.Context, fileName string) (Document, error)
}

type pdfSource struct {
	rootDir string
}

func NewPDFSource(rootDir string) PageSource {
	return &pdfSource{rootDir: rootDir}
}

type pdfDocument struct {
	workDir   string
	baseName  string
	pageCount int
}

func (s *pdfSource) Open(_ context.Context, fileName string) (Document, error) {
	fileName = filepath.Base(fileName)
	if fileName == "" || fileName == "." {
		return nil, fmt.Errorf("invalid document name")
	}
	source := filepath.Join(s.rootDir, fileName)
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("document %s not found: %w", fileName, err)
	}

	workDir, err := os.MkdirTemp("", "soalgen-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	optimized := filepath.Join(workDir, base+".pdf")

	// Optimize first; pdfcpu chokes on some malformed scans otherwise.
	if err := api.OptimizeFile(source, optimized, nil); err != nil {
		os.RemoveAll(workDir)
		return nil, fmt.Errorf("failed to optimize pdf: %w", err)
	}

	pageCount, err := api.PageCountFile(optimized)
	if err != nil {
		os.RemoveAll(workDir)
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	// Split into single-page files named <base>_<page>.pdf.
	if err := api.SplitFile(optimized, workDir, 1, nil); err != nil {
		os.RemoveAll(workDir)
		return nil, fmt.Errorf("failed to split pdf: %w", err)
	}

	return &pdfDocument{
		workDir:   workDir,
		baseName:  base,
		pageCount: pageCount,
	}, nil
}

func (d *pdfDocument) PageCount() int {
	return d.pageCount
}

func (d *pdfDocument) PageBytes(pageNum int) ([]byte, error) {
	if pageNum < 1 || pageNum > d.pageCount {
		return nil, fmt.Errorf("page %d out of range (1-%d)", pageNum, d.pageCount)
	}
	path := filepath.Join(d.workDir, fmt.Sprintf("%s_%d.pdf", d.baseName, pageNum))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
	}
	return data, nil
}

func (d *pdfDocument) MIMEType() string {
	return "application/pdf"
}

func (d *pdfDocument) Close() error {
	return os.RemoveAll(d.workDir)
}
