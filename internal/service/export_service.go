package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"smartinvoice/internal/layout"
	"smartinvoice/internal/model"
	"smartinvoice/internal/render"
	"smartinvoice/internal/repository"
)

// --- DTOs ---

type PreviewResponse struct {
	View  layout.View      `json:"view"`
	Print render.Printable `json:"print"`
}

// ExportResult is a downloadable file. Fallback is set when the PDF renderer failed and Body
// holds the HTML print page instead.
type ExportResult struct {
	Body        []byte
	ContentType string
	Filename    string
	Fallback    bool
}

// --- Interface ---

type ExportService interface {
	Preview(inv model.Invoice, locale string) (PreviewResponse, error)
	PDF(ctx context.Context, inv model.Invoice, locale string) (ExportResult, error)
	HistoryWorkbook(ctx context.Context, locale string) (ExportResult, error)
}

type exportService struct {
	store    repository.InvoiceStore
	capacity layout.Capacity
	pdf      render.Renderer
	fallback render.Renderer
	now      func() time.Time
}

func NewExportService(store repository.InvoiceStore, capacity layout.Capacity, pdf, fallback render.Renderer) ExportService {
	return &exportService{store: store, capacity: capacity, pdf: pdf, fallback: fallback, now: time.Now}
}

// --- Implementation ---

func (s *exportService) Preview(inv model.Invoice, locale string) (PreviewResponse, error) {
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return PreviewResponse{}, err
	}
	view := layout.Build(inv, s.capacity)
	return PreviewResponse{View: view, Print: render.Prepare(view, locale)}, nil
}

func (s *exportService) PDF(ctx context.Context, inv model.Invoice, locale string) (ExportResult, error) {
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return ExportResult{}, err
	}
	view := layout.Build(inv, s.capacity)
	base := fileBase(inv.InvoiceNumber, "invoice")

	body, err := s.pdf.Render(view, locale)
	if err == nil {
		return ExportResult{Body: body, ContentType: s.pdf.ContentType(), Filename: base + ".pdf"}, nil
	}
	log.Printf("PDF export failed for %s, falling back to print view: %v", inv.ID, err)

	body, err = s.fallback.Render(view, locale)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to render print view: %w", err)
	}
	return ExportResult{Body: body, ContentType: s.fallback.ContentType(), Filename: base + ".html", Fallback: true}, nil
}

func (s *exportService) HistoryWorkbook(ctx context.Context, locale string) (ExportResult, error) {
	history, err := s.store.History(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	body, err := render.HistoryWorkbook(history, locale)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{
		Body:        body,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    fmt.Sprintf("invoices_%s.xlsx", s.now().Format("20060102")),
	}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func fileBase(name, fallback string) string {
	name = unsafeFileChars.ReplaceAllString(name, "_")
	if name == "" || name == "_" {
		return fallback
	}
	return name
}
