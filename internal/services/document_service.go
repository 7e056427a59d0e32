package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"

	"paydocs-backend/internal/cache"
	"paydocs-backend/internal/email"
	"paydocs-backend/internal/metrics"
	"paydocs-backend/internal/models"
	"paydocs-backend/internal/render"
	"paydocs-backend/internal/repositories"
)

type DocumentService struct {
	Repo         *repositories.DocumentRepository
	CustomerRepo *repositories.CustomerRepository
	Company      *CompanyService
	Email        email.Provider
}

func NewDocumentService(
	repo *repositories.DocumentRepository,
	customerRepo *repositories.CustomerRepository,
	company *CompanyService,
	emailProvider email.Provider,
) *DocumentService {
	return &DocumentService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		Company:      company,
		Email:        emailProvider,
	}
}

func (s *DocumentService) CreateDocument(ctx context.Context, ownerID int, req *models.CreateDocumentRequest) (*models.DocumentWithItems, error) {
	if req.CustomerID == 0 {
		return nil, errors.New("customer_id is required")
	}
	// The customer must belong to the caller
	if _, err := s.CustomerRepo.Get(ctx, ownerID, req.CustomerID); err != nil {
		return nil, errors.New("customer not found")
	}

	doc := &models.Document{
		OwnerID:    ownerID,
		DocNumber:  req.DocNumber,
		DocType:    req.DocType,
		CustomerID: req.CustomerID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Subtotal:   req.Subtotal,
		Tax:        req.Tax,
		Total:      req.Total,
		Notes:      req.Notes,
		TemplateID: req.TemplateID,
	}
	if doc.DocType == "" {
		doc.DocType = models.DocTypeInvoice
	}
	if doc.TemplateID == "" {
		doc.TemplateID = "modern"
	}
	// Invoices get a generated number; other documents stay unnumbered
	// (they render as DRAFT) until the caller assigns one.
	if doc.DocNumber == "" && doc.DocType == models.DocTypeInvoice {
		num, err := s.Repo.GenerateDocNumber(ctx)
		if err != nil {
			return nil, err
		}
		doc.DocNumber = num
	}

	if err := s.Repo.Create(ctx, doc, req.Items); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, ownerID, doc.ID)
}

func (s *DocumentService) GetDocument(ctx context.Context, ownerID, id int) (*models.DocumentWithItems, error) {
	return s.Repo.Get(ctx, ownerID, id)
}

func (s *DocumentService) ListDocuments(ctx context.Context, ownerID int) ([]*models.DocumentWithItems, error) {
	return s.Repo.List(ctx, ownerID)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, ownerID, id int, req *models.UpdateDocumentRequest) (*models.DocumentWithItems, error) {
	existing, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != 0 && req.CustomerID != existing.CustomerID {
		if _, err := s.CustomerRepo.Get(ctx, ownerID, req.CustomerID); err != nil {
			return nil, errors.New("customer not found")
		}
		existing.CustomerID = req.CustomerID
	}

	doc := &models.Document{
		ID:         id,
		OwnerID:    ownerID,
		DocNumber:  req.DocNumber,
		DocType:    req.DocType,
		CustomerID: existing.CustomerID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Subtotal:   req.Subtotal,
		Tax:        req.Tax,
		Total:      req.Total,
		Notes:      req.Notes,
		TemplateID: req.TemplateID,
	}
	if doc.DocType == "" {
		doc.DocType = existing.DocType
	}
	if doc.TemplateID == "" {
		doc.TemplateID = existing.TemplateID
	}

	if err := s.Repo.Update(ctx, doc, req.Items); err != nil {
		return nil, err
	}
	cache.InvalidateDocumentCaches(ctx, id)
	return s.Repo.Get(ctx, ownerID, id)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, ownerID, id int) error {
	if err := s.Repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	cache.InvalidateDocumentCaches(ctx, id)
	return nil
}

// RenderPDF renders a document to PDF bytes, serving from cache when the
// document has not changed since the last render. Returns the bytes and
// the download filename.
func (s *DocumentService) RenderPDF(ctx context.Context, ownerID, id int) ([]byte, string, error) {
	doc, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.buildDocumentData(ctx, ownerID, doc)
	if err != nil {
		return nil, "", err
	}
	filename := render.AttachmentFilename(data)

	key := cache.PDFKey(doc.ID, doc.UpdatedAt)
	if cached, ok := cache.GetCachedPDF(ctx, key); ok {
		return cached, filename, nil
	}

	company, err := s.Company.CompanyInfo(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := render.RenderDocument(data, company)
	if err != nil {
		return nil, "", err
	}
	metrics.DocumentsRendered.WithLabelValues(data.DocType).Inc()

	cache.CachePDF(ctx, key, pdf)
	return pdf, filename, nil
}

// SendDocument renders the document and emails it as a PDF attachment.
// Recipient and subject default from the customer and company profile.
func (s *DocumentService) SendDocument(ctx context.Context, ownerID, id int, req *models.SendDocumentRequest) error {
	doc, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	customer, err := s.CustomerRepo.Get(ctx, ownerID, doc.CustomerID)
	if err != nil {
		return errors.New("customer not found")
	}

	to := req.To
	if to == "" {
		to = customer.Email
	}
	if to == "" {
		return errors.New("no recipient: customer has no email address")
	}

	company, err := s.Company.CompanyInfo(ctx, ownerID)
	if err != nil {
		return err
	}

	pdf, filename, err := s.RenderPDF(ctx, ownerID, id)
	if err != nil {
		return err
	}

	num := doc.DocNumber
	if num == "" {
		num = "draft"
	}
	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("%s %s from %s", doc.DocType, num, company.Name)
	}
	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Hi %s,\n\nPlease find %s %s attached.\n\nRegards,\n%s",
			customer.Name, doc.DocType, num, company.Name)
	}

	msg := &email.Message{
		To:         to,
		Subject:    subject,
		HTML:       renderEmailBody(message),
		DocumentID: &doc.ID,
		Attachments: []email.Attachment{
			{Filename: filename, Content: pdf, ContentType: "application/pdf"},
		},
	}

	if err := s.Email.Send(msg); err != nil {
		metrics.EmailsSent.WithLabelValues(models.EmailStatusFailed).Inc()
		log.Printf("[Documents] failed to send document %d to %s: %v", doc.ID, to, err)
		return err
	}
	metrics.EmailsSent.WithLabelValues(models.EmailStatusSent).Inc()
	return nil
}

func (s *DocumentService) buildDocumentData(ctx context.Context, ownerID int, doc *models.DocumentWithItems) (*models.DocumentData, error) {
	customer, err := s.CustomerRepo.Get(ctx, ownerID, doc.CustomerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	return &models.DocumentData{
		DocNumber:  doc.DocNumber,
		DocType:    doc.DocType,
		Customer:   *customer,
		Items:      doc.Items,
		IssueDate:  doc.IssueDate,
		DueDate:    doc.DueDate,
		Subtotal:   doc.Subtotal,
		Tax:        doc.Tax,
		Total:      doc.Total,
		Notes:      doc.Notes,
		TemplateID: doc.TemplateID,
	}, nil
}

// renderEmailBody converts a plain-text message to minimal HTML
func renderEmailBody(message string) string {
	escaped := html.EscapeString(message)
	out := ""
	for _, line := range splitLines(escaped) {
		out += "<p>" + line + "</p>"
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
