package models

import "time"

// Document types as stored; any string renders upper-cased, unvalidated.
const (
	DocTypeInvoice  = "Invoice"
	DocTypeQuote    = "Quote"
	DocTypeProposal = "Proposal"
	DocTypeContract = "Contract"
	DocTypeSLA      = "SLA"
)

// Document represents a stored billing document (invoice, quote, ...)
type Document struct {
	ID         int       `json:"id"`
	OwnerID    int       `json:"owner_id"`
	DocNumber  string    `json:"doc_number"`
	DocType    string    `json:"type"`
	CustomerID int       `json:"customer_id"`
	IssueDate  string    `json:"issue_date"`
	DueDate    string    `json:"due_date"`
	Subtotal   float64   `json:"subtotal"`
	Tax        float64   `json:"tax"` // percentage 0-100
	Total      float64   `json:"total"`
	Notes      string    `json:"notes"`
	TemplateID string    `json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentItem is one line item; Position preserves input order.
type DocumentItem struct {
	ID          int     `json:"id"`
	DocumentID  int     `json:"document_id"`
	Position    int     `json:"position"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// DocumentWithItems includes the ordered items and customer details
type DocumentWithItems struct {
	Document
	CustomerName string         `json:"customer_name"`
	Items        []DocumentItem `json:"items"`
}

// CreateDocumentRequest represents the request to create a document
type CreateDocumentRequest struct {
	DocNumber  string              `json:"doc_number"`
	DocType    string              `json:"type"`
	CustomerID int                 `json:"customer_id"`
	IssueDate  string              `json:"issue_date"`
	DueDate    string              `json:"due_date"`
	Subtotal   float64             `json:"subtotal"`
	Tax        float64             `json:"tax"`
	Total      float64             `json:"total"`
	Notes      string              `json:"notes"`
	TemplateID string              `json:"template_id"`
	Items      []DocumentItemInput `json:"items"`
}

// UpdateDocumentRequest mirrors CreateDocumentRequest; items are replaced
// wholesale on update.
type UpdateDocumentRequest = CreateDocumentRequest

// DocumentItemInput is a line item as supplied by the caller
type DocumentItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// SendDocumentRequest represents the request to email a rendered document
type SendDocumentRequest struct {
	To      string `json:"to"`      // defaults to the customer email
	Subject string `json:"subject"` // defaults to "<Type> <number> from <company>"
	Message string `json:"message"`
}

// DocumentData is the transient value object handed to the renderer.
// Subtotal/Tax/Total are caller-supplied and not recomputed; missing fields
// default to zero values.
type DocumentData struct {
	DocNumber  string         `json:"doc_number"`
	DocType    string         `json:"type"`
	Customer   Customer       `json:"customer"`
	Items      []DocumentItem `json:"items"`
	IssueDate  string         `json:"issue_date"`
	DueDate    string         `json:"due_date"`
	Subtotal   float64        `json:"subtotal"`
	Tax        float64        `json:"tax"`
	Total      float64        `json:"total"`
	Notes      string         `json:"notes"`
	TemplateID string         `json:"template_id"`
}
