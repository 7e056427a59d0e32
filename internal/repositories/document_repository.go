package repositories

import (
	"context"
	"fmt"

	"paydocs-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

// GenerateDocNumber generates a unique document number
func (r *DocumentRepository) GenerateDocNumber(ctx context.Context) (string, error) {
	// Database sequence for O(1) allocation, no COUNT scans
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('doc_number_seq')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next document number: %w", err)
	}
	return fmt.Sprintf("INV-%03d", nextNum), nil
}

// Create inserts a document with its line items in one transaction
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document, items []models.DocumentItemInput) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO documents(owner_id, customer_id, doc_number, doc_type, issue_date, due_date,
                               subtotal, tax, total, notes, template_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id, created_at, updated_at`,
		doc.OwnerID, doc.CustomerID, doc.DocNumber, doc.DocType, doc.IssueDate, doc.DueDate,
		doc.Subtotal, doc.Tax, doc.Total, doc.Notes, doc.TemplateID,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return err
	}

	for i, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO document_items(document_id, position, description, quantity, price)
			 VALUES($1, $2, $3, $4, $5)`,
			doc.ID, i, item.Description, item.Quantity, item.Price,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update replaces the document fields and all line items in one transaction
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document, items []models.DocumentItemInput) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE documents SET customer_id=$1, doc_number=$2, doc_type=$3, issue_date=$4, due_date=$5,
                              subtotal=$6, tax=$7, total=$8, notes=$9, template_id=$10,
                              updated_at=CURRENT_TIMESTAMP
         WHERE id=$11 AND owner_id=$12
         RETURNING updated_at`,
		doc.CustomerID, doc.DocNumber, doc.DocType, doc.IssueDate, doc.DueDate,
		doc.Subtotal, doc.Tax, doc.Total, doc.Notes, doc.TemplateID,
		doc.ID, doc.OwnerID,
	).Scan(&doc.UpdatedAt)
	if err != nil {
		return err
	}

	// Items are replaced wholesale; positions restart from zero
	if _, err = tx.Exec(ctx,
		`DELETE FROM document_items WHERE document_id=$1`, doc.ID); err != nil {
		return err
	}
	for i, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO document_items(document_id, position, description, quantity, price)
			 VALUES($1, $2, $3, $4, $5)`,
			doc.ID, i, item.Description, item.Quantity, item.Price,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves a document owned by the given user, with ordered items
func (r *DocumentRepository) Get(ctx context.Context, ownerID, id int) (*models.DocumentWithItems, error) {
	var doc models.DocumentWithItems
	err := r.DB.QueryRow(ctx,
		`SELECT d.id, d.owner_id, d.customer_id, d.doc_number, d.doc_type, d.issue_date, d.due_date,
		        d.subtotal, d.tax, d.total, d.notes, d.template_id, d.created_at, d.updated_at,
		        COALESCE(c.name, '') as customer_name
		 FROM documents d
		 LEFT JOIN customers c ON d.customer_id = c.id
		 WHERE d.id = $1 AND d.owner_id = $2`, id, ownerID,
	).Scan(&doc.ID, &doc.OwnerID, &doc.CustomerID, &doc.DocNumber, &doc.DocType,
		&doc.IssueDate, &doc.DueDate, &doc.Subtotal, &doc.Tax, &doc.Total,
		&doc.Notes, &doc.TemplateID, &doc.CreatedAt, &doc.UpdatedAt, &doc.CustomerName)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, document_id, position, description, quantity, price
		 FROM document_items WHERE document_id = $1 ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.DocumentItem
	for rows.Next() {
		var item models.DocumentItem
		err := rows.Scan(&item.ID, &item.DocumentID, &item.Position,
			&item.Description, &item.Quantity, &item.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	doc.Items = items
	return &doc, rows.Err()
}

// List returns all documents owned by the given user, newest first
func (r *DocumentRepository) List(ctx context.Context, ownerID int) ([]*models.DocumentWithItems, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT d.id, d.owner_id, d.customer_id, d.doc_number, d.doc_type, d.issue_date, d.due_date,
		        d.subtotal, d.tax, d.total, d.notes, d.template_id, d.created_at, d.updated_at,
		        COALESCE(c.name, '') as customer_name
		 FROM documents d
		 LEFT JOIN customers c ON d.customer_id = c.id
		 WHERE d.owner_id = $1
		 ORDER BY d.created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.DocumentWithItems
	for rows.Next() {
		var doc models.DocumentWithItems
		err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.CustomerID, &doc.DocNumber, &doc.DocType,
			&doc.IssueDate, &doc.DueDate, &doc.Subtotal, &doc.Tax, &doc.Total,
			&doc.Notes, &doc.TemplateID, &doc.CreatedAt, &doc.UpdatedAt, &doc.CustomerName)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM documents WHERE id=$1 AND owner_id=$2`, id, ownerID)
	return err
}
