package memory

import (
	"context"
	"sort"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type invoiceRepo struct {
	s *Store
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.data.invoices[invoice.ID] = copyInvoice(invoice)
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	r.s.rlock()
	defer r.s.runlock()

	invoice, ok := r.s.data.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyInvoice(invoice), nil
}

func (r *invoiceRepo) List(ctx context.Context, filter repository.InvoiceListFilter) ([]*domain.Invoice, error) {
	r.s.rlock()
	defer r.s.runlock()

	var invoices []*domain.Invoice
	for _, invoice := range r.s.data.invoices {
		if filter.Status != nil && invoice.Status != *filter.Status {
			continue
		}
		if filter.ClientID != nil && invoice.ClientID != *filter.ClientID {
			continue
		}
		invoices = append(invoices, copyInvoice(invoice))
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].IssueDate.Before(invoices[j].IssueDate)
	})
	return invoices, nil
}

func copyInvoice(inv *domain.Invoice) *domain.Invoice {
	c := *inv
	c.TripIDs = append([]string(nil), inv.TripIDs...)
	return &c
}
