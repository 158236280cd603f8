package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ccastillovega/inventario-portal/internal/lib/folio"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// CreateInvoice выставляет счёт: назначает id, генерирует фолио
// FAC-YYYYMMDD-NNNN с порядковым номером в пределах дня, помечает счёт
// оплаченным и сохраняет. Дата покупки — момент создания, если не задана.
// Счёт после создания неизменяем.
func (s *Store) CreateInvoice(ctx context.Context, draft models.Invoice) models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices := loadCollection[models.Invoice](ctx, s, keyInvoices)

	if draft.PurchaseDate.IsZero() {
		draft.PurchaseDate = s.now()
	}
	seq := 1
	dayPrefix := folio.DayPrefix(draft.PurchaseDate)
	for _, inv := range invoices {
		if strings.HasPrefix(inv.InvoiceNumber, dayPrefix) {
			seq++
		}
	}

	draft.ID = nextID(invoices, func(inv models.Invoice) int { return inv.ID })
	draft.InvoiceNumber = folio.New(draft.PurchaseDate, seq)
	draft.Status = models.InvoiceStatusPaid

	invoices = append(invoices, draft)
	saveCollection(ctx, s, keyInvoices, invoices)

	s.log.Info("created invoice",
		slog.Int("id", draft.ID),
		slog.String("number", draft.InvoiceNumber),
		slog.Int("user_id", draft.UserID))
	return draft
}

// InvoicesForUser возвращает счета пользователя, отсортированные
// от самой свежей даты покупки к самой старой.
func (s *Store) InvoicesForUser(ctx context.Context, userID int) []models.Invoice {
	var result []models.Invoice
	for _, inv := range loadCollection[models.Invoice](ctx, s, keyInvoices) {
		if inv.UserID == userID {
			result = append(result, inv)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PurchaseDate.After(result[j].PurchaseDate)
	})
	return result
}

// InvoiceByNumber возвращает счёт по фолио или nil, если не найден.
func (s *Store) InvoiceByNumber(ctx context.Context, number string) *models.Invoice {
	for _, inv := range loadCollection[models.Invoice](ctx, s, keyInvoices) {
		if inv.InvoiceNumber == number {
			return &inv
		}
	}
	return nil
}

// InvoiceByID возвращает счёт по id или nil, если не найден.
func (s *Store) InvoiceByID(ctx context.Context, id int) *models.Invoice {
	for _, inv := range loadCollection[models.Invoice](ctx, s, keyInvoices) {
		if inv.ID == id {
			return &inv
		}
	}
	return nil
}
