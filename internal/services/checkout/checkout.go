// Package checkout реализует оформление покупки плана: имитацию обработки
// платежа с фиксированной задержкой, назначение плана покупателю и
// выставление счёта с пересчётом цены в песо.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ccastillovega/inventario-portal/internal/models"
)

// Ошибки оформления покупки.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrPlanNotFound = errors.New("plan not found")
)

// CatalogStore описывает операции каталога, нужные для оформления покупки.
type CatalogStore interface {
	// UserByID возвращает пользователя или nil.
	UserByID(ctx context.Context, id int) *models.User
	// PlanByID возвращает план или nil.
	PlanByID(ctx context.Context, id int) *models.Plan
	// AssignPlanToUser назначает план и upsert-ит подписку.
	AssignPlanToUser(ctx context.Context, userID, planID int) bool
	// CreateInvoice выставляет счёт и возвращает его с фолио.
	CreateInvoice(ctx context.Context, draft models.Invoice) models.Invoice
}

// Converter описывает пересчёт цен в песо.
type Converter interface {
	ConvertUFToCLP(ctx context.Context, amount float64) int64
	ConvertUSDToCLP(ctx context.Context, amount float64) int64
}

// Result итог успешного оформления покупки.
type Result struct {
	TransactionID string         `json:"transactionId"`
	Invoice       models.Invoice `json:"invoice"`
}

// Service реализует оформление покупки.
type Service struct {
	store CatalogStore
	conv  Converter
	delay time.Duration
	log   *slog.Logger
}

// NewService создает сервис оформления покупки. delay — длительность
// имитации обработки платежа.
func NewService(store CatalogStore, conv Converter, delay time.Duration, log *slog.Logger) *Service {
	return &Service{
		store: store,
		conv:  conv,
		delay: delay,
		log:   log,
	}
}

// Process проводит покупку: проверяет покупателя и план, ждёт имитацию
// обработки платежа, назначает план и выставляет оплаченный счёт.
// Отмена контекста прерывает ожидание без побочных эффектов.
func (s *Service) Process(ctx context.Context, req models.DummyCheckout) (*Result, error) {
	user := s.store.UserByID(ctx, req.UserID)
	if user == nil {
		return nil, ErrUserNotFound
	}
	plan := s.store.PlanByID(ctx, req.PlanID)
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	// Платёжного шлюза нет: обработка — фиксированная задержка
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
	}

	s.store.AssignPlanToUser(ctx, user.ID, plan.ID)

	var priceCLP *int64
	switch plan.PriceUnit {
	case "UF":
		v := s.conv.ConvertUFToCLP(ctx, plan.Price)
		priceCLP = &v
	case "USD":
		v := s.conv.ConvertUSDToCLP(ctx, plan.Price)
		priceCLP = &v
	case "CLP":
		v := int64(math.Round(plan.Price))
		priceCLP = &v
	}

	var last4 *string
	if n := len(req.CardNumber); n >= 4 {
		digits := req.CardNumber[n-4:]
		last4 = &digits
	}

	var dueDate *time.Time
	if req.DueInDays > 0 {
		due := time.Now().AddDate(0, 0, req.DueInDays)
		dueDate = &due
	}

	invoice := s.store.CreateInvoice(ctx, models.Invoice{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		PriceUF:       plan.Price,
		PriceCLP:      priceCLP,
		CurrencyUnit:  plan.PriceUnit,
		DueDate:       dueDate,
		PaymentMethod: req.PaymentMethod,
		Last4Digits:   last4,
	})

	txID := uuid.NewString()
	s.log.Info("checkout completed",
		slog.String("transaction_id", txID),
		slog.String("invoice", invoice.InvoiceNumber),
		slog.Int("user_id", user.ID))
	return &Result{TransactionID: txID, Invoice: invoice}, nil
}
