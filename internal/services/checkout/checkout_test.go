package checkout_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccastillovega/inventario-portal/internal/models"
	"github.com/ccastillovega/inventario-portal/internal/services/checkout"
)

type mockStore struct {
	UserByIDFunc         func(ctx context.Context, id int) *models.User
	PlanByIDFunc         func(ctx context.Context, id int) *models.Plan
	AssignPlanToUserFunc func(ctx context.Context, userID, planID int) bool
	CreateInvoiceFunc    func(ctx context.Context, draft models.Invoice) models.Invoice
}

func (m *mockStore) UserByID(ctx context.Context, id int) *models.User {
	return m.UserByIDFunc(ctx, id)
}

func (m *mockStore) PlanByID(ctx context.Context, id int) *models.Plan {
	return m.PlanByIDFunc(ctx, id)
}

func (m *mockStore) AssignPlanToUser(ctx context.Context, userID, planID int) bool {
	return m.AssignPlanToUserFunc(ctx, userID, planID)
}

func (m *mockStore) CreateInvoice(ctx context.Context, draft models.Invoice) models.Invoice {
	return m.CreateInvoiceFunc(ctx, draft)
}

type mockConverter struct {
	uf  int64
	usd int64
}

func (m *mockConverter) ConvertUFToCLP(_ context.Context, _ float64) int64  { return m.uf }
func (m *mockConverter) ConvertUSDToCLP(_ context.Context, _ float64) int64 { return m.usd }

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func testUser() *models.User {
	return &models.User{ID: 2, Name: "Cliente Demo", Email: "cliente@inventario.cl", Role: models.RoleCustomer}
}

func testPlan() *models.Plan {
	return &models.Plan{ID: 3, Name: "Pyme", Price: 1.9, PriceUnit: "UF"}
}

func TestProcess_Success(t *testing.T) {
	assigned := false
	store := &mockStore{
		UserByIDFunc: func(_ context.Context, id int) *models.User {
			require.Equal(t, 2, id)
			return testUser()
		},
		PlanByIDFunc: func(_ context.Context, id int) *models.Plan {
			require.Equal(t, 3, id)
			return testPlan()
		},
		AssignPlanToUserFunc: func(_ context.Context, userID, planID int) bool {
			assigned = true
			require.Equal(t, 2, userID)
			require.Equal(t, 3, planID)
			return true
		},
		CreateInvoiceFunc: func(_ context.Context, draft models.Invoice) models.Invoice {
			draft.ID = 1
			draft.InvoiceNumber = "FAC-20240601-0001"
			draft.Status = models.InvoiceStatusPaid
			return draft
		},
	}
	svc := checkout.NewService(store, &mockConverter{uf: 73150}, time.Millisecond, makeLogger())

	result, err := svc.Process(context.Background(), models.DummyCheckout{
		UserID:        2,
		PlanID:        3,
		PaymentMethod: "card",
		CardNumber:    "4051885600446623",
	})

	require.NoError(t, err)
	assert.True(t, assigned)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, "Pyme", result.Invoice.PlanName)
	assert.Equal(t, "cliente@inventario.cl", result.Invoice.UserEmail)
	require.NotNil(t, result.Invoice.PriceCLP)
	assert.Equal(t, int64(73150), *result.Invoice.PriceCLP)
	require.NotNil(t, result.Invoice.Last4Digits)
	assert.Equal(t, "6623", *result.Invoice.Last4Digits)
}

func TestProcess_UserNotFound(t *testing.T) {
	store := &mockStore{
		UserByIDFunc: func(_ context.Context, _ int) *models.User { return nil },
		PlanByIDFunc: func(_ context.Context, _ int) *models.Plan {
			t.Fatal("plan lookup should not happen for unknown user")
			return nil
		},
	}
	svc := checkout.NewService(store, &mockConverter{}, time.Millisecond, makeLogger())

	_, err := svc.Process(context.Background(), models.DummyCheckout{UserID: 99, PlanID: 3, PaymentMethod: "card"})
	assert.ErrorIs(t, err, checkout.ErrUserNotFound)
}

func TestProcess_PlanNotFound(t *testing.T) {
	store := &mockStore{
		UserByIDFunc: func(_ context.Context, _ int) *models.User { return testUser() },
		PlanByIDFunc: func(_ context.Context, _ int) *models.Plan { return nil },
	}
	svc := checkout.NewService(store, &mockConverter{}, time.Millisecond, makeLogger())

	_, err := svc.Process(context.Background(), models.DummyCheckout{UserID: 2, PlanID: 99, PaymentMethod: "card"})
	assert.ErrorIs(t, err, checkout.ErrPlanNotFound)
}

func TestProcess_CancelledDuringPayment(t *testing.T) {
	store := &mockStore{
		UserByIDFunc: func(_ context.Context, _ int) *models.User { return testUser() },
		PlanByIDFunc: func(_ context.Context, _ int) *models.Plan { return testPlan() },
		AssignPlanToUserFunc: func(_ context.Context, _, _ int) bool {
			t.Fatal("plan must not be assigned after cancellation")
			return false
		},
	}
	svc := checkout.NewService(store, &mockConverter{}, time.Second, makeLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, models.DummyCheckout{UserID: 2, PlanID: 3, PaymentMethod: "card"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_CLPPlanPriceRounded(t *testing.T) {
	store := &mockStore{
		UserByIDFunc: func(_ context.Context, _ int) *models.User { return testUser() },
		PlanByIDFunc: func(_ context.Context, _ int) *models.Plan {
			return &models.Plan{ID: 1, Name: "Kiosco", Price: 9990.6, PriceUnit: "CLP"}
		},
		AssignPlanToUserFunc: func(_ context.Context, _, _ int) bool { return true },
		CreateInvoiceFunc: func(_ context.Context, draft models.Invoice) models.Invoice {
			return draft
		},
	}
	svc := checkout.NewService(store, &mockConverter{}, time.Millisecond, makeLogger())

	result, err := svc.Process(context.Background(), models.DummyCheckout{UserID: 2, PlanID: 1, PaymentMethod: "transfer"})

	require.NoError(t, err)
	require.NotNil(t, result.Invoice.PriceCLP)
	assert.Equal(t, int64(9991), *result.Invoice.PriceCLP)
	assert.Nil(t, result.Invoice.Last4Digits)
}
