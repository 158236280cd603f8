package catalog

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccastillovega/inventario-portal/internal/lib/password"
	"github.com/ccastillovega/inventario-portal/internal/models"
	"github.com/ccastillovega/inventario-portal/internal/storage/kv"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return New(context.Background(), mem, makeLogger()), mem
}

func TestCreatePlan_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	seeded := len(store.ListPlans(ctx))
	first := store.CreatePlan(ctx, models.DummyPlan{Name: "Plan A", Price: 1, PriceUnit: "UF"})
	second := store.CreatePlan(ctx, models.DummyPlan{Name: "Plan B", Price: 2, PriceUnit: "UF"})
	third := store.CreatePlan(ctx, models.DummyPlan{Name: "Plan C", Price: 3, PriceUnit: "UF"})

	assert.Equal(t, seeded+1, first.ID)
	assert.Equal(t, seeded+2, second.ID)
	assert.Equal(t, seeded+3, third.ID)
}

func TestCreateInvoice_SequentialIDsFromEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for want := 1; want <= 3; want++ {
		inv := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 1})
		assert.Equal(t, want, inv.ID)
	}
}

func TestCreatePlan_IDAfterGap(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Extra", Price: 1, PriceUnit: "UF"})
	removed, err := store.DeletePlan(ctx, plan.ID-1)
	require.NoError(t, err)
	require.True(t, removed)

	// id назначается как max+1, удаление не освобождает номера
	next := store.CreatePlan(ctx, models.DummyPlan{Name: "Next", Price: 1, PriceUnit: "UF"})
	assert.Equal(t, plan.ID+1, next.ID)
}

func TestUpdatePlan_NotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	before := store.ListPlans(ctx)
	name := "ghost"
	updated := store.UpdatePlan(ctx, 9999, models.DummyPlanUpdate{Name: &name})

	assert.Nil(t, updated)
	assert.Equal(t, before, store.ListPlans(ctx))
}

func TestUpdatePlan_MergesFields(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Old", Price: 1.5, PriceUnit: "UF"})
	newPrice := 2.5
	updated := store.UpdatePlan(ctx, plan.ID, models.DummyPlanUpdate{Price: &newPrice})

	require.NotNil(t, updated)
	assert.Equal(t, "Old", updated.Name)
	assert.Equal(t, 2.5, updated.Price)
	assert.Equal(t, "UF", updated.PriceUnit)
}

func TestDeletePlan(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Temporal", Price: 1, PriceUnit: "UF"})

	removed, err := store.DeletePlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	for _, p := range store.ListPlans(ctx) {
		assert.NotEqual(t, plan.ID, p.ID)
	}

	removed, err = store.DeletePlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeletePlan_RefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Referenciado", Price: 1, PriceUnit: "UF"})
	user, err := store.CreateUser(ctx, models.DummyUser{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", Role: models.RoleCustomer,
	})
	require.NoError(t, err)
	require.True(t, store.AssignPlanToUser(ctx, user.ID, plan.ID))

	removed, err := store.DeletePlan(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrPlanInUse)
	assert.False(t, removed)
	require.NotNil(t, store.PlanByID(ctx, plan.ID))
}

func TestAssignPlanToUser_UpsertsSubscription(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	planA := store.CreatePlan(ctx, models.DummyPlan{Name: "A", Price: 1, PriceUnit: "UF"})
	planB := store.CreatePlan(ctx, models.DummyPlan{Name: "B", Price: 2, PriceUnit: "UF"})
	user, err := store.CreateUser(ctx, models.DummyUser{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	require.True(t, store.AssignPlanToUser(ctx, user.ID, planA.ID))
	require.True(t, store.AssignPlanToUser(ctx, user.ID, planB.ID))

	var forUser []models.Subscription
	for _, sub := range store.ListSubscriptions(ctx) {
		if sub.UserID == user.ID {
			forUser = append(forUser, sub)
		}
	}
	require.Len(t, forUser, 1)
	assert.Equal(t, planB.ID, forUser[0].PlanID)
	assert.False(t, forUser[0].TrialActive)
}

func TestAssignPlanToUser_ClearsTrialOnPaidPlan(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	paid := store.CreatePlan(ctx, models.DummyPlan{Name: "Pagado", Price: 1.9, PriceUnit: "UF"})
	user, err := store.CreateUser(ctx, models.DummyUser{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	// Активируем пробный период вручную
	trialStart := time.Now().UTC()
	trialEnd := trialStart.AddDate(0, 1, 0)
	users := loadCollection[models.User](ctx, store, keyUsers)
	for i := range users {
		if users[i].ID == user.ID {
			users[i].TrialActive = true
			users[i].TrialStartDate = &trialStart
			users[i].TrialEndDate = &trialEnd
		}
	}
	saveCollection(ctx, store, keyUsers, users)

	require.True(t, store.AssignPlanToUser(ctx, user.ID, paid.ID))

	got := store.UserByID(ctx, user.ID)
	require.NotNil(t, got)
	assert.False(t, got.TrialActive)
	assert.Nil(t, got.TrialStartDate)
	assert.Nil(t, got.TrialEndDate)
}

func TestAssignPlanToUser_UnknownUser(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	before := len(store.ListSubscriptions(ctx))
	assert.False(t, store.AssignPlanToUser(ctx, 9999, 1))
	assert.Len(t, store.ListSubscriptions(ctx), before)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	New(ctx, mem, makeLogger())
	first, found, err := mem.Get(ctx, keyUsers)
	require.NoError(t, err)
	require.True(t, found)

	New(ctx, mem, makeLogger())
	second, _, err := mem.Get(ctx, keyUsers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSeed_CanonicalAccounts(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var admins, customers int
	for _, user := range store.ListUsers(ctx) {
		switch {
		case user.Role == models.RoleAdmin && user.Email == seedAdminEmail:
			admins++
		case user.Role == models.RoleCustomer && user.Email == seedCustomerEmail:
			customers++
		}
	}
	assert.Equal(t, 1, admins)
	assert.Equal(t, 1, customers)
}

func TestSeed_LegacyCustomerRewrittenInPlace(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, keyUsers,
		`[{"id":5,"name":"Demo Antiguo","email":"demo@inventario.cl","passwordHash":"x","role":"customer","planId":null}]`))

	store := New(ctx, mem, makeLogger())

	var customers []models.User
	for _, user := range store.ListUsers(ctx) {
		if user.Role == models.RoleCustomer {
			customers = append(customers, user)
		}
	}
	require.Len(t, customers, 1)
	assert.Equal(t, 5, customers[0].ID)
	assert.Equal(t, seedCustomerEmail, customers[0].Email)
	assert.Equal(t, seedCustomerName, customers[0].Name)
	assert.NoError(t, password.CompareHash(customers[0].PasswordHash, seedCustomerPass))
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	user, err := store.CreateUser(ctx, models.DummyUser{
		Name: "Ana", Email: "ana@example.com", Password: "original1", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	ok, err := store.ResetPassword(ctx, user.ID, "nuevo-secreto")
	require.NoError(t, err)
	require.True(t, ok)

	got := store.UserByID(ctx, user.ID)
	require.NotNil(t, got)
	assert.NoError(t, password.CompareHash(got.PasswordHash, "nuevo-secreto"))
	assert.Error(t, password.CompareHash(got.PasswordHash, "original1"))

	ok, err = store.ResetPassword(ctx, 9999, "da-igual")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateInvoice_DistinctFolios(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	folioPattern := regexp.MustCompile(`^FAC-\d{8}-\d{4}$`)

	first := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 3})
	second := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 3})

	assert.Regexp(t, folioPattern, first.InvoiceNumber)
	assert.Regexp(t, folioPattern, second.InvoiceNumber)
	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusPaid, first.Status)
	assert.Equal(t, models.InvoiceStatusPaid, second.Status)
}

func TestInvoicesForUser_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	old := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 3})

	store.now = func() time.Time { return base.AddDate(0, 0, 3) }
	fresh := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 3})

	store.CreateInvoice(ctx, models.Invoice{UserID: 7, PlanID: 3})

	invoices := store.InvoicesForUser(ctx, 2)
	require.Len(t, invoices, 2)
	assert.Equal(t, fresh.ID, invoices[0].ID)
	assert.Equal(t, old.ID, invoices[1].ID)
}

func TestInvoiceLookups(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	inv := store.CreateInvoice(ctx, models.Invoice{UserID: 2, PlanID: 3})

	byNumber := store.InvoiceByNumber(ctx, inv.InvoiceNumber)
	require.NotNil(t, byNumber)
	assert.Equal(t, inv.ID, byNumber.ID)

	byID := store.InvoiceByID(ctx, inv.ID)
	require.NotNil(t, byID)
	assert.Equal(t, inv.InvoiceNumber, byID.InvoiceNumber)

	assert.Nil(t, store.InvoiceByNumber(ctx, "FAC-19700101-0001"))
	assert.Nil(t, store.InvoiceByID(ctx, 9999))
}

func TestPlanLimits(t *testing.T) {
	store, _ := newTestStore(t)

	limits := store.PlanLimits(1)
	require.NotNil(t, limits)
	assert.Equal(t, 1, limits.MaxWarehouses)
	assert.False(t, limits.HasAIAssistant)

	unlimited := store.PlanLimits(4)
	require.NotNil(t, unlimited)
	assert.Equal(t, -1, unlimited.MaxUsers)
	assert.Equal(t, -1, unlimited.MaxProducts)

	assert.Nil(t, store.PlanLimits(9999))
}

// Сценарий из жизни портала: новый план, новый клиент, назначение плана,
// счета появляются только после оформления покупки.
func TestScenario_AssignAndInvoice(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Kiosco Plus", Price: 0, PriceUnit: "CLP"})
	user, err := store.CreateUser(ctx, models.DummyUser{
		Name: "Benjamín", Email: "benja@example.com", Password: "secreto1", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	require.True(t, store.AssignPlanToUser(ctx, user.ID, plan.ID))

	got := store.UserPlan(ctx, user.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Kiosco Plus", got.Name)

	assert.Empty(t, store.InvoicesForUser(ctx, user.ID))

	store.CreateInvoice(ctx, models.Invoice{
		UserID: user.ID, UserName: user.Name, UserEmail: user.Email,
		PlanID: plan.ID, PlanName: plan.Name, PriceUF: plan.Price, CurrencyUnit: plan.PriceUnit,
		PaymentMethod: "card",
	})
	assert.Len(t, store.InvoicesForUser(ctx, user.ID), 1)
}

// brokenStore имитирует недоступное хранилище: чтение и запись всегда падают.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestStorageFailure_DegradesWithoutError(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, brokenStore{}, makeLogger())

	// Чтение деградирует до пустой коллекции
	assert.Empty(t, store.ListPlans(ctx))
	assert.Nil(t, store.UserByID(ctx, 1))

	// Запись best effort: операция отвечает по состоянию в памяти
	plan := store.CreatePlan(ctx, models.DummyPlan{Name: "Efímero", Price: 1, PriceUnit: "UF"})
	assert.Equal(t, 1, plan.ID)
	assert.Equal(t, "Efímero", plan.Name)
}
