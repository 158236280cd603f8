package catalog

import (
	"context"
	"log/slog"

	"github.com/ccastillovega/inventario-portal/internal/lib/password"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// Канонические демонстрационные учётные записи. Согласование при
// инициализации гарантирует, что после старта существуют ровно один
// администратор и один клиент с этими реквизитами.
const (
	seedAdminEmail    = "admin@inventario.cl"
	seedAdminName     = "Administrador"
	seedAdminPass     = "admin123"
	seedCustomerEmail = "cliente@inventario.cl"
	seedCustomerName  = "Cliente Demo"
	seedCustomerPass  = "cliente123"

	// Email клиента из старых версий демонстрационных данных; такая
	// запись переписывается на каноническую по месту, без дубликата.
	legacyCustomerEmail = "demo@inventario.cl"
)

// userRule — одно идемпотентное правило согласования коллекции пользователей.
// Правило возвращает новую коллекцию и признак того, что оно сработало.
type userRule struct {
	name  string
	apply func(users []models.User) ([]models.User, bool)
}

// seed выполняет согласование демонстрационных данных: правила
// применяются по порядку один раз при создании хранилища, повторный
// запуск на согласованных данных — no-op.
func (s *Store) seed(ctx context.Context) {
	const op = "catalog.seed"

	adminHash, err := password.GetHash(seedAdminPass)
	if err != nil {
		s.log.Error("failed to hash seed password", slog.String("op", op), slog.Any("err", err))
		return
	}
	customerHash, err := password.GetHash(seedCustomerPass)
	if err != nil {
		s.log.Error("failed to hash seed password", slog.String("op", op), slog.Any("err", err))
		return
	}

	rules := []userRule{
		{
			name: "ensure canonical admin",
			apply: func(users []models.User) ([]models.User, bool) {
				for _, user := range users {
					if user.Role == models.RoleAdmin && user.Email == seedAdminEmail {
						return users, false
					}
				}
				return append(users, models.User{
					ID:           nextID(users, func(u models.User) int { return u.ID }),
					Name:         seedAdminName,
					Email:        seedAdminEmail,
					PasswordHash: adminHash,
					Role:         models.RoleAdmin,
				}), true
			},
		},
		{
			name: "rewrite legacy customer identity",
			apply: func(users []models.User) ([]models.User, bool) {
				for i := range users {
					if users[i].Role == models.RoleCustomer && users[i].Email == legacyCustomerEmail {
						users[i].Name = seedCustomerName
						users[i].Email = seedCustomerEmail
						users[i].PasswordHash = customerHash
						return users, true
					}
				}
				return users, false
			},
		},
		{
			name: "ensure canonical customer",
			apply: func(users []models.User) ([]models.User, bool) {
				for _, user := range users {
					if user.Role == models.RoleCustomer && user.Email == seedCustomerEmail {
						return users, false
					}
				}
				return append(users, models.User{
					ID:           nextID(users, func(u models.User) int { return u.ID }),
					Name:         seedCustomerName,
					Email:        seedCustomerEmail,
					PasswordHash: customerHash,
					Role:         models.RoleCustomer,
				}), true
			},
		},
	}

	users := loadCollection[models.User](ctx, s, keyUsers)
	changed := false
	for _, rule := range rules {
		var applied bool
		users, applied = rule.apply(users)
		if applied {
			s.log.Info("seed rule applied", slog.String("rule", rule.name))
			changed = true
		}
	}
	if changed {
		saveCollection(ctx, s, keyUsers, users)
	}

	s.seedPlans(ctx)
}

// seedPlans наполняет пустой каталог демонстрационными планами.
// Непустой каталог не трогается, даже если состав планов отличается.
func (s *Store) seedPlans(ctx context.Context) {
	plans := loadCollection[models.Plan](ctx, s, keyPlans)
	if len(plans) > 0 {
		return
	}
	plans = []models.Plan{
		{
			ID: 1, Name: "Kiosco", Price: 0, PriceUnit: "CLP", IsFreemium: true,
			Features: []string{"1 bodega", "50 productos", "Reportes básicos"},
		},
		{
			ID: 2, Name: "Emprende", Price: 0.5, PriceUnit: "UF",
			Features: []string{"2 bodegas", "500 productos", "Soporte por email"},
		},
		{
			ID: 3, Name: "Pyme", Price: 1.9, PriceUnit: "UF",
			Features: []string{"5 bodegas", "5000 productos", "Reportes avanzados", "Soporte prioritario", "Asistente IA"},
		},
		{
			ID: 4, Name: "Corporativo", Price: 4.9, PriceUnit: "UF",
			Features: []string{"Bodegas ilimitadas", "Productos ilimitados", "Reportes completos", "Soporte dedicado", "Asistente IA"},
		},
	}
	saveCollection(ctx, s, keyPlans, plans)
	s.log.Info("seeded plan catalog", slog.Int("count", len(plans)))
}
