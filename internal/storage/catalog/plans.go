package catalog

import (
	"context"
	"log/slog"

	"github.com/ccastillovega/inventario-portal/internal/models"
)

// CreatePlan добавляет новый план в каталог и возвращает его с назначенным id.
func (s *Store) CreatePlan(ctx context.Context, req models.DummyPlan) models.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := loadCollection[models.Plan](ctx, s, keyPlans)
	plan := models.Plan{
		ID:         nextID(plans, func(p models.Plan) int { return p.ID }),
		Name:       req.Name,
		Price:      req.Price,
		PriceUnit:  req.PriceUnit,
		IsFreemium: req.IsFreemium,
		Features:   req.Features,
	}
	plans = append(plans, plan)
	saveCollection(ctx, s, keyPlans, plans)

	s.log.Info("created plan", slog.Int("id", plan.ID), slog.String("name", plan.Name))
	return plan
}

// ListPlans перечитывает каталог планов из хранилища и возвращает копию
// коллекции: вызывающие не должны изменять внутреннее состояние.
func (s *Store) ListPlans(ctx context.Context) []models.Plan {
	plans := loadCollection[models.Plan](ctx, s, keyPlans)
	result := make([]models.Plan, len(plans))
	copy(result, plans)
	return result
}

// PlanByID возвращает план по id или nil, если план не найден.
func (s *Store) PlanByID(ctx context.Context, id int) *models.Plan {
	for _, plan := range loadCollection[models.Plan](ctx, s, keyPlans) {
		if plan.ID == id {
			return &plan
		}
	}
	return nil
}

// UpdatePlan сливает непустые поля запроса в план с данным id.
// Возвращает обновлённый план или nil, если план не найден.
func (s *Store) UpdatePlan(ctx context.Context, id int, req models.DummyPlanUpdate) *models.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := loadCollection[models.Plan](ctx, s, keyPlans)
	for i := range plans {
		if plans[i].ID != id {
			continue
		}
		if req.Name != nil {
			plans[i].Name = *req.Name
		}
		if req.Price != nil {
			plans[i].Price = *req.Price
		}
		if req.PriceUnit != nil {
			plans[i].PriceUnit = *req.PriceUnit
		}
		if req.IsFreemium != nil {
			plans[i].IsFreemium = *req.IsFreemium
		}
		if req.Features != nil {
			plans[i].Features = *req.Features
		}
		saveCollection(ctx, s, keyPlans, plans)
		updated := plans[i]
		s.log.Info("updated plan", slog.Int("id", id))
		return &updated
	}
	return nil
}

// DeletePlan удаляет план по id. Возвращает ErrPlanInUse, если на план ещё
// ссылается пользователь или подписка; удаление с висячими ссылками запрещено.
// Второе возвращаемое значение сообщает, существовал ли план.
func (s *Store) DeletePlan(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range loadCollection[models.User](ctx, s, keyUsers) {
		if user.PlanID != nil && *user.PlanID == id {
			return false, ErrPlanInUse
		}
	}
	for _, sub := range loadCollection[models.Subscription](ctx, s, keySubscriptions) {
		if sub.PlanID == id {
			return false, ErrPlanInUse
		}
	}

	plans := loadCollection[models.Plan](ctx, s, keyPlans)
	filtered := plans[:0:0]
	removed := false
	for _, plan := range plans {
		if plan.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, plan)
	}
	saveCollection(ctx, s, keyPlans, filtered)
	if removed {
		s.log.Info("deleted plan", slog.Int("id", id))
	}
	return removed, nil
}

// limitsTable — статическая таблица ограничений по id плана, -1 — без ограничений.
var limitsTable = map[int]models.PlanLimits{
	1: {MaxUsers: 1, MaxWarehouses: 1, MaxProducts: 50, ReportsTier: "basic", SupportTier: "community", HasAIAssistant: false},
	2: {MaxUsers: 3, MaxWarehouses: 2, MaxProducts: 500, ReportsTier: "basic", SupportTier: "email", HasAIAssistant: false},
	3: {MaxUsers: 10, MaxWarehouses: 5, MaxProducts: 5000, ReportsTier: "advanced", SupportTier: "priority", HasAIAssistant: true},
	4: {MaxUsers: -1, MaxWarehouses: -1, MaxProducts: -1, ReportsTier: "full", SupportTier: "dedicated", HasAIAssistant: true},
}

// PlanLimits возвращает ограничения плана по id или nil для неизвестного плана.
// Таблица — данные, а не вычисление.
func (s *Store) PlanLimits(planID int) *models.PlanLimits {
	limits, ok := limitsTable[planID]
	if !ok {
		return nil
	}
	return &limits
}
