package catalog

import (
	"context"
	"log/slog"

	"github.com/ccastillovega/inventario-portal/internal/models"
)

// AssignPlanToUser назначает пользователю план и upsert-ом обновляет его
// подписку: существующая запись переписывается на новый план, иначе
// добавляется новая. Если назначаемый план не freemium, пробный период
// пользователя сбрасывается. Возвращает false, если пользователь не найден.
func (s *Store) AssignPlanToUser(ctx context.Context, userID, planID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[models.User](ctx, s, keyUsers)
	plans := loadCollection[models.Plan](ctx, s, keyPlans)

	var plan *models.Plan
	for i := range plans {
		if plans[i].ID == planID {
			plan = &plans[i]
			break
		}
	}

	found := false
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		found = true
		users[i].PlanID = &planID
		if plan != nil && !plan.IsFreemium {
			users[i].TrialActive = false
			users[i].TrialStartDate = nil
			users[i].TrialEndDate = nil
		}
		break
	}
	if !found {
		return false
	}
	saveCollection(ctx, s, keyUsers, users)

	now := s.now()
	subs := loadCollection[models.Subscription](ctx, s, keySubscriptions)
	updated := false
	for i := range subs {
		if subs[i].UserID != userID {
			continue
		}
		subs[i].PlanID = planID
		subs[i].LastUpdatedDate = now
		subs[i].TrialActive = false
		updated = true
		break
	}
	if !updated {
		subs = append(subs, models.Subscription{
			ID:              nextID(subs, func(sub models.Subscription) int { return sub.ID }),
			UserID:          userID,
			PlanID:          planID,
			StartDate:       now,
			LastUpdatedDate: now,
			TrialActive:     false,
			TrialConsumed:   false,
		})
	}
	saveCollection(ctx, s, keySubscriptions, subs)

	s.log.Info("assigned plan to user",
		slog.Int("user_id", userID), slog.Int("plan_id", planID))
	return true
}

// UserPlan перечитывает пользователей и планы и возвращает план,
// назначенный пользователю, либо nil, если план не назначен
// или пользователь не найден.
func (s *Store) UserPlan(ctx context.Context, userID int) *models.Plan {
	user := s.UserByID(ctx, userID)
	if user == nil || user.PlanID == nil {
		return nil
	}
	return s.PlanByID(ctx, *user.PlanID)
}

// ListSubscriptions перечитывает коллекцию подписок и возвращает её копию.
func (s *Store) ListSubscriptions(ctx context.Context) []models.Subscription {
	subs := loadCollection[models.Subscription](ctx, s, keySubscriptions)
	result := make([]models.Subscription, len(subs))
	copy(result, subs)
	return result
}
