package indicators

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/metrics"
)

// Фиксированные резервные значения на случай недоступности источника.
// Резерв никогда не записывается в кеш: следующий вызов снова идёт в сеть,
// иначе система не восстановится после возвращения источника.
const (
	FallbackUF  = 38000
	FallbackUSD = 950
)

// Fetcher описывает источник значений UF и доллара.
type Fetcher interface {
	// Fetch возвращает текущие значения uf и dolar в песо.
	Fetch(ctx context.Context) (uf, usd float64, err error)
}

// Values значения индикаторов с моментом получения. Кеш перезаписывается
// целиком, частичных обновлений нет.
type Values struct {
	UF        float64   `json:"uf"`
	USD       float64   `json:"usd"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Service кеширует индикаторы в памяти процесса с фиксированным TTL.
type Service struct {
	fetcher Fetcher
	ttl     time.Duration
	log     *slog.Logger

	// Мьютекс сериализует обновление: при холодном кеше конкурентные
	// вызовы ждут одной выборки вместо того, чтобы дублировать её.
	mu     sync.Mutex
	cached *Values

	now func() time.Time
}

// NewService создаёт кеш индикаторов поверх источника.
func NewService(fetcher Fetcher, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// Indicators возвращает кешированные значения, пока они свежи, иначе
// выполняет одну выборку из источника. При любом сбое (сеть, статус,
// разбор) возвращаются резервные значения, не попадающие в кеш.
func (s *Service) Indicators(ctx context.Context) Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.cached != nil && now.Sub(s.cached.FetchedAt) < s.ttl {
		metrics.IndicatorCacheHitsTotal.Inc()
		return *s.cached
	}

	metrics.IndicatorFetchesTotal.Inc()
	uf, usd, err := s.fetcher.Fetch(ctx)
	if err != nil {
		metrics.IndicatorFetchErrorsTotal.Inc()
		s.log.Error("failed to fetch indicators, using fallback values", sl.Err(err))
		return Values{UF: FallbackUF, USD: FallbackUSD, FetchedAt: now}
	}

	s.cached = &Values{UF: uf, USD: usd, FetchedAt: now}
	s.log.Info("refreshed indicators",
		slog.Float64("uf", uf), slog.Float64("usd", usd))
	return *s.cached
}

// ConvertUFToCLP пересчитывает сумму в UF в песо, округляя до целого.
func (s *Service) ConvertUFToCLP(ctx context.Context, amount float64) int64 {
	return int64(math.Round(amount * s.Indicators(ctx).UF))
}

// ConvertUSDToCLP пересчитывает сумму в долларах в песо, округляя до целого.
func (s *Service) ConvertUSDToCLP(ctx context.Context, amount float64) int64 {
	return int64(math.Round(amount * s.Indicators(ctx).USD))
}
