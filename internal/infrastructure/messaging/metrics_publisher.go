package messaging

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/events"
)

// Compile-time check
var _ ports.EventPublisher = (*MetricsPublisher)(nil)

// MetricsPublisher превращает domain events в бизнес-метрики.
//
// Метрики:
// - branchledger_business_accounts_opened_total{account_type, branch}
// - branchledger_business_accounts_closed_total{account_type, closed_by}
// - branchledger_business_open_accounts
// - branchledger_business_transactions_total{kind, account_type}
// - branchledger_business_downgrades_total
type MetricsPublisher struct {
	accountsOpened *prometheus.CounterVec
	accountsClosed *prometheus.CounterVec
	openAccounts   prometheus.Gauge
	transactions   *prometheus.CounterVec
	downgrades     prometheus.Counter
}

// NewMetricsPublisher регистрирует метрики в reg.
// В тестах передаётся prometheus.NewRegistry(), в приложении - DefaultRegisterer.
func NewMetricsPublisher(reg prometheus.Registerer) *MetricsPublisher {
	factory := promauto.With(reg)

	return &MetricsPublisher{
		accountsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "branchledger",
				Subsystem: "business",
				Name:      "accounts_opened_total",
				Help:      "Total number of opened accounts",
			},
			[]string{"account_type", "branch"},
		),
		accountsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "branchledger",
				Subsystem: "business",
				Name:      "accounts_closed_total",
				Help:      "Total number of accounts moved to the archive",
			},
			[]string{"account_type", "closed_by"},
		),
		openAccounts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "branchledger",
				Subsystem: "business",
				Name:      "open_accounts",
				Help:      "Number of live accounts in the store",
			},
		),
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "branchledger",
				Subsystem: "business",
				Name:      "transactions_total",
				Help:      "Total number of successful deposits and withdrawals",
			},
			[]string{"kind", "account_type"},
		),
		downgrades: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "branchledger",
				Subsystem: "business",
				Name:      "downgrades_total",
				Help:      "Money market accounts downgraded to savings",
			},
		),
	}
}

// Publish обновляет метрики по типу события. Неизвестные события игнорируются.
func (p *MetricsPublisher) Publish(_ context.Context, event events.DomainEvent) error {
	switch e := event.(type) {
	case *events.AccountOpened:
		p.accountsOpened.WithLabelValues(e.AccountType, e.Branch).Inc()
		p.openAccounts.Inc()
	case *events.AccountClosed:
		p.accountsClosed.WithLabelValues(e.AccountType, string(e.ClosedBy)).Inc()
		p.openAccounts.Dec()
	case *events.FundsDeposited:
		p.transactions.WithLabelValues("deposit", e.AccountType).Inc()
	case *events.FundsWithdrawn:
		p.transactions.WithLabelValues("withdraw", e.AccountType).Inc()
	case *events.AccountDowngraded:
		p.downgrades.Inc()
	}
	return nil
}

// PublishBatch обновляет метрики для каждого события.
func (p *MetricsPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		_ = p.Publish(ctx, event)
	}
	return nil
}
