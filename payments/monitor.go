package payments

import (
	"context"
	"time"

	"go.uber.org/zap"

	"LOJA_PIX_GO/models"
)

// StatusChecker consulta o status de uma cobrança pelo txid
type StatusChecker interface {
	ChargeStatus(txid string) (string, error)
}

// ChargeUpdater grava o desfecho da cobrança
type ChargeUpdater interface {
	CompleteCharge(ctx context.Context, txid string, paidAt time.Time) error
	ExpireCharge(ctx context.Context, txid string) error
}

// Phase é uma etapa de verificação: Attempts consultas separadas por Interval
type Phase struct {
	Interval time.Duration
	Attempts int
}

// DefaultPhases: 10 consultas a cada 30s e depois 21 a cada minuto
var DefaultPhases = []Phase{
	{Interval: 30 * time.Second, Attempts: 10},
	{Interval: time.Minute, Attempts: 21},
}

// Monitor acompanha cobranças até a conclusão ou o fim das tentativas
type Monitor struct {
	checker StatusChecker
	store   ChargeUpdater
	logger  *zap.Logger
	phases  []Phase
	now     func() time.Time
}

func NewMonitor(checker StatusChecker, store ChargeUpdater, logger *zap.Logger, phases []Phase) *Monitor {
	if len(phases) == 0 {
		phases = DefaultPhases
	}
	return &Monitor{checker: checker, store: store, logger: logger, phases: phases, now: time.Now}
}

// Start roda Watch em segundo plano
func (m *Monitor) Start(ctx context.Context, txid string) {
	go func() {
		if _, err := m.Watch(ctx, txid); err != nil {
			m.logger.Warn("monitoramento do PIX interrompido", zap.String("txid", txid), zap.Error(err))
		}
	}()
}

// Watch consulta o status até CONCLUIDA (marca o pedido como pago) ou até esgotar as
// tentativas (marca a cobrança como VENCIDO). Devolve o status final gravado.
func (m *Monitor) Watch(ctx context.Context, txid string) (string, error) {
	log := m.logger.With(zap.String("txid", txid))

	for _, phase := range m.phases {
		for i := 0; i < phase.Attempts; i++ {
			status, err := m.checker.ChargeStatus(txid)
			if err != nil {
				log.Warn("erro ao consultar status PIX", zap.Int("tentativa", i+1), zap.Error(err))
			} else if status == models.ChargeCompleted {
				if err := m.store.CompleteCharge(ctx, txid, m.now()); err != nil {
					return "", err
				}
				log.Info("pagamento PIX confirmado")
				return models.ChargeCompleted, nil
			}

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(phase.Interval):
			}
		}
	}

	log.Info("verificações encerradas sem pagamento concluído")
	if err := m.store.ExpireCharge(ctx, txid); err != nil {
		return "", err
	}
	return models.ChargeExpired, nil
}
