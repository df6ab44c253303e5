package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"LOJA_PIX_GO/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeEfi struct {
	body     map[string]interface{}
	response string
	detail   string
	err      error
}

func (f *fakeEfi) CreateImmediateCharge(body map[string]interface{}) (string, error) {
	f.body = body
	return f.response, f.err
}

func (f *fakeEfi) DetailCharge(txid string) (string, error) {
	return f.detail, f.err
}

func TestCreateCharge(t *testing.T) {
	api := &fakeEfi{response: `{
		"calendario": {"criacao": "2026-10-14T12:00:00Z", "expiracao": 3600},
		"txid": "7978c0c97ea847e78e8849634473c1f1",
		"loc": {"id": 789, "location": "pix.example.com/qr/v2/9d36b84f", "tipoCob": "cob"},
		"location": "pix.example.com/qr/v2/9d36b84f",
		"status": "ATIVA",
		"valor": {"original": "37.50"},
		"chave": "14057629939",
		"pixCopiaECola": "00020101021226830014BR.GOV.BCB.PIX"
	}`}
	client := newEfiClient(api, "14057629939")

	order := models.Order{ID: "7f3a9c21-5b7e-4c11-9d2a-0e8f6b1a2c3d", Total: decimal.RequireFromString("37.5")}
	charge, err := client.CreateCharge(order, Payer{CPF: "52998224725", Nome: "Fulano"})
	require.NoError(t, err)

	assert.Equal(t, "7978c0c97ea847e78e8849634473c1f1", charge.TxID)
	assert.Equal(t, order.ID, charge.IDPedido)
	assert.Equal(t, models.ChargeActive, charge.Status)
	assert.Equal(t, 3600, charge.Expiracao)
	assert.Equal(t, "pix.example.com/qr/v2/9d36b84f", charge.Location)
	assert.True(t, charge.Valor.Equal(order.Total))
	assert.Equal(t, time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC), charge.DataCriacao)

	assert.Equal(t, map[string]interface{}{"original": "37.50"}, api.body["valor"])
	assert.Equal(t, "14057629939", api.body["chave"])
	assert.Equal(t, map[string]interface{}{"cpf": "52998224725", "nome": "Fulano"}, api.body["devedor"])
}

func TestCreateChargeInvalidResponse(t *testing.T) {
	client := newEfiClient(&fakeEfi{response: `{"status":"ATIVA"}`}, "k")
	_, err := client.CreateCharge(models.Order{Total: decimal.NewFromInt(1)}, Payer{})
	assert.ErrorIs(t, err, ErrInvalidResponse)

	client = newEfiClient(&fakeEfi{response: `não é json`}, "k")
	_, err = client.CreateCharge(models.Order{Total: decimal.NewFromInt(1)}, Payer{})
	assert.ErrorIs(t, err, ErrInvalidResponse)

	boom := errors.New("timeout")
	client = newEfiClient(&fakeEfi{err: boom}, "k")
	_, err = client.CreateCharge(models.Order{Total: decimal.NewFromInt(1)}, Payer{})
	assert.ErrorIs(t, err, boom)
}

func TestChargeStatus(t *testing.T) {
	client := newEfiClient(&fakeEfi{detail: `{"status":"CONCLUIDA"}`}, "k")
	status, err := client.ChargeStatus("tx")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeCompleted, status)

	client = newEfiClient(&fakeEfi{detail: `{}`}, "k")
	_, err = client.ChargeStatus("tx")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

type scriptedChecker struct {
	mu       sync.Mutex
	statuses []string
	calls    int
}

func (s *scriptedChecker) ChargeStatus(txid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.statuses) == 0 {
		return models.ChargeActive, nil
	}
	st := s.statuses[0]
	s.statuses = s.statuses[1:]
	if st == "erro" {
		return "", errors.New("falha de rede")
	}
	return st, nil
}

type recordingStore struct {
	mu        sync.Mutex
	completed []string
	expired   []string
}

func (r *recordingStore) CompleteCharge(ctx context.Context, txid string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, txid)
	return nil
}

func (r *recordingStore) ExpireCharge(ctx context.Context, txid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired = append(r.expired, txid)
	return nil
}

func (r *recordingStore) expiredCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expired)
}

var fastPhases = []Phase{{Interval: time.Millisecond, Attempts: 2}, {Interval: time.Millisecond, Attempts: 2}}

func TestMonitorCompletes(t *testing.T) {
	checker := &scriptedChecker{statuses: []string{"ATIVA", "erro", "CONCLUIDA"}}
	store := &recordingStore{}
	m := NewMonitor(checker, store, zap.NewNop(), fastPhases)

	status, err := m.Watch(context.Background(), "tx1")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeCompleted, status)
	assert.Equal(t, []string{"tx1"}, store.completed)
	assert.Empty(t, store.expired)
	assert.Equal(t, 3, checker.calls)
}

func TestMonitorExpires(t *testing.T) {
	checker := &scriptedChecker{}
	store := &recordingStore{}
	m := NewMonitor(checker, store, zap.NewNop(), fastPhases)

	status, err := m.Watch(context.Background(), "tx2")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeExpired, status)
	assert.Equal(t, []string{"tx2"}, store.expired)
	assert.Equal(t, 4, checker.calls)
}

func TestMonitorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &recordingStore{}
	m := NewMonitor(&scriptedChecker{}, store, zap.NewNop(), []Phase{{Interval: time.Hour, Attempts: 5}})

	_, err := m.Watch(ctx, "tx3")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.expired)
}

func TestNewMonitorDefaultPhases(t *testing.T) {
	m := NewMonitor(&scriptedChecker{}, &recordingStore{}, zap.NewNop(), nil)
	assert.Equal(t, DefaultPhases, m.phases)
}

func TestMonitorStart(t *testing.T) {
	store := &recordingStore{}
	m := NewMonitor(&scriptedChecker{}, store, zap.NewNop(), fastPhases)

	m.Start(context.Background(), "tx4")
	m.Start(context.Background(), "tx5")

	assert.Eventually(t, func() bool { return store.expiredCount() == 2 }, time.Second, 5*time.Millisecond)
}
