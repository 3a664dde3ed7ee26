package account

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/events"
	"github.com/Haleralex/branchledger/internal/infrastructure/persistence/memory"
)

// ============================================
// Recording Event Publisher
// ============================================

// recordingPublisher - mock с группировкой по типам событий
type recordingPublisher struct {
	mu           sync.Mutex
	published    []events.DomainEvent
	eventsByType map[string][]events.DomainEvent
	err          error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{eventsByType: make(map[string][]events.DomainEvent)}
}

func (m *recordingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.published = append(m.published, event)
	m.eventsByType[event.EventType()] = append(m.eventsByType[event.EventType()], event)
	return m.err
}

func (m *recordingPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		_ = m.Publish(ctx, event)
	}
	return m.err
}

func (m *recordingPublisher) eventsOf(eventType string) []events.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.DomainEvent{}, m.eventsByType[eventType]...)
}

// assertEventCount проверяет количество событий определённого типа
func (m *recordingPublisher) assertEventCount(t *testing.T, eventType string, expected int) {
	t.Helper()
	if got := len(m.eventsOf(eventType)); got != expected {
		t.Errorf("Expected %d events of type '%s', got %d", expected, eventType, got)
	}
}

// ============================================
// Fixtures
// ============================================

// fixedSerials отдаёт серийные номера по кругу
type fixedSerials struct {
	serials []string
	next    int
}

func (f *fixedSerials) NextSerial() string {
	s := f.serials[f.next%len(f.serials)]
	f.next++
	return s
}

var testToday = time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testToday }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ledger собирает все use cases поверх одного хранилища в памяти
type ledger struct {
	store     *memory.AccountStore
	archive   *memory.Archive
	publisher *recordingPublisher

	open        *OpenAccountUseCase
	close       *CloseAccountUseCase
	closeHolder *CloseHolderUseCase
	deposit     *DepositUseCase
	withdraw    *WithdrawUseCase
	list        *ListAccountsUseCase
	listArchive *ListArchiveUseCase
	summary     *SummaryUseCase
}

func newLedger(serials ...string) *ledger {
	archive := memory.NewArchive()
	store := memory.NewAccountStore(archive)
	uow := memory.NewUnitOfWork()
	publisher := newRecordingPublisher()
	logger := discardLogger()

	if len(serials) == 0 {
		serials = []string{"1234"}
	}

	return &ledger{
		store:       store,
		archive:     archive,
		publisher:   publisher,
		open:        NewOpenAccountUseCase(store, &fixedSerials{serials: serials}, publisher, uow, testClock, logger),
		close:       NewCloseAccountUseCase(store, publisher, uow, logger),
		closeHolder: NewCloseHolderUseCase(store, publisher, uow, testClock, logger),
		deposit:     NewDepositUseCase(store, publisher, uow, logger),
		withdraw:    NewWithdrawUseCase(store, publisher, uow, logger),
		list:        NewListAccountsUseCase(store, uow, logger),
		listArchive: NewListArchiveUseCase(archive, uow),
		summary:     NewSummaryUseCase(store, archive, uow),
	}
}

func (l *ledger) count(t *testing.T) int {
	t.Helper()
	n, err := l.store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	return n
}

// assertRejected проверяет код и сообщение отказа
func assertRejected(t *testing.T, err error, code, message string) {
	t.Helper()
	de, ok := domainErrors.AsDomainError(err)
	if !ok {
		t.Fatalf("Expected DomainError, got %v", err)
	}
	if de.Code != code {
		t.Errorf("Expected code %s, got %s", code, de.Code)
	}
	if de.Message != message {
		t.Errorf("Expected message %q, got %q", message, de.Message)
	}
}
