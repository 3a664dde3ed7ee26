package account

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	domainErrors "github.com/Haleralex/branchledger/internal/domain/errors"
)

func openFixture(t *testing.T, l *ledger) {
	t.Helper()
	for _, cmd := range []dtos.OpenAccountCommand{
		openCmd("money_market", "warren", "Amy", "Zhang", "1/1/1990", "3000"),
		openCmd("savings", "edison", "bob", "adams", "2/2/1985", "100"),
		openCmd("checking", "princeton", "Amy", "Zhang", "1/1/1990", "250.75"),
	} {
		if _, err := l.open.Execute(context.Background(), cmd); err != nil {
			t.Fatalf("open failed: %v", err)
		}
	}
}

func identifiers(list *dtos.AccountListDTO) []string {
	out := make([]string, len(list.Accounts))
	for i, a := range list.Accounts {
		out[i] = a.Identifier
	}
	return out
}

func TestListAccountsUseCase_Orders(t *testing.T) {
	tests := []struct {
		order string
		want  []string
	}{
		{"", []string{"500031111", "100022222", "300013333"}},
		{"branch", []string{"300013333", "100022222", "500031111"}},
		{"holder", []string{"100022222", "300013333", "500031111"}},
		{"type", []string{"300013333", "100022222", "500031111"}},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			l := newLedger("1111", "2222", "3333")
			openFixture(t, l)

			result, err := l.list.Execute(context.Background(), dtos.ListAccountsQuery{Order: tt.order})
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			got := identifiers(result)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order %q = %v, want %v", tt.order, got, tt.want)
				}
			}
		})
	}
}

func TestListAccountsUseCase_InvalidOrder(t *testing.T) {
	l := newLedger()

	_, err := l.list.Execute(context.Background(), dtos.ListAccountsQuery{Order: "balance"})

	if domainErrors.CodeOf(err) != domainErrors.CodeInvalidCommand {
		t.Errorf("Expected %s, got %v", domainErrors.CodeInvalidCommand, err)
	}
}

func TestSummaryUseCase(t *testing.T) {
	ctx := context.Background()
	l := newLedger("1111", "2222", "3333")
	openFixture(t, l)
	if _, err := l.close.Execute(ctx, dtos.CloseAccountCommand{Identifier: "100022222"}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	summary, err := l.summary.Execute(ctx)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if summary.TotalCount != 2 || summary.TotalBalance != "3250.75" || summary.ArchivedCount != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.ByType[1].Count != 0 {
		t.Errorf("Savings count = %d, want 0", summary.ByType[1].Count)
	}
}

// TestUseCases_RecordSpans - каждый use case пишет span, отказ помечается ошибкой
func TestUseCases_RecordSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(prev)

	ctx := context.Background()
	l := newLedger("1234")
	if _, err := l.open.Execute(ctx, openCmd("checking", "edison", "John", "Doe", "5/7/1995", "600")); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	_, _ = l.withdraw.Execute(ctx, dtos.WithdrawCommand{Identifier: "100011234", Amount: "1000"})

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "account.open" || spans[0].Status().Code == codes.Error {
		t.Errorf("Unexpected open span: %s %v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Name() != "account.withdraw" || spans[1].Status().Code != codes.Error {
		t.Errorf("Unexpected withdraw span: %s %v", spans[1].Name(), spans[1].Status())
	}
	if spans[1].Status().Description != domainErrors.CodeInsufficientFunds {
		t.Errorf("Status description = %q", spans[1].Status().Description)
	}
}
