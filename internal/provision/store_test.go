package provision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/go-logr/logr/testr"
	"github.com/google/go-cmp/cmp"
)

const testTable = "ddns-prod-table-abc123"

func newTestGateway(t *testing.T, table *fakeTable, opts ...GatewayOption) *Gateway {
	t.Helper()
	opts = append([]GatewayOption{
		WithLogger(testr.New(t)),
		WithPollInterval(time.Millisecond),
		WithVerifyTimeout(time.Second),
	}, opts...)
	return NewGateway(table, opts...)
}

func TestGateway_RoundTrip(t *testing.T) {
	table := newFakeTable()
	g := newTestGateway(t, table)
	ctx := context.Background()

	entries := []Entry{
		{Hostname: "office", Payload: Payload{ZoneID: "Z1234567890", TTL: 300, SharedSecret: "s3cr3t"}},
		{Hostname: "home.example.com", Payload: Payload{ZoneID: "Z1", TTL: 0, SharedSecret: `with "quotes" and ünïcode`}},
	}
	for _, want := range entries {
		if err := g.Upsert(ctx, testTable, want); err != nil {
			t.Fatalf("Upsert(%s) = %v", want.Hostname, err)
		}
		got, err := g.ReadBack(ctx, testTable, want.Hostname)
		if err != nil {
			t.Fatalf("ReadBack(%s) = %v", want.Hostname, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadBack(%s) mismatch (-want +got):\n%s", want.Hostname, diff)
		}
	}
}

func TestGateway_UpsertReplaces(t *testing.T) {
	table := newFakeTable()
	g := newTestGateway(t, table)
	ctx := context.Background()

	first := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "one"}}
	second := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z2", TTL: 300, SharedSecret: "two"}}
	for _, e := range []Entry{first, second, second} {
		if err := g.Upsert(ctx, testTable, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := g.ReadBack(ctx, testTable, "office")
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Errorf("ReadBack() = %+v, want %+v", got, second)
	}
	if n := len(table.items[testTable]); n != 1 {
		t.Errorf("table holds %d items, want 1", n)
	}
}

func TestGateway_ReadBackMissing(t *testing.T) {
	g := newTestGateway(t, newFakeTable())
	_, err := g.ReadBack(context.Background(), testTable, "nobody")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("ReadBack() error = %v, want ErrRecordNotFound", err)
	}
}

func TestGateway_StoreUnavailable(t *testing.T) {
	denied := &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized to perform dynamodb:PutItem"}

	table := newFakeTable()
	table.putErr = denied
	g := newTestGateway(t, table)
	e := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "s"}}
	if err := g.Upsert(context.Background(), testTable, e); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Upsert() error = %v, want ErrStoreUnavailable", err)
	}

	table = newFakeTable()
	table.getErr = denied
	g = newTestGateway(t, table)
	if _, err := g.ReadBack(context.Background(), testTable, "office"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("ReadBack() error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := g.Verify(context.Background(), testTable, e); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Verify() error = %v, want ErrStoreUnavailable", err)
	}
	if table.gets != 2 {
		t.Errorf("Verify retried a store failure: %d reads", table.gets)
	}
}

func TestGateway_VerifyWaitsForWrite(t *testing.T) {
	table := newFakeTable()
	table.staleReads = 3
	g := newTestGateway(t, table)
	ctx := context.Background()

	want := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "s"}}
	if err := g.Upsert(ctx, testTable, want); err != nil {
		t.Fatal(err)
	}
	got, err := g.Verify(ctx, testTable, want)
	if err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	if got != want {
		t.Errorf("Verify() = %+v, want %+v", got, want)
	}
	if table.gets != 4 {
		t.Errorf("Verify() read %d times, want 4", table.gets)
	}
}

func TestGateway_VerifyTimeout(t *testing.T) {
	table := newFakeTable()
	table.staleReads = 1 << 20
	g := newTestGateway(t, table, WithVerifyTimeout(20*time.Millisecond))

	want := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "s"}}
	_, err := g.Verify(context.Background(), testTable, want)
	if !errors.Is(err, ErrVerificationTimeout) {
		t.Fatalf("Verify() error = %v, want ErrVerificationTimeout", err)
	}
}

func TestGateway_VerifyCancelled(t *testing.T) {
	table := newFakeTable()
	g := newTestGateway(t, table)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	defer cancel()

	want := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "s"}}
	_, err := g.Verify(ctx, testTable, want)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Verify() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrVerificationTimeout) {
		t.Errorf("Verify() reported a cancellation as a timeout: %v", err)
	}
}

func TestGateway_VerifyDetectsOtherWriter(t *testing.T) {
	table := newFakeTable()
	g := newTestGateway(t, table, WithVerifyTimeout(20*time.Millisecond))
	ctx := context.Background()

	theirs := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z9", TTL: 60, SharedSecret: "theirs"}}
	if err := g.Upsert(ctx, testTable, theirs); err != nil {
		t.Fatal(err)
	}
	ours := Entry{Hostname: "office", Payload: Payload{ZoneID: "Z1", TTL: 60, SharedSecret: "ours"}}
	if _, err := g.Verify(ctx, testTable, ours); !errors.Is(err, ErrVerificationTimeout) {
		t.Fatalf("Verify() error = %v, want ErrVerificationTimeout", err)
	}
}
