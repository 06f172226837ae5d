package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-logr/logr"
)

const (
	DefaultVerifyTimeout = 10 * time.Second
	DefaultPollInterval  = 250 * time.Millisecond
)

// TableAPI is the subset of the DynamoDB client the gateway needs.
type TableAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// item is the stored shape of an Entry.
type item struct {
	Hostname string `dynamodbav:"hostname"`
	Data     string `dynamodbav:"data"`
}

type itemKey struct {
	Hostname string `dynamodbav:"hostname"`
}

// Gateway writes and reads records in a hostname table.
type Gateway struct {
	api           TableAPI
	log           logr.Logger
	verifyTimeout time.Duration
	pollInterval  time.Duration
}

type GatewayOption func(*Gateway)

func WithVerifyTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.verifyTimeout = d
		}
	}
}

func WithPollInterval(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.pollInterval = d
		}
	}
}

func WithLogger(log logr.Logger) GatewayOption {
	return func(g *Gateway) {
		g.log = log
	}
}

func NewGateway(api TableAPI, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		api:           api,
		log:           logr.Discard(),
		verifyTimeout: DefaultVerifyTimeout,
		pollInterval:  DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Upsert replaces whatever is stored under entry.Hostname with entry.
func (g *Gateway) Upsert(ctx context.Context, table string, entry Entry) error {
	data, err := entry.Payload.Encode()
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	av, err := attributevalue.MarshalMap(item{Hostname: entry.Hostname, Data: data})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	_, err = g.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("%w: writing %s to %s: %s", ErrStoreUnavailable, entry.Hostname, table, describeAPIError(err))
	}
	g.log.V(1).Info("record written", "table", table, "hostname", entry.Hostname)
	return nil
}

// ReadBack fetches the record stored under hostname with a strongly
// consistent read.
func (g *Gateway) ReadBack(ctx context.Context, table, hostname string) (Entry, error) {
	key, err := attributevalue.MarshalMap(itemKey{Hostname: hostname})
	if err != nil {
		return Entry{}, fmt.Errorf("encoding key: %w", err)
	}

	out, err := g.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("%w: reading %s from %s: %s", ErrStoreUnavailable, hostname, table, describeAPIError(err))
	}
	if len(out.Item) == 0 {
		return Entry{}, fmt.Errorf("%w: %s in %s", ErrRecordNotFound, hostname, table)
	}

	var stored item
	if err := attributevalue.UnmarshalMap(out.Item, &stored); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	payload, err := DecodePayload(stored.Data)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Hostname: stored.Hostname, Payload: payload}, nil
}

// Verify polls ReadBack until the stored record equals want or the verify
// timeout elapses. Store failures end the wait immediately.
func (g *Gateway) Verify(ctx context.Context, table string, want Entry) (Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, g.verifyTimeout)
	defer cancel()

	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	attempts := 0
	var last error
	for {
		attempts++
		got, err := g.ReadBack(ctx, table, want.Hostname)
		switch {
		case err == nil && got == want:
			g.log.V(1).Info("record verified", "table", table, "hostname", want.Hostname, "attempts", attempts)
			return got, nil
		case err == nil:
			last = errors.New("stored record differs from the one written")
		case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrCorruptRecord):
			last = err
		case ctx.Err() != nil:
			// the read was cut short by the deadline, not by the store
		default:
			return Entry{}, err
		}

		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return Entry{}, ctx.Err()
			}
			if last == nil {
				last = ctx.Err()
			}
			return Entry{}, fmt.Errorf("%w: %s in %s after %d attempts: %v", ErrVerificationTimeout, want.Hostname, table, attempts, last)
		case <-ticker.C:
		}
	}
}
