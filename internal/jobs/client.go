package jobs

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront-api/internal/logging"
	"storefront-api/internal/telemetry"
)

type Client struct {
	riverClient *river.Client[pgx.Tx]
}

func NewClient(ctx context.Context, pool *pgxpool.Pool) (*Client, error) {
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return nil, err
	}

	return &Client{riverClient: riverClient}, nil
}

func (c *Client) EnqueueOrderConfirmation(ctx context.Context, orderID, orderNumber, email, total string) error {
	ctx, span := telemetry.Tracer().Start(ctx, "job.enqueue")
	defer span.End()

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	_, err := c.riverClient.Insert(ctx, OrderConfirmationArgs{
		OrderID:      orderID,
		OrderNumber:  orderNumber,
		Email:        email,
		Total:        total,
		TraceContext: carrier,
	}, nil)

	if err != nil {
		logging.Error(ctx, "failed to enqueue order confirmation", "orderId", orderID, "error", err)
		telemetry.JobsFailed.Add(ctx, 1)
		return err
	}

	telemetry.JobsEnqueued.Add(ctx, 1)
	logging.Info(ctx, "order confirmation job enqueued", "orderId", orderID)

	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return nil
}
