package jobs

import (
	"context"

	"github.com/riverqueue/river"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"storefront-api/internal/logging"
	"storefront-api/internal/mail"
	"storefront-api/internal/telemetry"
)

type OrderConfirmationArgs struct {
	OrderID      string            `json:"order_id"`
	OrderNumber  string            `json:"order_number"`
	Email        string            `json:"email"`
	Total        string            `json:"total"`
	TraceContext map[string]string `json:"trace_context"`
}

func (OrderConfirmationArgs) Kind() string { return "order_confirmation" }

type OrderConfirmationWorker struct {
	river.WorkerDefaults[OrderConfirmationArgs]
	mailer *mail.Mailer
}

func NewOrderConfirmationWorker(mailer *mail.Mailer) *OrderConfirmationWorker {
	return &OrderConfirmationWorker{mailer: mailer}
}

func (w *OrderConfirmationWorker) Work(ctx context.Context, job *river.Job[OrderConfirmationArgs]) error {
	parentCtx := otel.GetTextMapPropagator().Extract(
		context.Background(),
		propagation.MapCarrier(job.Args.TraceContext),
	)

	ctx, span := telemetry.Tracer().Start(parentCtx, "job.order_confirmation")
	defer span.End()

	logging.Info(ctx, "processing order confirmation job",
		"orderId", job.Args.OrderID,
		"orderNumber", job.Args.OrderNumber,
	)

	if err := w.mailer.SendOrderConfirmation(ctx, job.Args.Email, job.Args.OrderNumber, job.Args.Total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send confirmation email")
		logging.Error(ctx, "failed to send confirmation email",
			"orderId", job.Args.OrderID, "error", err)
		telemetry.JobsFailed.Add(ctx, 1)
		return err
	}

	logging.Info(ctx, "order confirmation sent", "orderId", job.Args.OrderID)
	telemetry.JobsCompleted.Add(ctx, 1)

	return nil
}
