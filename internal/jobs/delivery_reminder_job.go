package jobs

import (
	"context"
	"log/slog"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

type reminderSender interface {
	Handle(ctx context.Context, cmd commands.SendDeliveryRemindersCommand) (int, error)
}

// DeliveryReminderJob warns coordinators and suppliers about orders that are
// due soon or overdue.
type DeliveryReminderJob struct {
	handler    reminderSender
	actor      kernel.Actor
	windowDays int
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeliveryReminderJob schedules the reminder run on spec, a six-field
// cron expression with seconds.
func NewDeliveryReminderJob(
	handler reminderSender,
	actor kernel.Actor,
	windowDays int,
	spec string,
	logger *slog.Logger,
) *DeliveryReminderJob {
	return &DeliveryReminderJob{
		handler:    handler,
		actor:      actor,
		windowDays: windowDays,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "delivery_reminder_job"),
	}
}

func (j *DeliveryReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery reminder job started", "spec", j.spec)
	return nil
}

// Run performs one reminder pass.
func (j *DeliveryReminderJob) Run(ctx context.Context) {
	cmd, err := commands.NewSendDeliveryRemindersCommand(j.actor, j.windowDays)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery reminder job misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery reminder job failed", "error", err)
		return
	}
	if sent > 0 {
		j.logger.InfoContext(ctx, "Delivery reminders sent", "count", sent)
	}
}

func (j *DeliveryReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery reminder job stopped")
}
