package jobs

import (
	"context"
	"log/slog"

	"jewelryorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type imagePurger interface {
	Handle(ctx context.Context, cmd commands.PurgeImagesCommand) (int, error)
}

// ImagePurgeJob deletes order photos past the retention period.
type ImagePurgeJob struct {
	handler       imagePurger
	retentionDays int
	spec          string
	cron          *cron.Cron
	logger        *slog.Logger
}

func NewImagePurgeJob(handler imagePurger, retentionDays int, spec string, logger *slog.Logger) *ImagePurgeJob {
	return &ImagePurgeJob{
		handler:       handler,
		retentionDays: retentionDays,
		spec:          spec,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "image_purge_job"),
	}
}

func (j *ImagePurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Image purge job started", "spec", j.spec)
	return nil
}

func (j *ImagePurgeJob) Run(ctx context.Context) {
	cmd, err := commands.NewPurgeImagesCommand(j.retentionDays)
	if err != nil {
		j.logger.ErrorContext(ctx, "Image purge job misconfigured", "error", err)
		return
	}

	purged, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Image purge job failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Images purged", "count", purged, "retention_days", j.retentionDays)
}

func (j *ImagePurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Image purge job stopped")
}
