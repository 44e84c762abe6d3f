package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	reminderJob *DeliveryReminderJob
	purgeJob    *ImagePurgeJob
}

func NewJobManager(reminderJob *DeliveryReminderJob, purgeJob *ImagePurgeJob) *JobManager {
	return &JobManager{
		reminderJob: reminderJob,
		purgeJob:    purgeJob,
	}
}

// StartAll starts every job. A failed start stops the jobs already running.
func (jm *JobManager) StartAll() error {
	if err := jm.reminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery reminder job: %w", err)
	}

	if err := jm.purgeJob.Start(); err != nil {
		jm.reminderJob.Stop()
		return fmt.Errorf("failed to start image purge job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
	jm.reminderJob.Stop()
}
