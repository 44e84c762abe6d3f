// Package jobs runs the scheduled background work of the order service
// using github.com/robfig/cron/v3.
//
// # Jobs
//
//  1. DeliveryReminderJob emits delivery_due_soon and delivery_overdue
//     notifications. Reminders are keyed by day, so several runs a day store
//     each reminder once.
//  2. ImagePurgeJob deletes stored order photos older than the retention
//     period.
//
// Schedules are six-field cron expressions (with seconds) taken from
// configuration, for example "0 0 7 * * *" for every day at 07:00.
//
// # Usage
//
//	manager := jobs.NewJobManager(reminderJob, purgeJob)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// Job failures are logged and the next scheduled run tries again.
package jobs
