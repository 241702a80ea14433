package config

type Config struct {
	// CronScheduleIntegritySweep runs the orphaned-tag / missing-owner report.
	CronScheduleIntegritySweep string `env:"CRON_SCHEDULE_INTEGRITY_SWEEP" envDefault:"0 */30 * * * *"`
}
