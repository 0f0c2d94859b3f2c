package gamemna

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	calibrationPath string
	auditLogPath    string
}

// WithCalibration sets the path to a calibration YAML file.
// Without it the built-in calibration is used.
func WithCalibration(path string) Option {
	return func(c *clientConfig) { c.calibrationPath = path }
}

// WithAuditLog records every evaluation to a hash-chained JSONL log.
func WithAuditLog(path string) Option {
	return func(c *clientConfig) { c.auditLogPath = path }
}
