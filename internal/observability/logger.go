package observability

import "github.com/sirupsen/logrus"

// NewLogger builds the process-wide structured logger. JSON output so log
// aggregation can index fields.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}
