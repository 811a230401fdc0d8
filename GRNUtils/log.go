package grnutils

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

/*LOGGER logger shared by the command line tools */
var LOGGER = logrus.New()

/*InitLogger configure LOGGER to write text entries on stderr */
func InitLogger(verbose bool) {
	LOGGER.SetOutput(os.Stderr)
	LOGGER.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if verbose {
		LOGGER.SetLevel(logrus.DebugLevel)
	} else {
		LOGGER.SetLevel(logrus.InfoLevel)
	}
}

/*LogTiming log the time elapsed since tStart */
func LogTiming(step string, tStart time.Time) {
	LOGGER.WithField("step", step).Infof("done in time: %f s", time.Since(tStart).Seconds())
}
