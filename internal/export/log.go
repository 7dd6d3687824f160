// Package export renders a menu view into the shareable artifacts: a QR code linking to the
// public menu page and a printable PDF.
package export

import "github.com/sirupsen/logrus"

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of the export renderers
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}
