package moqt

import "github.com/sirupsen/logrus"

var lg = logrus.New()

// SetLogger replaces the package-level logger used by Endpoint and Session.
func SetLogger(l *logrus.Logger) {
	lg = l
}
