package live

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "live")
