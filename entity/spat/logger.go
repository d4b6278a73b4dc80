package spat

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "spat")
