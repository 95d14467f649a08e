package main

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	log = logrus.New()
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}
