package service_test

import (
	"io"
	"os"
	"testing"

	"github.com/ekrowl/acwr/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}
