package analyze

import (
	"os"
	"testing"

	"atelier-studio-server/modules/common/config"
)

func TestMain(m *testing.M) {
	if _, err := config.LoadConfig(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}
