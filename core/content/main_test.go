package content

import (
	"testing"

	"go.uber.org/goleak"
)

// uploads and metadata reads run on worker goroutines, none may outlive a test
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
