package pendulum_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPendulum(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pendulum Suite")
}
