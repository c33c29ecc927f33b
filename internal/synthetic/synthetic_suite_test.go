package synthetic_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSynthetic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Synthetic Suite")
}
