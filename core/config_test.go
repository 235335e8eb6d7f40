package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setEnv(t *testing.T, key, value string) {
	orig, ok := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("os.Setenv() failed: %v", err)
	}
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, orig)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setEnv(t, "ENV", "")
		conf := NewConfig()
		assert.Equal(t, "DEV", conf.Env)
		assert.False(t, conf.TestMode)
		assert.Equal(t, float64(1000000), conf.FeePerCredit)
		assert.Equal(t, "VND", conf.Currency)
		assert.Equal(t, 120, conf.RequiredCredits)
		assert.True(t, conf.SeedSampleData)
		assert.Equal(t, "console", conf.EmailBackend)
		from := conf.DefaultFromEmail()
		assert.Equal(t, `"VKU Student Records" <no-reply@vku.udn.vn>`, from.String())
	})

	t.Run("environment", func(t *testing.T) {
		setEnv(t, "ENV", "test")
		setEnv(t, "TEST_FEEPERCREDIT", "500000")
		setEnv(t, "TEST_SEEDSAMPLEDATA", "false")
		setEnv(t, "TEST_EMAILBACKEND", "SendGrid")
		conf := NewConfig()
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.Equal(t, float64(500000), conf.FeePerCredit)
		assert.False(t, conf.SeedSampleData)
		assert.Equal(t, "sendgrid", conf.EmailBackend)
	})
}
