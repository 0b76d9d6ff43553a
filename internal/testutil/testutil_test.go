package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"yes":   true,
		"y":     true,
		"0":     false,
		"false": false,
		"":      false,
		"maybe": false,
	}
	for v, want := range cases {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TESTUTIL_FLAG", v)
			assert.Equal(t, want, envBool("TESTUTIL_FLAG"))
		})
	}
}

func TestRequireRedis(t *testing.T) {
	t.Setenv("TEST_REQUIRE_REDIS", "")
	t.Setenv("TEST_REQUIRE_INFRA", "")
	assert.False(t, requireRedis())

	t.Setenv("TEST_REQUIRE_INFRA", "1")
	assert.True(t, requireRedis())
}

func TestFixedTimeFunc(t *testing.T) {
	now := FixedTimeFunc(TestTime())
	assert.Equal(t, TestTime(), now())
	time.Sleep(time.Millisecond)
	assert.Equal(t, TestTime(), now())
}
