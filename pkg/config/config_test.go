package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// t.Setenvを使うためこのファイルのテストは並列実行しない。

func TestGetString(t *testing.T) {
	t.Setenv("BOARD_TEST_STRING", "value")
	assert.Equal(t, "value", GetString("BOARD_TEST_STRING", "fallback"))

	t.Setenv("BOARD_TEST_STRING", "")
	assert.Equal(t, "fallback", GetString("BOARD_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("BOARD_TEST_STRING_UNSET", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("BOARD_TEST_INT", "42")
	assert.Equal(t, 42, GetInt("BOARD_TEST_INT", 1))

	t.Setenv("BOARD_TEST_INT", "abc")
	assert.Equal(t, 1, GetInt("BOARD_TEST_INT", 1))
}

func TestGetBool(t *testing.T) {
	t.Setenv("BOARD_TEST_BOOL", "true")
	assert.True(t, GetBool("BOARD_TEST_BOOL", false))

	t.Setenv("BOARD_TEST_BOOL", "yes")
	assert.False(t, GetBool("BOARD_TEST_BOOL", false))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("BOARD_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetDuration("BOARD_TEST_DURATION", time.Minute))

	t.Setenv("BOARD_TEST_DURATION", "90")
	assert.Equal(t, time.Minute, GetDuration("BOARD_TEST_DURATION", time.Minute))
}

func TestGetList(t *testing.T) {
	t.Setenv("BOARD_TEST_LIST", " http://a.example , ,http://b.example")
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, GetList("BOARD_TEST_LIST", nil))

	t.Setenv("BOARD_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetList("BOARD_TEST_LIST", []string{"x"}))
}
