package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pos-checkout/store"
)

func TestParseItem(t *testing.T) {
	name, qty, err := parseItem("Scratch Card=3")
	require.NoError(t, err)
	assert.Equal(t, "Scratch Card", name)
	assert.Equal(t, 3, qty)

	for _, bad := range []string{"Cheese", "=2", "Cheese=two"} {
		_, _, err := parseItem(bad)
		assert.Error(t, err, bad)
	}
}

func TestRunCheckoutErrors(t *testing.T) {
	l := zaptest.NewLogger(t)
	st := store.SampleCatalog(time.Now())

	err := runCheckout(config{customer: "Kerolos", balance: "1000",
		items: itemFlags{"Cheese=2", "Biscuits=1", "Scratch Card=1", "TV=1"}}, st, l, io.Discard)
	require.Error(t, err)
	assert.Equal(t, "Insufficient customer balance.", err.Error())

	err = runCheckout(config{customer: "Kerolos", balance: "2000", items: itemFlags{"Biscuits=6"}}, st, l, io.Discard)
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock.", err.Error())

	err = runCheckout(config{customer: "Kerolos", balance: "2000", items: itemFlags{"Caviar=1"}}, st, l, io.Discard)
	assert.Error(t, err)
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"POS_DSN", "POS_CATALOG", "POS_ADDR", "POS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestRunDefaultCheckout(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-log-level", "error"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "\n** Shipment notice **\n"), stdout.String())
	assert.Contains(t, stdout.String(), "Total package weight 1.1kg\n")
	assert.True(t, strings.HasSuffix(stdout.String(), "Amount\t411\n"), stdout.String())
}

func TestRunReportsErrorLine(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-balance", "1000", "-item", "Cheese=2", "-item", "TV=1"}, "Error: Insufficient customer balance.\n"},
		{[]string{"-item", "TV=4"}, "Error: Insufficient stock.\n"},
	}
	for _, tc := range cases {
		var stdout, stderr bytes.Buffer
		code := run(append([]string{"-log-level", "error"}, tc.args...), &stdout, &stderr)
		assert.Equal(t, 1, code, tc.args)
		assert.Equal(t, tc.want, stderr.String(), tc.args)
		assert.Empty(t, stdout.String(), tc.args)
	}
}

func TestRunCatalogFailure(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-log-level", "error", "-catalog", t.TempDir() + "/missing.yaml"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), stderr.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
	assert.Empty(t, stdout.String())
}
