package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("info")
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m), l)
		out = append(out, m)
	}
	return out
}

func TestWarn_WritesJSONWithError(t *testing.T) {
	buf := capture(t)
	Warn("search.vendor_failed", errors.New("timeout"), map[string]any{"vendor": "MSY"})

	recs := lines(t, buf)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "warn", r["level"])
	assert.Equal(t, "search.vendor_failed", r["action"])
	assert.Equal(t, "timeout", r["err"])
	assert.Equal(t, map[string]any{"vendor": "MSY"}, r["fields"])
	assert.NotEmpty(t, r["ts"])
}

func TestAuditAndSecurity_AreTagged(t *testing.T) {
	buf := capture(t)
	Audit(nil, "cart.snapshot", nil)
	Security(nil, "csrf.reject", nil)

	recs := lines(t, buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "audit", recs[0]["kind"])
	assert.Equal(t, "info", recs[0]["level"])
	assert.Equal(t, "security", recs[1]["kind"])
	assert.Equal(t, "warn", recs[1]["level"])
}

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")
	Event("ignored", nil)
	Debug("ignored", nil)
	Warn("kept", nil, nil)

	recs := lines(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0]["action"])
}
