package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		rec := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestLogObserver_RecordsOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithJSONFormatter(), WithOutput(&buf))

	s, err := store.New[string, string](
		store.Config{MaxSize: 1, Policy: policy.LRU},
		NewLogObserver[string, string](logger),
	)
	require.NoError(t, err)

	s.Put("a", "1")
	s.Put("b", "2")
	s.Get("a")
	s.Delete("b")

	recs := decodeRecords(t, &buf)
	require.Len(t, recs, 5)

	msgs := make([]string, len(recs))
	for i, r := range recs {
		msgs[i] = r["msg"].(string)
	}
	assert.Equal(t, []string{"PUT a: 1", "EVICT a", "PUT b: 2", "GET a: Not Found", "DELETE b"}, msgs)

	assert.Equal(t, "PUT", recs[0]["op"])
	assert.Equal(t, "a", recs[0]["key"])
	assert.Equal(t, "1", recs[0]["value"])
	assert.Equal(t, "cache", recs[0]["component"])

	assert.Equal(t, "EVICT", recs[1]["op"])
	assert.NotContains(t, recs[1], "value")

	assert.Equal(t, false, recs[3]["found"])
}

func TestLogObserver_RenderAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithJSONFormatter(), WithOutput(&buf), WithLevel(slog.LevelDebug))
	o := NewLogObserver[string, int](logger)

	o.OnRender(store.RenderEvent[string, int]{
		Policy:  policy.LFU,
		Entries: []store.Entry[string, int]{{Key: "x", Value: 1, Frequency: 1}},
	})

	recs := decodeRecords(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "cache state", recs[0]["msg"])
	assert.Equal(t, "LFU", recs[0]["policy"])
	assert.Equal(t, float64(1), recs[0]["entries"])
}

func TestMetricsObserver(t *testing.T) {
	s, err := store.New[string, string](
		store.Config{MaxSize: 2, Policy: policy.LFU},
		NewMetricsObserver[string, string](),
	)
	require.NoError(t, err)

	initialEvictions := testutil.ToFloat64(CacheEvictionsTotal)
	lfuRenders := CachePolicyRendersTotal.WithLabelValues("LFU")
	initialRenders := testutil.ToFloat64(lfuRenders)

	s.Put("a", "1")
	s.Put("b", "2")
	s.Put("c", "3")

	assert.Equal(t, initialEvictions+1, testutil.ToFloat64(CacheEvictionsTotal), "one eviction expected")
	assert.Equal(t, initialRenders+3, testutil.ToFloat64(lfuRenders))
	assert.Equal(t, float64(2), testutil.ToFloat64(CacheEntries))

	s.Delete("c")
	assert.Equal(t, float64(1), testutil.ToFloat64(CacheEntries))
}
