package logx

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatRequestLineWithColor renders the default access log line used
// when no access_log_format is configured. Extra fields append as
// sorted key=value pairs.
func FormatRequestLineWithColor(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %s | %s | %s %s",
		ts.Format("2006/01/02 - 15:04:05"),
		ColorizeStatusWith(status, color),
		latency,
		strings.TrimSpace(clientIP),
		strings.TrimSpace(method),
		path,
	)
	if len(fields) == 0 {
		return b.String()
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString(" |")
	for _, k := range keys {
		v := strings.TrimSpace(fmt.Sprintf("%v", fields[k]))
		if v == "" || v == "<nil>" {
			continue
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	return b.String()
}
