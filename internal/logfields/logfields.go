package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyJobID      = "job_id"
	KeyCategory   = "category"
	KeyPageID     = "page_id"
	KeyTitle      = "title"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"

	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyResponseSz = "response_size"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyUserAgent  = "user_agent"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func JobID(id string) slog.Attr       { return slog.String(KeyJobID, id) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func PageID(id int64) slog.Attr       { return slog.Int64(KeyPageID, id) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Method(m string) slog.Attr      { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Status(s int) slog.Attr         { return slog.Int(KeyStatus, s) }
func ResponseSize(n int64) slog.Attr { return slog.Int64(KeyResponseSz, n) }
func RemoteAddr(a string) slog.Attr  { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr  { return slog.String(KeyRequestID, id) }
func UserAgent(ua string) slog.Attr  { return slog.String(KeyUserAgent, ua) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
