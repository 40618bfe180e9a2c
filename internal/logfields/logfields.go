package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoute      = "route"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyName       = "name"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyQuery      = "query"
	KeyInquiryID  = "inquiry_id"
	KeyKind       = "kind"
	KeySubject    = "subject"
	KeyPostID     = "post_id"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyError      = "error"
)

func Route(p string) slog.Attr        { return slog.String(KeyRoute, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Stage(s string) slog.Attr        { return slog.String(KeyStage, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Query(q string) slog.Attr        { return slog.String(KeyQuery, q) }
func InquiryID(id string) slog.Attr   { return slog.String(KeyInquiryID, id) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func PostID(id int) slog.Attr         { return slog.Int(KeyPostID, id) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
