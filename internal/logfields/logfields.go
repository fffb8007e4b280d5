package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPost       = "post"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyAggregate  = "aggregate"
	KeyTag        = "tag"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyDraft      = "draft"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Post(slug string) slog.Attr      { return slog.String(KeyPost, slug) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Aggregate(name string) slog.Attr { return slog.String(KeyAggregate, name) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Draft(d bool) slog.Attr          { return slog.Bool(KeyDraft, d) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
