package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian operasional tingkat tinggi (start,
// shutdown, kegagalan fatal). Bukan pengganti request logging.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
