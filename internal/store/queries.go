package store

// Run queries
const (
	queryUpsertRun = `
		INSERT INTO runs (id, keyword, mode, test_type, status, return_code, stdout, stderr, error, payload, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			return_code = EXCLUDED.return_code,
			stdout = EXCLUDED.stdout,
			stderr = EXCLUDED.stderr,
			error = EXCLUDED.error,
			finished_at = EXCLUDED.finished_at`

	queryDeleteRunsBefore = `DELETE FROM runs WHERE started_at < ?`
)

var runColumns = []string{
	"id", "keyword", "mode", "test_type", "status", "return_code",
	"stdout", "stderr", "error", "payload", "started_at", "finished_at",
}
