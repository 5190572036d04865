package history

const schema = `
-- Classification runs, one row per sweep invocation.
-- recorded_at is unix milliseconds.
CREATE TABLE IF NOT EXISTS runs (
    id               TEXT PRIMARY KEY,
    recorded_at      INTEGER NOT NULL,
    trigger_kind     TEXT NOT NULL CHECK(trigger_kind IN ('check', 'scan', 'cleanup')),
    size_class       TEXT NOT NULL,
    files_total      INTEGER NOT NULL DEFAULT 0,
    files_flagged    INTEGER NOT NULL DEFAULT 0,
    files_skipped    INTEGER NOT NULL DEFAULT 0,
    insertions       INTEGER NOT NULL DEFAULT 0,
    deletions        INTEGER NOT NULL DEFAULT 0,
    debug_statements INTEGER NOT NULL DEFAULT 0,
    todo_markers     INTEGER NOT NULL DEFAULT 0,
    large_files      INTEGER NOT NULL DEFAULT 0,
    duplicate_names  INTEGER NOT NULL DEFAULT 0,
    duration_ms      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);
CREATE INDEX IF NOT EXISTS idx_runs_trigger ON runs(trigger_kind);
`
