package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, name, role, price, currency, guest_rating, raw)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  role         = VALUES(role),
  price        = VALUES(price),
  currency     = VALUES(currency),
  guest_rating = VALUES(guest_rating),
  raw          = VALUES(raw),
  updated_at   = CURRENT_TIMESTAMP
`

const deleteBreakdownsSQL = `DELETE FROM sentiment_breakdowns WHERE property_id = ?`

const insertBreakdownsPrefix = "INSERT INTO sentiment_breakdowns\n  (property_id, category, rating, positive, neutral, negative, description)\nVALUES "

const insertSnapshotSQL = `INSERT INTO sentiment_snapshots (property_id) VALUES (?)`

// Freezes the property's current breakdown rows under the new snapshot id.
const copySnapshotRowsSQL = `
INSERT INTO snapshot_breakdowns
  (snapshot_id, category, rating, positive, neutral, negative)
SELECT ?, category, rating, positive, neutral, negative
FROM sentiment_breakdowns
WHERE property_id = ?
`

// Note: COUNT is a MySQL keyword; keep the column quoted everywhere.
const insertMentionsPrefix = "INSERT INTO guest_mentions\n  (property_id, keyword, polarity, `count`)\nVALUES "

const insertMentionsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  `count` = VALUES(`count`)\n"

const insertMissSQL = `
INSERT INTO scan_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getPropertySQL = `
SELECT id, name, role, price, currency, guest_rating, raw
FROM properties
WHERE id = ?
`

const getBreakdownsSQL = `
SELECT property_id, category, rating, positive, neutral, negative, description
FROM sentiment_breakdowns
WHERE property_id = ?
ORDER BY id
`

// Newest scans first; the sweep only loads a shallow history because older
// snapshots never win the rating backfill over a newer usable one.
const getSnapshotsSQL = `
SELECT id, recorded_at
FROM sentiment_snapshots
WHERE property_id = ?
ORDER BY recorded_at DESC, id DESC
LIMIT ?
`

const getSnapshotRowsSQL = `
SELECT category, rating, positive, neutral, negative
FROM snapshot_breakdowns
WHERE snapshot_id = ?
ORDER BY id
`

const getMentionsSQL = "SELECT property_id, keyword, polarity, `count`\nFROM guest_mentions\nWHERE property_id = ?\nORDER BY id"

const getCompetitorIDsSQL = `
SELECT competitor_id
FROM competitor_sets
WHERE target_id = ?
ORDER BY position, competitor_id
`

// Everything worth scanning: known properties plus both sides of every
// configured competitor set, so freshly seeded sets get picked up before
// their first property row exists.
const listScanTargetsSQL = `
SELECT id FROM properties
UNION
SELECT target_id FROM competitor_sets
UNION
SELECT competitor_id FROM competitor_sets
ORDER BY id
`
