package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ratewatch/internal/domain"
)

// Snapshots loaded per sweep. Backfill wants the newest usable scan, so a
// shallow window is enough; anything older is archive, not signal.
const sweepHistoryLimit = 6

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertPropertySQL,
		h.ID,
		h.Name,
		string(h.Role),
		valF64(h.Price),
		valStr(h.Currency),
		valF64(h.GuestRating),
		valJSON(h.RawJSON),
	)
	return err
}

// ReplaceBreakdowns swaps the property's current scan wholesale. Readers
// never see a half-replaced scan; both statements ride one transaction.
func (r *Repo) ReplaceBreakdowns(ctx context.Context, propertyID int64, bs []domain.SentimentBreakdown) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteBreakdownsSQL, propertyID); err != nil {
		return err
	}
	if len(bs) > 0 {
		values := make([]string, 0, len(bs))
		args := make([]any, 0, len(bs)*7)
		for _, b := range bs {
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args,
				propertyID,
				b.Category,
				valF64(b.Rating),
				valInt(b.Positive),
				valInt(b.Neutral),
				valInt(b.Negative),
				valStr(b.Description),
			)
		}
		if _, err := tx.ExecContext(ctx, insertBreakdownsPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SnapshotBreakdowns freezes the current scan into history. A property with
// no current rows produces no snapshot; empty history entries would only pad
// the backfill walk.
func (r *Repo) SnapshotBreakdowns(ctx context.Context, propertyID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertSnapshotSQL, propertyID)
	if err != nil {
		return err
	}
	snapID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	copied, err := tx.ExecContext(ctx, copySnapshotRowsSQL, snapID, propertyID)
	if err != nil {
		return err
	}
	if n, _ := copied.RowsAffected(); n == 0 {
		return tx.Rollback()
	}
	return tx.Commit()
}

func (r *Repo) UpsertMentions(ctx context.Context, ms []domain.GuestMention) error {
	if len(ms) == 0 {
		return nil
	}
	values := make([]string, 0, len(ms))
	args := make([]any, 0, len(ms)*4)
	for _, m := range ms {
		values = append(values, "(?,?,?,?)")
		args = append(args,
			m.PropertyID,
			m.Keyword,
			string(m.Polarity),
			m.Count,
		)
	}
	sqlStr := insertMentionsPrefix + strings.Join(values, ",") + insertMentionsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetSweep(ctx context.Context, propertyID int64) (domain.PropertySweep, error) {
	h, err := r.getHotel(ctx, propertyID)
	if err != nil {
		return domain.PropertySweep{}, err
	}
	sweep := domain.PropertySweep{Hotel: h}
	if sweep.Breakdowns, err = r.getBreakdowns(ctx, propertyID); err != nil {
		return domain.PropertySweep{}, err
	}
	if sweep.History, err = r.getHistory(ctx, propertyID); err != nil {
		return domain.PropertySweep{}, err
	}
	if sweep.Mentions, err = r.getMentions(ctx, propertyID); err != nil {
		return domain.PropertySweep{}, err
	}
	return sweep, nil
}

func (r *Repo) GetCompetitiveSet(ctx context.Context, targetID int64) (domain.CompetitiveSet, error) {
	target, err := r.GetSweep(ctx, targetID)
	if err != nil {
		return domain.CompetitiveSet{}, err
	}
	set := domain.CompetitiveSet{Target: target}

	ids, err := r.competitorIDs(ctx, targetID)
	if err != nil {
		return domain.CompetitiveSet{}, err
	}
	for _, cid := range ids {
		sweep, err := r.GetSweep(ctx, cid)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // configured but not scanned yet
			}
			return domain.CompetitiveSet{}, err
		}
		set.Competitors = append(set.Competitors, sweep)
	}
	return set, nil
}

func (r *Repo) ListScanTargets(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, listScanTargetsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repo) getHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getPropertySQL, id)

	var h domain.Hotel
	var role string
	var price, rating sql.NullFloat64
	var currency sql.NullString
	var raw []byte

	if err := row.Scan(&h.ID, &h.Name, &role, &price, &currency, &rating, &raw); err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	h.Role = domain.HotelRole(role)
	if price.Valid {
		p := price.Float64
		h.Price = &p
	}
	if currency.Valid {
		c := currency.String
		h.Currency = &c
	}
	if rating.Valid {
		g := rating.Float64
		h.GuestRating = &g
	}
	if len(raw) > 0 {
		h.RawJSON = append([]byte(nil), raw...)
	}
	return h, nil
}

func (r *Repo) getBreakdowns(ctx context.Context, id int64) ([]domain.SentimentBreakdown, error) {
	rows, err := r.db.QueryContext(ctx, getBreakdownsSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SentimentBreakdown
	for rows.Next() {
		var b domain.SentimentBreakdown
		var rating sql.NullFloat64
		var pos, neu, neg sql.NullInt64
		var desc sql.NullString
		if err := rows.Scan(&b.PropertyID, &b.Category, &rating, &pos, &neu, &neg, &desc); err != nil {
			return nil, err
		}
		if rating.Valid {
			f := rating.Float64
			b.Rating = &f
		}
		if pos.Valid {
			n := int(pos.Int64)
			b.Positive = &n
		}
		if neu.Valid {
			n := int(neu.Int64)
			b.Neutral = &n
		}
		if neg.Valid {
			n := int(neg.Int64)
			b.Negative = &n
		}
		if desc.Valid {
			d := desc.String
			b.Description = &d
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) getHistory(ctx context.Context, id int64) ([]domain.SentimentSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, getSnapshotsSQL, id, sweepHistoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapIDs []int64
	var snaps []domain.SentimentSnapshot
	for rows.Next() {
		var snapID int64
		var s domain.SentimentSnapshot
		if err := rows.Scan(&snapID, &s.RecordedAt); err != nil {
			return nil, err
		}
		s.PropertyID = id
		snapIDs = append(snapIDs, snapID)
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, snapID := range snapIDs {
		bs, err := r.getSnapshotRows(ctx, id, snapID)
		if err != nil {
			return nil, err
		}
		snaps[i].Breakdowns = bs
	}
	return snaps, nil
}

func (r *Repo) getSnapshotRows(ctx context.Context, propertyID, snapshotID int64) ([]domain.SentimentBreakdown, error) {
	rows, err := r.db.QueryContext(ctx, getSnapshotRowsSQL, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SentimentBreakdown
	for rows.Next() {
		var b domain.SentimentBreakdown
		var rating sql.NullFloat64
		var pos, neu, neg sql.NullInt64
		if err := rows.Scan(&b.Category, &rating, &pos, &neu, &neg); err != nil {
			return nil, err
		}
		b.PropertyID = propertyID
		if rating.Valid {
			f := rating.Float64
			b.Rating = &f
		}
		if pos.Valid {
			n := int(pos.Int64)
			b.Positive = &n
		}
		if neu.Valid {
			n := int(neu.Int64)
			b.Neutral = &n
		}
		if neg.Valid {
			n := int(neg.Int64)
			b.Negative = &n
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) getMentions(ctx context.Context, id int64) ([]domain.GuestMention, error) {
	rows, err := r.db.QueryContext(ctx, getMentionsSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GuestMention
	for rows.Next() {
		var m domain.GuestMention
		var pol string
		if err := rows.Scan(&m.PropertyID, &m.Keyword, &pol, &m.Count); err != nil {
			return nil, err
		}
		m.Polarity = domain.MentionPolarity(pol)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) competitorIDs(ctx context.Context, targetID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, getCompetitorIDsSQL, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
