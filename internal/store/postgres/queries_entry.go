package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/egovernments/digit-config-service/internal/model"
)

// entryColumns is the column list used for SELECT statements on the
// eg_config_entry table.
const entryColumns = `id, config_code, module, event_type, channel, tenant_id,
	locale, enabled, value, revision,
	created_by, created_at, last_modified_by, last_modified_at`

func querySaveEntry(ctx context.Context, db executor, e *model.Entry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO eg_config_entry (
			id, config_code, module, event_type, channel, tenant_id,
			locale, enabled, value, revision,
			created_by, created_at, last_modified_by, last_modified_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14
		)`,
		e.ID,
		e.Code,
		nullString(e.Module),
		nullString(e.EventType),
		nullString(e.Channel),
		e.TenantID,
		nullString(e.Locale),
		e.IsEnabled(),
		jsonbBytes(e.Value),
		e.Revision,
		nullString(e.CreatedBy),
		e.CreatedAt,
		nullString(e.LastModifiedBy),
		e.LastModifiedAt,
	)
	return err
}

// queryUpdateEntry persists the entry only when the stored revision still
// matches expectedRevision. A concurrent writer that bumped the revision
// first makes this a zero-row update, reported as sql.ErrNoRows.
func queryUpdateEntry(ctx context.Context, db executor, e *model.Entry, expectedRevision int) error {
	res, err := db.ExecContext(ctx, `
		UPDATE eg_config_entry SET
			event_type = $3,
			channel = $4,
			enabled = $5,
			value = $6,
			revision = $7,
			last_modified_by = $8,
			last_modified_at = $9
		WHERE id = $1 AND revision = $2`,
		e.ID,
		expectedRevision,
		nullString(e.EventType),
		nullString(e.Channel),
		e.IsEnabled(),
		jsonbBytes(e.Value),
		e.Revision,
		nullString(e.LastModifiedBy),
		e.LastModifiedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func querySearchEntries(ctx context.Context, db executor, criteria model.EntryCriteria) ([]*model.Entry, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(criteria.IDs) > 0 {
		placeholders := make([]string, len(criteria.IDs))
		for i, id := range criteria.IDs {
			placeholders[i] = nextArg()
			args = append(args, id)
		}
		whereClauses = append(whereClauses, "id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if criteria.Code != "" {
		whereClauses = append(whereClauses, "config_code = "+nextArg())
		args = append(args, criteria.Code)
	}
	if criteria.Module != "" {
		whereClauses = append(whereClauses, "module = "+nextArg())
		args = append(args, criteria.Module)
	}
	if criteria.EventType != "" {
		whereClauses = append(whereClauses, "event_type = "+nextArg())
		args = append(args, criteria.EventType)
	}
	if criteria.Channel != "" {
		whereClauses = append(whereClauses, "channel = "+nextArg())
		args = append(args, criteria.Channel)
	}
	if criteria.TenantID != "" {
		whereClauses = append(whereClauses, "tenant_id = "+nextArg())
		args = append(args, criteria.TenantID)
	}
	if criteria.Locale != "" {
		whereClauses = append(whereClauses, "locale = "+nextArg())
		args = append(args, criteria.Locale)
	}
	if criteria.Enabled != nil {
		whereClauses = append(whereClauses, "enabled = "+nextArg())
		args = append(args, *criteria.Enabled)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + entryColumns +
		" FROM eg_config_entry" + whereSQL + " ORDER BY created_at DESC"

	if criteria.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, criteria.Limit)
	}
	if criteria.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, criteria.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.Entry
	var total int
	for rows.Next() {
		e, t, err := scanEntryWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entries: %w", err)
		}
		total = t
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan entries: %w", err)
	}

	return entries, total, nil
}

// queryResolveEntry picks the single best enabled entry for the given tenant
// and locale chains. Candidates are ranked by their position in the tenant
// chain first, then by position in the locale chain; a NULL locale ranks
// after every explicit chain match. Chains are ordered most specific first,
// so LIMIT 1 yields the closest match.
func queryResolveEntry(ctx context.Context, db executor, code, module string, tenantChain, localeChain []string) (*model.Entry, error) {
	var (
		args   []any
		argIdx int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	whereClauses := []string{"enabled = TRUE"}

	whereClauses = append(whereClauses, "config_code = "+nextArg())
	args = append(args, code)

	if module != "" {
		whereClauses = append(whereClauses, "module = "+nextArg())
		args = append(args, module)
	}

	tenantPlaceholders := make([]string, len(tenantChain))
	var tenantRanks []string
	for i, tenant := range tenantChain {
		p := nextArg()
		tenantPlaceholders[i] = p
		tenantRanks = append(tenantRanks, fmt.Sprintf("WHEN tenant_id = %s THEN %d", p, i))
		args = append(args, tenant)
	}
	whereClauses = append(whereClauses, "tenant_id IN ("+strings.Join(tenantPlaceholders, ", ")+")")

	localePlaceholders := make([]string, len(localeChain))
	var localeRanks []string
	for i, locale := range localeChain {
		p := nextArg()
		localePlaceholders[i] = p
		localeRanks = append(localeRanks, fmt.Sprintf("WHEN locale = %s THEN %d", p, i))
		args = append(args, locale)
	}
	whereClauses = append(whereClauses,
		"(locale IN ("+strings.Join(localePlaceholders, ", ")+") OR locale IS NULL)")

	query := "SELECT " + entryColumns + " FROM eg_config_entry" +
		" WHERE " + strings.Join(whereClauses, " AND ") +
		" ORDER BY" +
		" CASE " + strings.Join(tenantRanks, " ") + " END," +
		fmt.Sprintf(" CASE %s ELSE %d END", strings.Join(localeRanks, " "), len(localeChain)) +
		" LIMIT 1"

	row := db.QueryRowContext(ctx, query, args...)
	return scanEntry(row)
}
