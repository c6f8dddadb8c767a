package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
)

// configSetColumns is the column list used for SELECT statements on the
// eg_config_set table.
const configSetColumns = `id, tenant_id, name, code, description, status,
	created_by, created_at, last_modified_by, last_modified_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateConfigSet(ctx context.Context, db executor, cs *model.ConfigSet) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO eg_config_set (
			id, tenant_id, name, code, description, status,
			created_by, created_at, last_modified_by, last_modified_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)`,
		cs.ID,
		cs.TenantID,
		cs.Name,
		cs.Code,
		nullString(cs.Description),
		string(cs.Status),
		nullString(cs.CreatedBy),
		cs.CreatedAt,
		nullString(cs.LastModifiedBy),
		cs.LastModifiedAt,
	)
	return err
}

func queryUpdateConfigSet(ctx context.Context, db executor, cs *model.ConfigSet) error {
	res, err := db.ExecContext(ctx, `
		UPDATE eg_config_set SET
			name = $2,
			description = $3,
			status = $4,
			last_modified_by = $5,
			last_modified_at = $6
		WHERE id = $1`,
		cs.ID,
		cs.Name,
		nullString(cs.Description),
		string(cs.Status),
		nullString(cs.LastModifiedBy),
		cs.LastModifiedAt,
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

func querySearchConfigSets(ctx context.Context, db executor, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if criteria.TenantID != "" {
		whereClauses = append(whereClauses, "tenant_id = "+nextArg())
		args = append(args, criteria.TenantID)
	}
	if criteria.Name != "" {
		whereClauses = append(whereClauses, "name = "+nextArg())
		args = append(args, criteria.Name)
	}
	if criteria.Code != "" {
		whereClauses = append(whereClauses, "code = "+nextArg())
		args = append(args, criteria.Code)
	}
	if criteria.Status != "" {
		whereClauses = append(whereClauses, "status = "+nextArg())
		args = append(args, criteria.Status)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + configSetColumns +
		" FROM eg_config_set" + whereSQL + " ORDER BY created_at DESC"

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
		return nil, 0, fmt.Errorf("search config sets: %w", err)
	}
	defer rows.Close()

	var sets []*model.ConfigSet
	var total int
	for rows.Next() {
		cs, t, err := scanConfigSetWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan config sets: %w", err)
		}
		total = t
		sets = append(sets, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan config sets: %w", err)
	}

	return sets, total, nil
}

func queryFindActiveSetID(ctx context.Context, db executor, tenantID string) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `
		SELECT id FROM eg_config_set
		WHERE tenant_id = $1 AND status = 'ACTIVE'
		ORDER BY last_modified_at DESC
		LIMIT 1`,
		tenantID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func queryActivateConfigSet(ctx context.Context, db executor, setID, userID string, now time.Time) error {
	res, err := db.ExecContext(ctx, `
		UPDATE eg_config_set SET
			status = 'ACTIVE',
			last_modified_by = $2,
			last_modified_at = $3
		WHERE id = $1`,
		setID,
		nullString(userID),
		now,
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

func queryDeactivateOtherSets(ctx context.Context, db executor, setID, tenantID, userID string, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		UPDATE eg_config_set SET
			status = 'INACTIVE',
			last_modified_by = $3,
			last_modified_at = $4
		WHERE tenant_id = $2 AND status = 'ACTIVE' AND id <> $1`,
		setID,
		tenantID,
		nullString(userID),
		now,
	)
	return err
}

func queryRecordActivation(ctx context.Context, db executor, a *model.ConfigSetActivation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO eg_config_set_activation (
			id, config_set_id, tenant_id, activated_by, activated_at, previous_active_set_id
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID,
		a.ConfigSetID,
		a.TenantID,
		nullString(a.ActivatedBy),
		a.ActivatedAt,
		nullString(a.PreviousActiveSetID),
	)
	return err
}
