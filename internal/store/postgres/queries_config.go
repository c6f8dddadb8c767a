package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
)

// configColumns is the column list used for SELECT statements on the
// eg_config table.
const configColumns = `id, config_set_id, tenant_id, namespace, config_name,
	config_code, environment, description, status,
	created_by, created_at, last_modified_by, last_modified_at`

// versionColumns is the column list used for SELECT statements on the
// eg_config_version table.
const versionColumns = `id, config_id, version, content, schema_ref, status,
	created_by, created_at, last_modified_by, last_modified_at`

func queryCreateConfig(ctx context.Context, db executor, c *model.Config) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO eg_config (
			id, config_set_id, tenant_id, namespace, config_name,
			config_code, environment, description, status,
			created_by, created_at, last_modified_by, last_modified_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13
		)`,
		c.ID,
		nullString(c.ConfigSetID),
		c.TenantID,
		c.Namespace,
		c.Name,
		c.Code,
		nullString(c.Environment),
		nullString(c.Description),
		c.Status,
		nullString(c.CreatedBy),
		c.CreatedAt,
		nullString(c.LastModifiedBy),
		c.LastModifiedAt,
	)
	return err
}

func queryUpdateConfig(ctx context.Context, db executor, c *model.Config) error {
	res, err := db.ExecContext(ctx, `
		UPDATE eg_config SET
			config_set_id = $2,
			config_name = $3,
			environment = $4,
			description = $5,
			status = $6,
			last_modified_by = $7,
			last_modified_at = $8
		WHERE id = $1`,
		c.ID,
		nullString(c.ConfigSetID),
		c.Name,
		nullString(c.Environment),
		nullString(c.Description),
		c.Status,
		nullString(c.LastModifiedBy),
		c.LastModifiedAt,
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

func querySearchConfigs(ctx context.Context, db executor, criteria model.ConfigCriteria) ([]*model.Config, int, error) {
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
	if criteria.Namespace != "" {
		whereClauses = append(whereClauses, "namespace = "+nextArg())
		args = append(args, criteria.Namespace)
	}
	if criteria.Name != "" {
		whereClauses = append(whereClauses, "config_name = "+nextArg())
		args = append(args, criteria.Name)
	}
	if criteria.Code != "" {
		whereClauses = append(whereClauses, "config_code = "+nextArg())
		args = append(args, criteria.Code)
	}
	if criteria.Environment != "" {
		whereClauses = append(whereClauses, "environment = "+nextArg())
		args = append(args, criteria.Environment)
	}
	if criteria.Status != "" {
		whereClauses = append(whereClauses, "status = "+nextArg())
		args = append(args, criteria.Status)
	}
	if criteria.Version != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("EXISTS (SELECT 1 FROM eg_config_version v WHERE v.config_id = eg_config.id AND v.version = %s)", p))
		args = append(args, criteria.Version)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + configColumns +
		" FROM eg_config" + whereSQL + " ORDER BY created_at DESC"

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
		return nil, 0, fmt.Errorf("search configs: %w", err)
	}
	defer rows.Close()

	var configs []*model.Config
	var total int
	for rows.Next() {
		c, t, err := scanConfigWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan configs: %w", err)
		}
		total = t
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan configs: %w", err)
	}

	return configs, total, nil
}

func queryCreateVersion(ctx context.Context, db executor, v *model.ConfigVersion) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO eg_config_version (
			id, config_id, version, content, schema_ref, status,
			created_by, created_at, last_modified_by, last_modified_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)`,
		v.ID,
		v.ConfigID,
		v.Version,
		jsonbBytes(v.Content),
		nullString(v.SchemaRef),
		string(v.Status),
		nullString(v.CreatedBy),
		v.CreatedAt,
		nullString(v.LastModifiedBy),
		v.LastModifiedAt,
	)
	return err
}

func queryDeactivateVersions(ctx context.Context, db executor, configID, userID string, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		UPDATE eg_config_version SET
			status = 'INACTIVE',
			last_modified_by = $2,
			last_modified_at = $3
		WHERE config_id = $1 AND status = 'ACTIVE'`,
		configID,
		nullString(userID),
		now,
	)
	return err
}

func queryGetVersionsByConfigID(ctx context.Context, db executor, configID string) ([]*model.ConfigVersion, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+versionColumns+`
		FROM eg_config_version
		WHERE config_id = $1
		ORDER BY created_at DESC`,
		configID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVersions(rows)
}

func queryGetActiveVersion(ctx context.Context, db executor, configID string) (*model.ConfigVersion, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+versionColumns+`
		FROM eg_config_version
		WHERE config_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at DESC
		LIMIT 1`,
		configID,
	)
	return scanVersion(row)
}
