package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/egovernments/digit-config-service/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanConfigSetWithTotal scans a row with a leading total_count column
// followed by the standard config set columns. Used by querySearchConfigSets
// with COUNT(*) OVER().
func scanConfigSetWithTotal(row scannable) (*model.ConfigSet, int, error) {
	var total int
	var cs model.ConfigSet
	var (
		description    sql.NullString
		createdBy      sql.NullString
		lastModifiedBy sql.NullString
	)

	err := row.Scan(
		&total,
		&cs.ID,
		&cs.TenantID,
		&cs.Name,
		&cs.Code,
		&description,
		&cs.Status,
		&createdBy,
		&cs.CreatedAt,
		&lastModifiedBy,
		&cs.LastModifiedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	cs.Description = description.String
	cs.CreatedBy = createdBy.String
	cs.LastModifiedBy = lastModifiedBy.String

	return &cs, total, nil
}

// scanConfigWithTotal scans a row with a leading total_count column followed
// by the standard config columns.
func scanConfigWithTotal(row scannable) (*model.Config, int, error) {
	var total int
	var c model.Config
	var (
		configSetID    sql.NullString
		environment    sql.NullString
		description    sql.NullString
		createdBy      sql.NullString
		lastModifiedBy sql.NullString
	)

	err := row.Scan(
		&total,
		&c.ID,
		&configSetID,
		&c.TenantID,
		&c.Namespace,
		&c.Name,
		&c.Code,
		&environment,
		&description,
		&c.Status,
		&createdBy,
		&c.CreatedAt,
		&lastModifiedBy,
		&c.LastModifiedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	c.ConfigSetID = configSetID.String
	c.Environment = environment.String
	c.Description = description.String
	c.CreatedBy = createdBy.String
	c.LastModifiedBy = lastModifiedBy.String

	return &c, total, nil
}

// scanVersion scans a single row into a model.ConfigVersion.
// The row must contain columns in the order defined by versionColumns.
func scanVersion(row scannable) (*model.ConfigVersion, error) {
	var v model.ConfigVersion
	var (
		content        []byte
		schemaRef      sql.NullString
		createdBy      sql.NullString
		lastModifiedBy sql.NullString
	)

	err := row.Scan(
		&v.ID,
		&v.ConfigID,
		&v.Version,
		&content,
		&schemaRef,
		&v.Status,
		&createdBy,
		&v.CreatedAt,
		&lastModifiedBy,
		&v.LastModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(content) > 0 {
		v.Content = json.RawMessage(content)
	}
	v.SchemaRef = schemaRef.String
	v.CreatedBy = createdBy.String
	v.LastModifiedBy = lastModifiedBy.String

	return &v, nil
}

// scanVersions scans multiple rows into a slice of model.ConfigVersion pointers.
func scanVersions(rows *sql.Rows) ([]*model.ConfigVersion, error) {
	var versions []*model.ConfigVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

// scanEntry scans a single row into a model.Entry.
// The row must contain columns in the order defined by entryColumns.
func scanEntry(row scannable) (*model.Entry, error) {
	var e model.Entry
	var (
		module         sql.NullString
		eventType      sql.NullString
		channel        sql.NullString
		locale         sql.NullString
		enabled        bool
		value          []byte
		createdBy      sql.NullString
		lastModifiedBy sql.NullString
	)

	err := row.Scan(
		&e.ID,
		&e.Code,
		&module,
		&eventType,
		&channel,
		&e.TenantID,
		&locale,
		&enabled,
		&value,
		&e.Revision,
		&createdBy,
		&e.CreatedAt,
		&lastModifiedBy,
		&e.LastModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Module = module.String
	e.EventType = eventType.String
	e.Channel = channel.String
	e.Locale = locale.String
	e.Enabled = &enabled
	if len(value) > 0 {
		e.Value = json.RawMessage(value)
	}
	e.CreatedBy = createdBy.String
	e.LastModifiedBy = lastModifiedBy.String

	return &e, nil
}

// scanEntryWithTotal scans a row with a leading total_count column followed
// by the standard entry columns.
func scanEntryWithTotal(row scannable) (*model.Entry, int, error) {
	var total int
	var e model.Entry
	var (
		module         sql.NullString
		eventType      sql.NullString
		channel        sql.NullString
		locale         sql.NullString
		enabled        bool
		value          []byte
		createdBy      sql.NullString
		lastModifiedBy sql.NullString
	)

	err := row.Scan(
		&total,
		&e.ID,
		&e.Code,
		&module,
		&eventType,
		&channel,
		&e.TenantID,
		&locale,
		&enabled,
		&value,
		&e.Revision,
		&createdBy,
		&e.CreatedAt,
		&lastModifiedBy,
		&e.LastModifiedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	e.Module = module.String
	e.EventType = eventType.String
	e.Channel = channel.String
	e.Locale = locale.String
	e.Enabled = &enabled
	if len(value) > 0 {
		e.Value = json.RawMessage(value)
	}
	e.CreatedBy = createdBy.String
	e.LastModifiedBy = lastModifiedBy.String

	return &e, total, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
