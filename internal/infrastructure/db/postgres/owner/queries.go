package owner

const (
	// First primary key column in index order; NULL regclass for unknown tables.
	SelectPrimaryKey = `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = to_regclass($1) AND i.indisprimary
		ORDER BY array_position(i.indkey::int2[], a.attnum)
		LIMIT 1
	`
	// selectOwnerRow is formatted with the sanitized table and key column.
	selectOwnerRow = `
		SELECT json_object_agg(e.key, e.value)
		FROM %[1]s t, json_each_text(row_to_json(t)) e
		WHERE t.%[2]s::text = $1
		GROUP BY t.%[2]s
	`
)
