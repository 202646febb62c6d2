package file

const columns = `id, uuid, model, target_id, target_url, content, filename_user, filename_path, mimetype,
		created_by, public, tags, status, position, created_at, updated_at`

const (
	SelectFiles = `
		SELECT ` + columns + `
		FROM files
		WHERE model = $1 AND target_id = $2 AND status = $3
		ORDER BY position ASC, id ASC
	`
	SelectFilesByVisibility = `
		SELECT ` + columns + `
		FROM files
		WHERE model = $1 AND target_id = $2 AND status = $3 AND public = $4
		ORDER BY position ASC, id ASC
	`
	SelectFilesByCreator = `
		SELECT ` + columns + `
		FROM files
		WHERE model = $1 AND target_id = $2 AND status = $3 AND created_by = $4
		ORDER BY position ASC, id ASC
	`
	// strpos is a literal, case sensitive substring test; LIKE would treat % and _ as wildcards.
	SelectFilesWithTag = `
		SELECT ` + columns + `
		FROM files
		WHERE model = $1 AND target_id = $2 AND status = $3 AND strpos(tags, $4) > 0
		ORDER BY position ASC, id ASC
	`
	SelectFileByUUID = `
		SELECT ` + columns + `
		FROM files
		WHERE uuid = $1
	`
	InsertFile = `
		INSERT INTO files (model, target_id, target_url, content, filename_user, filename_path, mimetype,
		                   created_by, public, tags, status, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        (SELECT COALESCE(MAX(position) + 1, 0) FROM files WHERE model = $1 AND target_id = $2))
		RETURNING ` + columns + `
	`
	UpdateFileStatus = `
		UPDATE files
		SET status = $2, updated_at = now()
		WHERE uuid = $1
		RETURNING ` + columns + `
	`
	UpdateFileVisibility = `
		UPDATE files
		SET public = $2, updated_at = now()
		WHERE uuid = $1
		RETURNING ` + columns + `
	`
)
