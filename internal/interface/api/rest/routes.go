package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// owner relations
	RouteOwnerFiles     = RouteApiV1 + "/owners/:model/:owner_id/files"
	RouteOwnerPublic    = RouteOwnerFiles + "/public"
	RouteOwnerProtected = RouteOwnerFiles + "/protected"
	RouteOwnerUserFiles = RouteOwnerFiles + "/users/:user_id"
	RouteOwnerTagFiles  = RouteOwnerFiles + "/tags"

	// file lifecycle
	RouteFile           = RouteApiV1 + "/files/:file_id"
	RouteFileStatus     = RouteFile + "/status"
	RouteFileVisibility = RouteFile + "/visibility"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
