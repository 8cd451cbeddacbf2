package routes

import (
	"github.com/google/wire"

	"freemodels-server/services/catalog-api/internal/application/audit"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/admin"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/public"
	v1 "freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/v1"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/v1/models"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	models.NewModelsRoute,
	public.NewPublicRoute,
	admin.NewAdminRoute,
	audit.NewAdminAuditLogger,
)
