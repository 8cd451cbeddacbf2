package repository

import (
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/apikeyrepo"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/availabilityrepo"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/catalogrepo"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/feedbackrepo"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/requestlogrepo"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository/syncmetarepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	catalogrepo.NewModelGormRepository,
	feedbackrepo.NewFeedbackGormRepository,
	apikeyrepo.NewAPIKeyRepository,
	syncmetarepo.NewSyncMetaGormRepository,
	availabilityrepo.NewSnapshotGormRepository,
	requestlogrepo.NewRequestLogGormRepository,
)
