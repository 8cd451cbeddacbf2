//go:build wireinject

package main

import (
	"freemodels-server/services/catalog-api/internal/domain"
	"freemodels-server/services/catalog-api/internal/infrastructure"
	"freemodels-server/services/catalog-api/internal/interfaces"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
