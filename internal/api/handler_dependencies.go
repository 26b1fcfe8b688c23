package api

import (
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.accountService = services.NewAccountService(handler.repositories.Users)
	handler.fortuneService = handler.newFortuneService()
	handler.refreshService = services.NewHoroscopeRefreshService(handler.horoscopes, handler.repositories.References, handler.logger)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.accountService == nil {
		handler.accountService = services.NewAccountService(handler.repositories.Users)
	}
	if handler.fortuneService == nil {
		handler.fortuneService = handler.newFortuneService()
	}
	if handler.refreshService == nil {
		handler.refreshService = services.NewHoroscopeRefreshService(handler.horoscopes, handler.repositories.References, handler.logger)
	}
}

func (handler *Handler) newFortuneService() *services.FortuneService {
	synthesizer := services.NewFortuneSynthesizer(handler.generator, handler.genaiTimeout, handler.logger)
	return services.NewFortuneService(handler.repositories.References, handler.repositories.Users, synthesizer, handler.logger)
}

// HoroscopeRefresher exposes the refresh service so a scheduler shares its
// run lock with the admin endpoints.
func (handler *Handler) HoroscopeRefresher() *services.HoroscopeRefreshService {
	handler.ensureDependencies()
	return handler.refreshService
}
