package handlers

import (
	"github.com/jmoiron/sqlx"

	"restockly/internal/catalog"
	"restockly/internal/repos"
	"restockly/internal/services"
)

type Deps struct {
	SearchHandler       *SearchHandler
	ProductsHandler     *ProductsHandler
	ConfigHandler       *ConfigHandler
	SettingsHandler     *SettingsHandler
	SubscriptionHandler *SubscriptionHandler
}

func NewDeps(db *sqlx.DB, cat catalog.Client) *Deps {
	settingsRepo := repos.NewSettingsRepo(db)
	subsRepo := repos.NewSubscriptionRepo(db)

	settingsSvc := services.NewSettingsService(settingsRepo)
	subsSvc := services.NewSubscriptionService(subsRepo)
	productsSvc := services.NewProductsService(cat, settingsSvc)

	return &Deps{
		SearchHandler:       &SearchHandler{Products: productsSvc},
		ProductsHandler:     &ProductsHandler{Products: productsSvc},
		ConfigHandler:       &ConfigHandler{Settings: settingsSvc},
		SettingsHandler:     &SettingsHandler{Settings: settingsSvc},
		SubscriptionHandler: &SubscriptionHandler{Subs: subsSvc},
	}
}
