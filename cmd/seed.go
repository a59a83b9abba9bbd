package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quickbite/internal/config"
	"quickbite/internal/constants"
	"quickbite/internal/infra"
	"quickbite/internal/log"
	"quickbite/internal/menu"
)

const (
	menuSeedPath   = "db/seed/menu.json"
	offersSeedPath = "db/seed/offers.json"
)

// RunSeed loads the bundled menu and offers fixtures into the document store.
// It is a no-op when the menu collection already has documents.
func RunSeed(c context.Context) {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppName)).
		With().
		Str(log.KeyAppName, constants.AppName).
		Str(log.KeyTag, "main RunSeed").
		Logger()
	c = logger.WithContext(c)

	cfg := config.InitConfig(c, constants.AppName)
	db := infra.NewDatabaseClient(c, cfg.Database)
	service := menu.NewService(menu.NewRepository(db), nil)

	logger = logger.With().Str(log.KeyProcess, "reading seed files").Logger()
	logger.Info().Msg("reading seed files")
	items := []menu.Item{}
	if err := readSeedFile(menuSeedPath, &items); err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
	offers := []menu.Offer{}
	if err := readSeedFile(offersSeedPath, &offers); err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msgf("read %d menu items and %d offers", len(items), len(offers))

	logger = logger.With().Str(log.KeyProcess, "seeding").Logger()
	logger.Info().Msg("seeding document store")
	if err := service.Seed(c, items, offers); err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("seeded document store")
}

func readSeedFile(path string, out interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed reading seed file=%s with error=%w", path, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed unmarshaling seed file=%s with error=%w", path, err)
	}
	return nil
}
