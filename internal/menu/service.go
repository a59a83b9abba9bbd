package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quickbite/internal/errors"
	"quickbite/internal/log"
	"quickbite/internal/otel/trace"
)

const (
	cacheKeyMenu   = "quickbite:menu"
	cacheKeyOffers = "quickbite:offers"
	cacheTTL       = time.Hour
)

type Service struct {
	repository Repository
	cache      *redis.Client
}

// NewService wires the menu read path. cache may be nil, in which case every
// read goes straight to the document store.
func NewService(repository Repository, cache *redis.Client) *Service {
	return &Service{repository: repository, cache: cache}
}

func (s *Service) FindMenuItems(c context.Context) ([]ItemResponse, error) {
	c, span := trace.Tracer.Start(c, "MenuService FindMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MenuService FindMenuItems").
		Str(log.KeyCacheKey, cacheKeyMenu).
		Logger()

	if s.cache != nil {
		logger = logger.With().Str(log.KeyProcess, "finding menu in cache").Logger()
		logger.Info().Msg("finding menu in cache")
		jsonString, err := s.cache.Get(c, cacheKeyMenu).Result()
		if err == nil {
			items := []ItemResponse{}
			if err = json.Unmarshal([]byte(jsonString), &items); err != nil {
				err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
				errors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return nil, err
			}
			logger.Info().Msg("found menu in cache")
			return items, nil
		}
		logger.Info().Err(err).Msg("menu not in cache")
	}

	logger = logger.With().Str(log.KeyProcess, "finding menu in db").Logger()
	logger.Info().Msg("finding menu in db")
	items, err := s.repository.FindMenuItems(c)
	if err != nil {
		err = fmt.Errorf("failed finding menu in db with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Int(log.KeyMenuItems, len(items)).Logger()
	logger.Info().Msg("found menu in db")

	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = item.Response()
	}

	if s.cache != nil {
		logger = logger.With().Str(log.KeyProcess, "inserting menu in cache").Logger()
		logger.Info().Msg("inserting menu in cache")
		marshaled, err := json.Marshal(responses)
		if err != nil {
			err = fmt.Errorf("failed marshaling cache with error=%w", err)
			errors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		if err = s.cache.Set(c, cacheKeyMenu, marshaled, cacheTTL).Err(); err != nil {
			err = fmt.Errorf("failed inserting menu in cache with error=%w", err)
			errors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("inserted menu in cache")
	}

	return responses, nil
}

func (s *Service) FindOffers(c context.Context) ([]OfferResponse, error) {
	c, span := trace.Tracer.Start(c, "MenuService FindOffers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MenuService FindOffers").
		Str(log.KeyCacheKey, cacheKeyOffers).
		Logger()

	if s.cache != nil {
		logger = logger.With().Str(log.KeyProcess, "finding offers in cache").Logger()
		logger.Info().Msg("finding offers in cache")
		jsonString, err := s.cache.Get(c, cacheKeyOffers).Result()
		if err == nil {
			offers := []OfferResponse{}
			if err = json.Unmarshal([]byte(jsonString), &offers); err != nil {
				err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
				errors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return nil, err
			}
			logger.Info().Msg("found offers in cache")
			return offers, nil
		}
		logger.Info().Err(err).Msg("offers not in cache")
	}

	logger = logger.With().Str(log.KeyProcess, "finding offers in db").Logger()
	logger.Info().Msg("finding offers in db")
	offers, err := s.repository.FindOffers(c)
	if err != nil {
		err = fmt.Errorf("failed finding offers in db with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Int(log.KeyOffers, len(offers)).Logger()
	logger.Info().Msg("found offers in db")

	responses := make([]OfferResponse, len(offers))
	for i, offer := range offers {
		responses[i] = offer.Response()
	}

	if s.cache != nil {
		logger = logger.With().Str(log.KeyProcess, "inserting offers in cache").Logger()
		logger.Info().Msg("inserting offers in cache")
		marshaled, err := json.Marshal(responses)
		if err != nil {
			err = fmt.Errorf("failed marshaling cache with error=%w", err)
			errors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		if err = s.cache.Set(c, cacheKeyOffers, marshaled, cacheTTL).Err(); err != nil {
			err = fmt.Errorf("failed inserting offers in cache with error=%w", err)
			errors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("inserted offers in cache")
	}

	return responses, nil
}

func (s *Service) Seed(c context.Context, items []Item, offers []Offer) error {
	c, span := trace.Tracer.Start(c, "MenuService Seed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MenuService Seed").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "counting menu items").Logger()
	logger.Info().Msg("counting menu items")
	count, err := s.repository.CountMenuItems(c)
	if err != nil {
		err = fmt.Errorf("failed counting menu items with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if count > 0 {
		logger.Info().Msgf("menu already seeded with %d items", count)
		return nil
	}

	logger = logger.With().Str(log.KeyProcess, "inserting seed data").Logger()
	logger.Info().Msg("inserting seed data")
	insertedItems, err := s.repository.InsertMenuItems(c, items)
	if err != nil {
		err = fmt.Errorf("failed inserting menu seed with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	insertedOffers, err := s.repository.InsertOffers(c, offers)
	if err != nil {
		err = fmt.Errorf("failed inserting offers seed with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("inserted %d menu items and %d offers", insertedItems, insertedOffers)

	return nil
}
