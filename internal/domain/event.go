package domain

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/enum"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventDomain interface {
	Create(context.Context, *model.CreateEventRequest) (*model.CreateEventResponse, error)
	GetList(context.Context, *model.GetEventsRequest) (*model.GetEventsResponse, error)
	Get(context.Context, *model.GetEventRequest) (*model.GetEventResponse, error)
	GetMyEvents(context.Context, *model.GetMyEventsRequest) (*model.GetMyEventsResponse, error)
}

type eventDomain struct {
	eventRepo  repository.EventRepository
	raffleRepo repository.RaffleRepository
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	raffleRepo repository.RaffleRepository,
) *eventDomain {
	return &eventDomain{
		eventRepo:  eventRepo,
		raffleRepo: raffleRepo,
	}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	cfg := xcontext.Configs(ctx).Raffle

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if strings.TrimSpace(req.Description) == "" {
		return nil, errorx.New(errorx.BadRequest, "Description is required")
	}

	platform, err := enum.ToEnum[entity.EventPlatform](req.Platform)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid platform: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Platform must be one of %s",
			strings.Join(enum.Values[entity.EventPlatform](), ", "))
	}

	if u, err := url.ParseRequestURI(req.WorldURL); err != nil || u.Host == "" {
		return nil, errorx.New(errorx.BadRequest, "Invalid world url")
	}

	if req.EntryPoints < cfg.MinEntryPoints || req.EntryPoints > cfg.MaxEntryPoints {
		return nil, errorx.New(errorx.BadRequest, "Entry points must be between %d and %d",
			cfg.MinEntryPoints, cfg.MaxEntryPoints)
	}

	if req.MaxWinners < cfg.MinWinners || req.MaxWinners > cfg.MaxWinners {
		return nil, errorx.New(errorx.BadRequest, "Max winners must be between %d and %d",
			cfg.MinWinners, cfg.MaxWinners)
	}

	raffleEndTime := req.EventDate.Add(-cfg.LeadWindow)
	if !raffleEndTime.After(time.Now()) {
		return nil, errorx.New(errorx.BadRequest,
			"Event date must be at least %s from now", cfg.LeadWindow)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	event := &entity.Event{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   xcontext.RequestUserID(ctx),
		Platform:    platform,
		WorldURL:    req.WorldURL,
		EntryPoints: req.EntryPoints,
		MaxWinners:  req.MaxWinners,
		EventDate:   req.EventDate,
		Status:      entity.EventUpcoming,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	raffle := &entity.Raffle{
		Base:    entity.Base{ID: uuid.NewString()},
		EventID: event.ID,
		Status:  entity.RaffleActive,
		EndTime: raffleEndTime,
	}

	if err := d.raffleRepo.Create(ctx, raffle); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create raffle: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{
		Event:  convertEvent(event),
		Raffle: convertRaffle(raffle, nil),
	}, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetEventsRequest,
) (*model.GetEventsResponse, error) {
	events, err := d.eventRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Event{}
	for _, e := range events {
		result = append(result, convertEvent(&e))
	}

	return &model.GetEventsResponse{Events: result}, nil
}

func (d *eventDomain) Get(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.EventNotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetEventResponse{Event: convertEvent(event)}, nil
}

func (d *eventDomain) GetMyEvents(
	ctx context.Context, req *model.GetMyEventsRequest,
) (*model.GetMyEventsResponse, error) {
	events, err := d.eventRepo.GetListByCreatorID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Event{}
	for _, e := range events {
		result = append(result, convertEvent(&e))
	}

	return &model.GetMyEventsResponse{Events: result}, nil
}
