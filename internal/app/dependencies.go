package app

import (
	"github.com/eventdeck/eventdeck/internal/config"
	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/calendar_view"
	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/feed"
	"github.com/eventdeck/eventdeck/pkg/filter"
	"github.com/eventdeck/eventdeck/pkg/google"
	"github.com/eventdeck/eventdeck/pkg/schedule"
	"github.com/eventdeck/eventdeck/pkg/search"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock

	Classifier event.Classifier
	Catalog    *event.CatalogServiceImpl
	EventHandler *event.Handler

	SearchScorer     search.Scorer
	SearchDispatcher *search.Dispatcher

	FilterEngine  *filter.Engine
	BrowseHandler *filter.Handler

	ScheduleBackend schedule.Backend
	ScheduleStore   *schedule.Store
	ScheduleHandler *schedule.Handler

	CalendarHandler *calendar_view.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	sources := buildSources(cfg, deps.Clock)
	deps.Catalog = event.NewCatalogService(sources)
	deps.EventHandler = event.NewHandler(deps.Catalog)

	if cfg.Search.ScorerUrl != "" {
		deps.SearchScorer = search.NewHTTPScorer(cfg.Search.ScorerUrl)
	}
	deps.SearchDispatcher = search.NewDispatcher(deps.SearchScorer)

	deps.Classifier = event.CategoryClassifier{}
	deps.FilterEngine = filter.NewEngine(deps.Classifier)
	deps.BrowseHandler = filter.NewHandler(deps.Catalog, deps.FilterEngine, deps.SearchDispatcher)

	deps.ScheduleBackend = schedule.NewPgxBackend(db)
	deps.ScheduleStore = schedule.NewStore(deps.ScheduleBackend)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleStore)

	deps.CalendarHandler = calendar_view.NewHandler(deps.Clock, deps.ScheduleStore)

	return deps
}

func buildSources(cfg config.Application, clock utils.Clock) []event.Source {
	var sources []event.Source
	for _, feedCfg := range cfg.Feeds {
		category, err := event.ParseCategory(feedCfg.Category)
		if err != nil {
			log.Warnf("feed %s has an invalid category, using Other: %v", feedCfg.Id, err)
			category = event.CategoryOther
		}
		sources = append(sources, feed.NewICSSource(feedCfg.Id, feedCfg.Url, category, cfg.Refresh.WindowDays, clock))
	}
	if cfg.Google.Enabled {
		sources = append(sources, google.NewCalendarSource(cfg.Google, cfg.Refresh.WindowDays, clock))
	}
	if len(sources) == 0 {
		log.Warn("no event sources configured, the catalog will stay empty")
	}
	return sources
}
