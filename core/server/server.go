package server

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vfd-portal/core/cache"
	"vfd-portal/core/config"
	"vfd-portal/core/constants"
	"vfd-portal/core/database"
	"vfd-portal/core/logger"
	"vfd-portal/core/middleware"
	"vfd-portal/core/utils"
	"vfd-portal/modules/announcement"
	"vfd-portal/modules/calendar"
	calendarService "vfd-portal/modules/calendar/service"
	"vfd-portal/modules/event"
	"vfd-portal/modules/event/export"
	eventService "vfd-portal/modules/event/service"
	"vfd-portal/modules/member"
	"vfd-portal/modules/signup"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run loads configuration, wires every module and serves until SIGINT/SIGTERM.
func Run() error {
	configFile := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel, cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	db, err := database.InitDB(initCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var tokenCache cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(initCtx, cfg.Redis, "vfd:")
		if err != nil {
			logger.Warn("Redis unavailable, calendar tokens will not be shared", err, "addr", cfg.Redis.Addr)
		} else {
			defer redisCache.Close()
			tokenCache = redisCache
		}
	}

	notifier := calendarService.NewNotifier()
	var bridge *calendarService.Bridge
	if cfg.GoogleCalendar.Enabled {
		bridge, err = calendarService.NewBridge(ctx, calendarService.BridgeConfig{
			ServiceAccountEmail: cfg.GoogleCalendar.ServiceAccountEmail,
			PrivateKeyPEM:       cfg.GoogleCalendar.PrivateKey,
			CalendarID:          cfg.GoogleCalendar.CalendarID,
			TimeZone:            cfg.GoogleCalendar.TimeZone,
			TokenURL:            cfg.GoogleCalendar.TokenURL,
			APIEndpoint:         cfg.GoogleCalendar.APIEndpoint,
			Scope:               cfg.GoogleCalendar.Scope,
		}, tokenCache, &http.Client{Timeout: constants.DefaultRequestTimeout}, notifier)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("Google Calendar mirroring disabled")
	}

	loc, err := utils.LoadLocation(cfg.Organization.TimeZone)
	if err != nil {
		return fmt.Errorf("organization time zone: %w", err)
	}

	e := newEcho()
	mw := middleware.NewMiddleware(member.Init(db), cfg.Auth)

	var mirror eventService.CalendarMirror
	if bridge != nil {
		mirror = bridge
	}
	events := event.Init(e, db, mirror, icalOptions(cfg.Organization), mw)
	announcements := announcement.Init(e.Group("/api/v1/private"), db, mw)
	signup.Init(e, db, events, announcements, loc, mw)
	calendar.Init(e, bridge, notifier, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: utils.GenerateRequestID,
	}))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "time": time.Now().UTC()})
	})
	return e
}

func icalOptions(org config.OrganizationConfig) export.ICalOptions {
	opts := export.DefaultICalOptions()
	if org.Name != "" {
		opts.CalendarName = org.Name + " Events"
		opts.OrganizerName = org.Name
		opts.ProductID = "-//" + org.Name + "//Events Calendar//EN"
	}
	if org.Domain != "" {
		opts.UIDDomain = org.Domain
	}
	if org.TimeZone != "" {
		opts.TimeZone = org.TimeZone
	}
	if org.NoReplyEmail != "" {
		opts.DefaultOrganizerEmail = org.NoReplyEmail
	}
	return opts
}
