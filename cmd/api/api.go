package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dhaka/docs" //this is required to generate swagger docs
	"dhaka/internal/auth"
	"dhaka/internal/forum"
	"dhaka/internal/mailer"
	"dhaka/internal/moderation"
	"dhaka/internal/ratelimiter"
	"dhaka/internal/reputation"
	"dhaka/internal/sharecode"
	"dhaka/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   *ratelimiter.FixedWindowRateLimiter

	catalog   []reputation.BadgeSpec
	ledger    *reputation.Ledger
	badges    *reputation.Engine
	modqueue  *moderation.Queue
	voteboard *forum.VoteBoard
	threads   *forum.Threads
	shareCode *sharecode.Generator
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	rateLimiter ratelimiter.Config
	shareSalt   string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userID}", app.getUserProfileHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/me", app.getCurrentUserHandler)
				r.Post("/logout", app.logoutHandler)
				r.Put("/", app.updateUserHandler)
				r.Post("/profile-picture", app.uploadProfilePictureHandler)
			})
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/", app.listPlacesHandler)
			r.Get("/{placeID}", app.getPlaceHandler)
			r.Get("/{placeID}/reviews", app.listPlaceReviewsHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createPlaceHandler)
				r.Post("/{placeID}/visit", app.recordVisitHandler)
				r.Put("/{placeID}/save", app.savePlaceHandler)
				r.Post("/{placeID}/reviews", app.createReviewHandler)
				r.Put("/{placeID}/reviews/{reviewID}", app.updateReviewHandler)
				r.Delete("/{placeID}/reviews/{reviewID}", app.deleteReviewHandler)
			})
		})

		r.Route("/stories", func(r chi.Router) {
			r.Get("/", app.listStoriesHandler)
			r.Get("/{storyID}", app.getStoryHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createStoryHandler)
				r.Delete("/{storyID}", app.deleteStoryHandler)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", app.listEventsHandler)
			r.Get("/{eventID}", app.getEventHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createEventHandler)
				r.Post("/{eventID}/attend", app.attendEventHandler)
			})
		})

		r.Route("/routes", func(r chi.Router) {
			r.Get("/", app.listRoutesHandler)
			r.Get("/{routeID}", app.getRouteHandler)
			r.Get("/shared/{code}", app.getSharedRouteHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.With(app.RequireAdmin).Post("/", app.createRouteHandler)
				r.Post("/{routeID}/complete", app.completeRouteHandler)
				r.Put("/{routeID}/save", app.saveRouteHandler)
			})
		})

		r.Route("/forum", func(r chi.Router) {
			r.Get("/", app.listThreadsHandler)
			r.Get("/{threadID}", app.getThreadHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createThreadHandler)
				r.Post("/{threadID}/replies", app.createReplyHandler)
				r.Post("/{threadID}/upvote", app.upvoteThreadHandler)
				r.Post("/{threadID}/downvote", app.downvoteThreadHandler)
				r.Post("/replies/{replyID}/upvote", app.upvoteReplyHandler)
				r.Post("/replies/{replyID}/downvote", app.downvoteReplyHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.RequireAdmin)
					r.Put("/{threadID}/pin", app.pinThreadHandler)
					r.Put("/{threadID}/lock", app.lockThreadHandler)
				})
			})
		})

		r.With(app.AuthTokenMiddleware).Post("/media", app.uploadMediaHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.RequireAdmin)

			r.Get("/stats", app.adminStatsHandler)
			r.Get("/users", app.adminListUsersHandler)
			r.Put("/users/{userID}/role", app.adminSetRoleHandler)
			r.Delete("/users/{userID}", app.adminDeleteUserHandler)
			r.Get("/pending/{kind}", app.adminListPendingHandler)
			r.Put("/approve/{kind}/{id}", app.adminApproveHandler)
			r.Delete("/reject/{kind}/{id}", app.adminRejectHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
