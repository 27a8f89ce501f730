package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/vidshare/internal/config"
	"github.com/baechuer/vidshare/internal/transport/http/handlers"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
)

type Handlers struct {
	Videos        *handlers.VideosHandler
	Comments      *handlers.CommentsHandler
	Tweets        *handlers.TweetsHandler
	Likes         *handlers.LikesHandler
	Subscriptions *handlers.SubscriptionsHandler
	Playlists     *handlers.PlaylistsHandler
	Users         *handlers.UsersHandler
	Dashboard     *handlers.DashboardHandler
	Health        *handlers.HealthHandler
}

// New wires the API. limiter may be nil, in which case rate limiting falls
// back to an in-process per-ip limiter.
func New(h Handlers, auth *middleware.AuthMiddleware, limiter middleware.RateLimiter, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders:   []string{middleware.HeaderXRequestID, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, "not_found", "route not found", nil, response.RequestID(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil, response.RequestID(r))
	})

	r.Get("/healthz", h.Health.Healthz)
	r.Get("/healthcheck", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Resolve the viewer first so the limiter can key by actor.
		r.Use(auth.Optional)
		if cfg.RLEnabled {
			if limiter != nil {
				r.Use(middleware.RateLimit(limiter, cfg.RLLimit, cfg.RLWindow))
			} else {
				r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
			}
		}

		r.Get("/healthcheck", h.Health.Healthz)

		// Public reads. The viewer, when present, drives isLiked/isSubscribed.
		r.Get("/videos", h.Videos.List)
		r.Get("/videos/{videoId}", h.Videos.Get)
		r.Get("/comments/{videoId}", h.Comments.List)
		r.Get("/tweets/{tweetId}", h.Tweets.Get)
		r.Get("/tweets/user/{userId}", h.Tweets.ListByUser)
		r.Get("/likes/status/{kind}/{targetId}", h.Likes.Status)
		r.Get("/subscriptions/c/{channelId}", h.Subscriptions.Subscribers)
		r.Get("/subscriptions/u/{subscriberId}", h.Subscriptions.Subscriptions)
		r.Get("/playlist/{playlistId}", h.Playlists.Get)
		r.Get("/playlist/user/{userId}", h.Playlists.ListByUser)
		r.Get("/playlist/check-exist/{playlistId}/{videoId}", h.Playlists.Contains)
		r.Get("/users/c/{username}", h.Users.Channel)
		r.Get("/dashboard/stats/{channelId}", h.Dashboard.Stats)
		r.Get("/dashboard/videos/{channelId}", h.Dashboard.Videos)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/users", h.Users.Register)
			r.Get("/users/me", h.Users.Me)
			r.Patch("/users/me", h.Users.UpdateMe)
			r.Get("/users/me/history", h.Videos.History)

			r.Post("/videos", h.Videos.Create)
			r.Patch("/videos/{videoId}", h.Videos.Update)
			r.Delete("/videos/{videoId}", h.Videos.Delete)
			r.Patch("/videos/toggle/publish/{videoId}", h.Videos.TogglePublish)
			r.Post("/videos/{videoId}/views", h.Videos.RecordView)

			r.Post("/comments/{videoId}", h.Comments.Add)
			r.Patch("/comments/c/{commentId}", h.Comments.Update)
			r.Delete("/comments/c/{commentId}", h.Comments.Delete)

			r.Post("/tweets", h.Tweets.Create)
			r.Patch("/tweets/{tweetId}", h.Tweets.Update)
			r.Delete("/tweets/{tweetId}", h.Tweets.Delete)

			r.Post("/likes/toggle/v/{videoId}", h.Likes.ToggleVideo)
			r.Post("/likes/toggle/c/{commentId}", h.Likes.ToggleComment)
			r.Post("/likes/toggle/t/{tweetId}", h.Likes.ToggleTweet)
			r.Get("/likes/videos", h.Likes.LikedVideos)

			r.Post("/subscriptions/c/{channelId}", h.Subscriptions.Toggle)

			r.Post("/playlist", h.Playlists.Create)
			r.Patch("/playlist/{playlistId}", h.Playlists.Update)
			r.Delete("/playlist/{playlistId}", h.Playlists.Delete)
			r.Patch("/playlist/add/{videoId}/{playlistId}", h.Playlists.AddVideo)
			r.Patch("/playlist/remove/{videoId}/{playlistId}", h.Playlists.RemoveVideo)
		})
	})

	return r
}
