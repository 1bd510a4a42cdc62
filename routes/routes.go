package routes

import (
	"github.com/Dosada05/pickup-server/handlers"
	"github.com/Dosada05/pickup-server/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the full HTTP surface on the router. Everything
// except signup, login and the websocket endpoint requires a Bearer token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	sportHandler *handlers.SportHandler,
	communityHandler *handlers.CommunityHandler,
	matchHandler *handlers.MatchHandler,
	rsvpHandler *handlers.RSVPHandler,
	friendHandler *handlers.FriendHandler,
	teamHandler *handlers.TeamHandler,
	matchRequestHandler *handlers.MatchRequestHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// The websocket endpoint stays public: the stream is push-only and
	// carries nothing beyond going counts.
	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", profileHandler.GetMe)
			r.Put("/me", profileHandler.UpdateMe)
			r.Post("/me/avatar", profileHandler.UploadAvatar)
			r.Get("/{userID}", profileHandler.GetProfileByID)
		})

		r.Route("/sports", func(r chi.Router) {
			r.Get("/", sportHandler.GetAllSports)
			r.Get("/{sportID}", sportHandler.GetSportByID)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Get("/{communityID}", communityHandler.GetCommunityByID)
			r.Get("/{communityID}/matches", matchHandler.ListCommunityFeed)
		})
		r.Get("/colleges/{collegeID}/communities", communityHandler.ListByCollege)
		r.Get("/colleges/{collegeID}/teams", teamHandler.ListByCollege)

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", matchHandler.CreateMatch)
			r.Get("/mine", matchHandler.ListMyMatches)
			r.Get("/{matchID}", matchHandler.GetMatchByID)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
			r.Get("/{matchID}/players", matchHandler.ListMatchPlayers)
			r.Post("/{matchID}/rsvp", rsvpHandler.JoinMatch)
			r.Delete("/{matchID}/rsvp", rsvpHandler.LeaveMatch)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", friendHandler.ListFriends)
			r.Get("/requests", friendHandler.ListPendingRequests)
			r.Post("/requests", friendHandler.SendRequest)
			r.Post("/requests/{requestID}/accept", friendHandler.AcceptRequest)
			r.Delete("/{userID}", friendHandler.Unfriend)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.CreateTeam)
			r.Get("/{teamID}", teamHandler.GetTeamByID)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
			r.Post("/{teamID}/join", teamHandler.JoinTeam)
			r.Post("/{teamID}/leave", teamHandler.LeaveTeam)
			r.Get("/{teamID}/match-requests", matchRequestHandler.ListIncoming)
		})

		r.Route("/match-requests", func(r chi.Router) {
			r.Post("/", matchRequestHandler.Challenge)
			r.Post("/{requestID}/accept", matchRequestHandler.Accept)
			r.Post("/{requestID}/decline", matchRequestHandler.Decline)
		})
	})
}
