/*
Package api
File: handlers.go
Description:
    HTTP handlers of the match server. They decode JSON requests, find the
    match controller and turn each request into one player intent.

    Key Responsibilities:
    - Match registry (create, look up) keyed by uuid
    - Input validation (JSON shape, alien colours)
    - Mapping engine errors onto HTTP status codes
*/

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/card"
	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/config"
	"github.com/everforgeworks/galaxy-haulers/internal/game"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownMatch  = errors.New("unknown match")
)

// Request DTOs

type CreateMatchRequest struct {
	Level   int      `json:"level"`
	Players []string `json:"players"`
}

type CreateMatchResponse struct {
	ID string `json:"id"`
}

type AlienPlacement struct {
	At    ship.Coordinates `json:"at"`
	Color string           `json:"color"`
}

// ActionRequest carries one player intent. Only the fields the action needs
// are read.
type ActionRequest struct {
	Player    string             `json:"player"`
	Action    string             `json:"action"`
	ID        int                `json:"id,omitempty"`
	Index     int                `json:"index,omitempty"`
	At        ship.Coordinates   `json:"at"`
	Rotation  int                `json:"rotation,omitempty"`
	Doubles   []ship.Coordinates `json:"doubles,omitempty"`
	Batteries []ship.Coordinates `json:"batteries,omitempty"`
	Storages  []ship.Coordinates `json:"storages,omitempty"`
	Cabins    []ship.Coordinates `json:"cabins,omitempty"`
	Shield    *ship.Coordinates  `json:"shield,omitempty"`
	Cannon    *ship.Coordinates  `json:"cannon,omitempty"`
	Accept    bool               `json:"accept,omitempty"`
	Visit     bool               `json:"visit,omitempty"`
	Aliens    []AlienPlacement   `json:"aliens,omitempty"`
}

// Server holds the running matches.
type Server struct {
	mu      sync.RWMutex
	matches map[string]*game.Controller
	store   *catalog.Store
	hub     *Hub
	cfg     config.Config
	log     *zap.Logger
}

func NewServer(cfg config.Config, store *catalog.Store, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		matches: make(map[string]*game.Controller),
		store:   store,
		hub:     hub,
		cfg:     cfg,
		log:     logger,
	}
}

// Routes registers every endpoint.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/matches", s.HandleCreateMatch)
	mux.HandleFunc("GET /api/matches/{id}", s.HandleGetMatch)
	mux.HandleFunc("POST /api/matches/{id}/actions", s.HandleAction)
	mux.HandleFunc("GET /api/matches/{id}/little-decks/{index}", s.HandleLittleDeck)
	mux.HandleFunc("GET /ws/{id}", s.HandleWs)
	return mux
}

func (s *Server) match(r *http.Request) (*game.Controller, error) {
	id := r.PathValue("id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	return ctrl, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, ErrUnknownMatch), errors.Is(err, game.ErrUnknownPlayer):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnknownAction):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

// HandleCreateMatch starts a new match with the current catalog.
func (s *Server) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	ctrl, err := game.NewController(id, s.store.Current(), game.Options{
		Level:     req.Level,
		Players:   req.Players,
		Hourglass: s.cfg.Hourglass,
		Notifier:  s.hub,
		Logger:    s.log,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.matches[id] = ctrl
	s.mu.Unlock()

	ctrl.Start()
	s.log.Info("match created", zap.String("match", id), zap.Int("level", req.Level), zap.Strings("players", req.Players))
	writeJSON(w, http.StatusCreated, CreateMatchResponse{ID: id})
}

// HandleGetMatch returns the full snapshot of a match.
func (s *Server) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.match(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// HandleAction applies one intent and answers with the resulting snapshot.
func (s *Server) HandleAction(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.match(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := Dispatch(ctrl, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// HandleLittleDeck shows a little deck to a player still building.
func (s *Server) HandleLittleDeck(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.match(r)
	if err != nil {
		writeError(w, err)
		return
	}
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cards, err := ctrl.LittleDeck(r.URL.Query().Get("player"), i)
	if err != nil {
		writeError(w, err)
		return
	}
	if cards == nil {
		cards = []card.ClientCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// HandleWs attaches a websocket to a match: GET /ws/{id}?player=nick.
func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.match(r)
	if err != nil {
		writeError(w, err)
		return
	}
	player := r.URL.Query().Get("player")
	if !slices.Contains(ctrl.Players(), player) {
		writeError(w, fmt.Errorf("%w: %s", game.ErrUnknownPlayer, player))
		return
	}
	s.hub.ServeWs(ctrl, player, w, r)
}

// Dispatch maps an action name onto the controller.
func Dispatch(ctrl *game.Controller, req ActionRequest) error {
	p := req.Player
	var err error
	switch req.Action {
	case "pick_hidden":
		err = ctrl.PickHidden(p)
	case "pick_visible":
		err = ctrl.PickVisible(p, req.ID)
	case "release":
		err = ctrl.Release(p)
	case "book":
		err = ctrl.Book(p)
	case "take_booked":
		err = ctrl.TakeBooked(p, req.Index)
	case "place":
		err = ctrl.Place(p, req.At, req.Rotation)
	case "finish_building":
		err = ctrl.FinishBuilding(p)
	case "flip_hourglass":
		err = ctrl.FlipHourglass(p)
	case "remove_component":
		err = ctrl.RemoveComponent(p, req.At)
	case "choose_ship_part":
		err = ctrl.ChooseShipPart(p, req.At)
	case "place_crew":
		aliens := make(map[ship.Coordinates]ship.AlienColor, len(req.Aliens))
		for _, a := range req.Aliens {
			color, perr := ship.ParseAlien(a.Color)
			if perr != nil {
				return perr
			}
			aliens[a.At] = color
		}
		err = ctrl.PlaceCrew(p, aliens)
	case "draw_card":
		err = ctrl.DrawCard(p)
	case "land_early":
		err = ctrl.LandEarly(p)
	case "choose_cannons":
		err = ctrl.ChooseCannons(p, req.Doubles, req.Batteries)
	case "choose_engines":
		err = ctrl.ChooseEngines(p, req.Doubles, req.Batteries)
	case "accept_reward":
		err = ctrl.AcceptReward(p, req.Accept)
	case "choose_storages":
		err = ctrl.ChooseStorages(p, req.Storages)
	case "remove_crew":
		err = ctrl.RemoveCrew(p, req.Cabins)
	case "throw_dices":
		err = ctrl.ThrowDices(p)
	case "defend":
		shield, cannon := ship.Invalid, ship.Invalid
		if req.Shield != nil {
			shield = *req.Shield
		}
		if req.Cannon != nil {
			cannon = *req.Cannon
		}
		err = ctrl.Defend(p, shield, cannon, req.Batteries)
	case "visit_location":
		err = ctrl.VisitLocation(p, req.Visit)
	case "choose_planet":
		err = ctrl.ChoosePlanet(p, req.Index)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	return err
}
