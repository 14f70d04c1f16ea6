package handlers

import (
	"party_playlist/internal/history"
	"party_playlist/internal/playlist"
)

// Handler объединяет сервисы, нужные HTTP-слою.
type Handler struct {
	Playlist *playlist.Service
	History  *history.Service
}

func New(pl *playlist.Service, hist *history.Service) *Handler {
	return &Handler{Playlist: pl, History: hist}
}
