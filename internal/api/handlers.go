package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"supportbot/internal/models"
	"supportbot/internal/storage"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	storage storage.Storage
}

type userResponse struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	IsBanned  bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
}

type pageMeta struct {
	Total    int64 `json:"total"`
	Page     int64 `json:"page"`
	LastPage int64 `json:"lastPage"`
}

type usersPageResponse struct {
	Data []userResponse `json:"data"`
	Meta pageMeta       `json:"meta"`
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := storage.UserFilter{
		Username: r.URL.Query().Get("username"),
		Page:     queryInt(r, "page", defaultPage),
		Limit:    queryInt(r, "limit", defaultLimit),
	}

	page, err := h.storage.ListUsersPage(r.Context(), filter)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	lastPage := (page.Total + filter.Limit - 1) / filter.Limit

	writeJSON(w, http.StatusOK, usersPageResponse{
		Data: lo.Map(page.Users, func(u models.User, _ int) userResponse { return toUserResponse(u) }),
		Meta: pageMeta{Total: page.Total, Page: filter.Page, LastPage: lastPage},
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")

		return
	}

	user, err := h.storage.GetUserById(r.Context(), id)

	if err != nil {
		h.writeStorageError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")

		return
	}

	user, err := h.storage.GetUserById(r.Context(), id)

	if err != nil {
		h.writeStorageError(w, err)

		return
	}

	user.IsAdmin = true

	if err := h.storage.UpdateUser(r.Context(), &user); err != nil {
		h.writeStorageError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, true)
}

func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, false)
}

func (h *Handler) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	username := chi.URLParam(r, "username")
	user, err := h.storage.GetUserByUsername(r.Context(), username)

	if err != nil {
		h.writeStorageError(w, err)

		return
	}

	if user.IsBanned == banned {
		if banned {
			writeError(w, http.StatusConflict, "User already banned")
		} else {
			writeError(w, http.StatusConflict, "User already unbanned")
		}

		return
	}

	user.IsBanned = banned

	if err := h.storage.UpdateUser(r.Context(), &user); err != nil {
		h.writeStorageError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")

		return
	}

	log.Println(err)
	writeError(w, http.StatusInternalServerError, "Internal error")
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		Id:        u.Id,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
}

func queryInt(r *http.Request, name string, fallback int64) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)

	if err != nil || value < 1 {
		return fallback
	}

	return value
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println(err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
