package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/addfriend"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/removefriend"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/friendlist"
)

type friendView struct {
	AccountID   string    `json:"accountId"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	Since       time.Time `json:"since"`
}

type friendshipView struct {
	AccountID string `json:"accountId"`
	FriendID  string `json:"friendId"`
	Friends   bool   `json:"friends"`
}

// addFriend handles POST /accounts/{accountID}/friends.
func (s *Server) addFriend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FriendID string `json:"friendId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accountID := chi.URLParam(r, "accountID")

	result, err := s.handlers.AddFriend.Handle(r.Context(), addfriend.BuildCommand(accountID, req.FriendID, s.now()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusCreated, result.Execution(), result.Failure, friendshipView{
		AccountID: accountID,
		FriendID:  req.FriendID,
		Friends:   result.Friends,
	})
}

// removeFriend handles DELETE /accounts/{accountID}/friends/{friendID}, removing a non-friend is idempotent.
func (s *Server) removeFriend(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	friendID := chi.URLParam(r, "friendID")

	result, err := s.handlers.RemoveFriend.Handle(r.Context(), removefriend.BuildCommand(accountID, friendID, s.now()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeCommand(w, http.StatusOK, result.Execution(), nil, friendshipView{
		AccountID: accountID,
		FriendID:  friendID,
		Friends:   false,
	})
}

func (s *Server) friendList(w http.ResponseWriter, r *http.Request) {
	list, err := s.handlers.FriendList.Handle(r.Context(), friendlist.BuildQuery(chi.URLParam(r, "accountID")))
	if err != nil {
		writeError(w, err)
		return
	}

	friends := make([]friendView, 0, len(list.Friends))
	for _, f := range list.Friends {
		friends = append(friends, friendView{AccountID: f.AccountID, DisplayName: f.DisplayName, Avatar: f.Avatar, Since: f.Since})
	}

	writeData(w, http.StatusOK, struct {
		AccountID   string       `json:"accountId"`
		FriendCount int          `json:"friendCount"`
		Friends     []friendView `json:"friends"`
	}{
		AccountID:   list.AccountID,
		FriendCount: list.FriendCount,
		Friends:     friends,
	})
}
