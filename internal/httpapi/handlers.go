package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

type EquipRequest struct {
	Class uint64 `json:"class"`
}

type CreateBattleRequest struct {
	Name string `json:"name"`
	Auto bool   `json:"auto"`
}

type MoveRequest struct {
	Choice uint64 `json:"choice"`
}

type BalanceResponse struct {
	Owner   sdk.Address             `json:"owner"`
	Class   contract.EquipmentClass `json:"class"`
	Balance uint64                  `json:"balance"`
}

// BattleResponse is a battle as seen by the caller. While the battle runs,
// a seat's move for the round is shown only to that seat. Submitted tells
// everyone which seats have moved.
type BattleResponse struct {
	contract.Battle
	Submitted [2]bool `json:"submitted"`
}

func battleView(b *contract.Battle, caller sdk.Address) *BattleResponse {
	view := &BattleResponse{Battle: *b}
	if b.Status != contract.Started {
		return view
	}
	for i, m := range b.Moves {
		view.Submitted[i] = m != contract.NoMove
		if caller == "" || b.Seats[i] != caller {
			view.Moves[i] = contract.NoMove
		}
	}
	return view
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	arena *contract.Contract
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := contract.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.L(ctx).Errorf("Request failed: %s", err)
	} else {
		log.L(ctx).Debugf("Request rejected (%d): %s", status, err)
	}
	writeJSON(w, status, &ErrorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return i18n.NewError(r.Context(), msgs.MsgInvalidRequest, err.Error())
	}
	return nil
}

func sender(r *http.Request) sdk.Address {
	return sdk.GetEnv(r.Context()).Sender
}

func pathClass(r *http.Request) (contract.EquipmentClass, error) {
	raw := mux.Vars(r)["class"]
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return contract.NoEquipment, i18n.NewError(r.Context(), msgs.MsgInvalidRequest, "class must be a number")
	}
	return contract.ParseEquipmentClass(r.Context(), n)
}

func (h *handlers) respondPlayer(w http.ResponseWriter, r *http.Request, addr sdk.Address, status int) {
	ctx := r.Context()
	p, err := h.arena.LookupPlayer(ctx, addr)
	if err == nil && p == nil {
		err = i18n.NewError(ctx, msgs.MsgPlayerNotFound, addr)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, status, p)
}

func (h *handlers) respondBattle(w http.ResponseWriter, r *http.Request, name string, status int) {
	ctx := r.Context()
	b, err := h.arena.LookupBattle(ctx, name)
	if err == nil && b == nil {
		err = i18n.NewError(ctx, msgs.MsgBattleNotFound, name)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, status, battleView(b, sender(r)))
}

// ---------- players ----------

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	addr := sender(r)
	if err := h.arena.Register(r.Context(), addr); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.respondPlayer(w, r, addr, http.StatusCreated)
}

func (h *handlers) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.arena.ListPlayers(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if players == nil {
		players = []sdk.Address{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *handlers) getPlayer(w http.ResponseWriter, r *http.Request) {
	h.respondPlayer(w, r, sdk.Address(mux.Vars(r)["address"]), http.StatusOK)
}

func (h *handlers) equip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr := sdk.Address(mux.Vars(r)["address"])
	var req EquipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	class, err := contract.ParseEquipmentClass(ctx, req.Class)
	if err == nil {
		err = h.arena.Equip(ctx, addr, class)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.respondPlayer(w, r, addr, http.StatusOK)
}

func (h *handlers) unequip(w http.ResponseWriter, r *http.Request) {
	addr := sdk.Address(mux.Vars(r)["address"])
	if err := h.arena.Unequip(r.Context(), addr); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.respondPlayer(w, r, addr, http.StatusOK)
}

func (h *handlers) balanceOf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr := sdk.Address(mux.Vars(r)["address"])
	class, err := pathClass(r)
	var n uint64
	if err == nil {
		n, err = h.arena.BalanceOf(ctx, addr, class)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, &BalanceResponse{Owner: addr, Class: class, Balance: n})
}

func (h *handlers) equipmentMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	class, err := pathClass(r)
	var meta *contract.EquipmentMetadata
	if err == nil {
		meta, err = h.arena.EquipmentMetadata(ctx, class)
	}
	if err == nil && meta == nil {
		err = i18n.NewError(ctx, msgs.MsgEquipmentNotFound, class)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// ---------- battles ----------

func (h *handlers) createBattle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateBattleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	create := h.arena.CreateBattle
	if req.Auto {
		create = h.arena.CreateAutoBattle
	}
	if err := create(ctx, req.Name, sender(r)); err != nil {
		writeError(ctx, w, err)
		return
	}
	h.respondBattle(w, r, req.Name, http.StatusCreated)
}

func (h *handlers) listBattles(w http.ResponseWriter, r *http.Request) {
	names, err := h.arena.ListBattles(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *handlers) getBattle(w http.ResponseWriter, r *http.Request) {
	h.respondBattle(w, r, mux.Vars(r)["name"], http.StatusOK)
}

func (h *handlers) joinBattle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.arena.JoinBattle(r.Context(), name, sender(r)); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.respondBattle(w, r, name, http.StatusOK)
}

func (h *handlers) challengeBot(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.arena.ChallengeBot(r.Context(), sender(r), name); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.respondBattle(w, r, name, http.StatusOK)
}

func (h *handlers) submitMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]
	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	move, err := contract.ParseMove(ctx, req.Choice)
	if err == nil {
		err = h.arena.SubmitMove(ctx, sender(r), move, name)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.respondBattle(w, r, name, http.StatusOK)
}
