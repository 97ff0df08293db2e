package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/skyhigh636/Skybot/internal/dice"
	"github.com/skyhigh636/Skybot/internal/discord"
	"github.com/skyhigh636/Skybot/internal/msgcat"
	"github.com/skyhigh636/Skybot/internal/obslog"
	"github.com/skyhigh636/Skybot/internal/rps"
	"go.uber.org/zap"
)

// Action id prefixes. Part of the wire contract with already-issued
// messages; exact strings and field order must not change.
const (
	acceptPrefix = "accept_button_"
	selectPrefix = "select_choice_"
)

const followupTimeout = 5 * time.Second

// Followup is the outbound edit/delete surface addressed by an
// interaction's continuation token.
type Followup interface {
	DeleteFollowupMessage(ctx context.Context, interactionToken, messageID string) error
	EditFollowupMessage(ctx context.Context, interactionToken, messageID string, components []discord.Component) error
}

// RollRecorder persists dice rolls; nil disables recording.
type RollRecorder interface {
	SaveRoll(ctx context.Context, userID string, res dice.Result) error
}

type Handler struct {
	games *rps.Manager
	cat   *msgcat.Catalog
	api   Followup
	rolls RollRecorder
}

type Deps struct {
	Games   *rps.Manager
	Catalog *msgcat.Catalog
	API     Followup
	Rolls   RollRecorder
}

func New(deps Deps) *Handler {
	return &Handler{games: deps.Games, cat: deps.Catalog, api: deps.API, rolls: deps.Rolls}
}

// Interactions is the webhook endpoint body handler. Signature
// verification happens in middleware before this runs.
func (h *Handler) Interactions(w http.ResponseWriter, r *http.Request) {
	var in discord.Interaction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		obslog.L().Warn("interaction_decode_failed", zap.Error(err))
		clientError(w, "invalid request body")
		return
	}

	switch in.Type {
	case discord.InteractionPing:
		writeJSON(w, http.StatusOK, &discord.Response{Type: discord.ResponsePong})
	case discord.InteractionApplicationCommand:
		h.handleCommand(r.Context(), w, &in)
	case discord.InteractionMessageComponent:
		h.handleComponent(r.Context(), w, &in)
	default:
		obslog.L().Error("unknown_interaction_type", zap.Int("type", in.Type))
		clientError(w, h.cat.RenderOr("error.unknown_interaction", "unknown interaction type", nil))
	}
}

func (h *Handler) handleCommand(ctx context.Context, w http.ResponseWriter, in *discord.Interaction) {
	if in.Data == nil {
		clientError(w, "missing interaction data")
		return
	}
	switch in.Data.Name {
	case "test":
		msg := h.cat.RenderOr("test.greeting", "hello!", map[string]string{"Emoji": randomEmoji()})
		writeJSON(w, http.StatusOK, discord.TextMessage(msg, false))
	case "challenge":
		h.handleChallenge(ctx, w, in)
	case "roll":
		h.handleRoll(ctx, w, in)
	default:
		obslog.L().Error("unknown_command", zap.String("name", in.Data.Name))
		clientError(w, h.cat.RenderOr("error.unknown_command", "unknown command", nil))
	}
}

func (h *Handler) handleChallenge(ctx context.Context, w http.ResponseWriter, in *discord.Interaction) {
	if len(in.Data.Options) < 2 {
		h.ephemeral(w, "challenge.missing_options", "Missing required options for the challenge command.", nil)
		return
	}
	target, _ := in.Data.StringOption("user")
	object, _ := in.Data.StringOption("object")

	sess, err := h.games.Challenge(ctx, in.ID, in.ActorID(), target, object)
	switch {
	case errors.Is(err, rps.ErrMissingOptions):
		h.ephemeral(w, "challenge.missing_options", "Missing required options for the challenge command.", nil)
		return
	case errors.Is(err, rps.ErrUnknownChoice):
		h.ephemeral(w, "challenge.bad_choice", "That is not a valid object choice.", nil)
		return
	case err != nil:
		obslog.L().Error("challenge_failed", zap.String("interaction_id", in.ID), zap.Error(err))
		h.ephemeral(w, "challenge.create_failed", "Could not start the challenge.", nil)
		return
	}

	msg := h.cat.RenderOr("challenge.announce", "Challenge issued!", map[string]string{
		"InitiatorID": sess.InitiatorID,
		"TargetID":    sess.TargetID,
		"Emoji":       randomEmoji(),
	})
	accept := discord.ActionRow(discord.Button(
		acceptPrefix+sess.ID,
		h.cat.RenderOr("challenge.accept_label", "Accept", nil),
	))
	writeJSON(w, http.StatusOK, discord.TextMessage(msg, false, accept))
}

func (h *Handler) handleComponent(ctx context.Context, w http.ResponseWriter, in *discord.Interaction) {
	if in.Data == nil || in.Data.CustomID == "" {
		clientError(w, "missing component data")
		return
	}
	customID := in.Data.CustomID
	switch {
	case strings.HasPrefix(customID, acceptPrefix):
		h.handleAccept(ctx, w, in, strings.TrimPrefix(customID, acceptPrefix))
	case strings.HasPrefix(customID, selectPrefix):
		h.handleChoose(ctx, w, in, strings.TrimPrefix(customID, selectPrefix))
	case strings.HasPrefix(customID, dice.RepeatPrefix):
		h.handleRollAgain(ctx, w, in, strings.TrimPrefix(customID, dice.RepeatPrefix))
	default:
		obslog.L().Error("unknown_component", zap.String("custom_id", customID))
		clientError(w, h.cat.RenderOr("error.unknown_component", "unknown component", nil))
	}
}

func (h *Handler) handleAccept(ctx context.Context, w http.ResponseWriter, in *discord.Interaction, sessionID string) {
	sess, choices, err := h.games.Accept(ctx, sessionID, in.ActorID())
	switch {
	case errors.Is(err, rps.ErrSessionNotFound):
		h.ephemeral(w, "accept.not_found", "Game not found or already completed.", nil)
		return
	case errors.Is(err, rps.ErrNotYourChallenge):
		h.ephemeral(w, "accept.not_yours", "You cannot accept this challenge.", nil)
		return
	case err != nil:
		obslog.L().Error("accept_failed", zap.String("session_id", sessionID), zap.Error(err))
		clientError(w, "accept failed")
		return
	}

	opts := make([]discord.SelectOption, 0, len(choices))
	for _, c := range choices {
		opts = append(opts, discord.SelectOption{Label: capitalize(string(c)), Value: string(c)})
	}
	prompt := h.cat.RenderOr("accept.prompt", "What is your object of choice?", nil)
	row := discord.ActionRow(discord.StringSelect(selectPrefix+sess.ID, opts))
	writeJSON(w, http.StatusOK, discord.TextMessage(prompt, true, row))

	// Remove the public challenge message. Best effort: a failure is
	// logged and does not roll anything back.
	h.deleteFollowupAsync(in, "accept_delete_failed")
}

func (h *Handler) handleChoose(ctx context.Context, w http.ResponseWriter, in *discord.Interaction, sessionID string) {
	if len(in.Data.Values) == 0 {
		clientError(w, "missing selection value")
		return
	}
	res, err := h.games.Choose(ctx, sessionID, in.ActorID(), in.Data.Values[0])
	switch {
	case errors.Is(err, rps.ErrSessionNotFound):
		// Session already resolved or expired; duplicate events are
		// ignored without a reply.
		obslog.L().Debug("choose_no_session", zap.String("session_id", sessionID))
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, rps.ErrUnknownChoice):
		h.ephemeral(w, "challenge.bad_choice", "That is not a valid object choice.", nil)
		return
	case err != nil:
		obslog.L().Error("choose_failed", zap.String("session_id", sessionID), zap.Error(err))
		clientError(w, "choose failed")
		return
	}

	writeJSON(w, http.StatusOK, discord.TextMessage(h.resultText(res), false))

	// Replace the ephemeral prompt with an acknowledgment.
	ack := h.cat.RenderOr("result.ack", "Nice choice", map[string]string{"Emoji": randomEmoji()})
	h.editFollowupAsync(in, []discord.Component{discord.TextDisplay(ack)}, "choose_update_failed")
}

func (h *Handler) resultText(res *rps.Resolution) string {
	if res.Outcome.Tie {
		return h.cat.RenderOr("result.tie", "It's a tie!", map[string]string{
			"Choice": string(res.OpponentChoice),
		})
	}
	return h.cat.RenderOr("result.win", "Match resolved.", map[string]string{
		"WinnerID":     res.WinnerID,
		"WinnerChoice": string(res.Outcome.Winner),
		"Verb":         res.Outcome.Verb,
		"LoserChoice":  string(res.Outcome.Loser),
	})
}

func (h *Handler) handleRoll(ctx context.Context, w http.ResponseWriter, in *discord.Interaction) {
	p := dice.Params{}
	if sides, ok := in.Data.IntOption("sides"); ok {
		p.Sides = int(sides)
	}
	if wager, ok := in.Data.StringOption("wager"); ok {
		p.Wager = wager
	}
	if desired, ok := in.Data.IntOption("desired"); ok {
		p.Desired = int(desired)
		p.HasDesired = true
	}

	res := dice.Roll(p)
	h.recordRoll(in.ActorID(), res)

	again := discord.ActionRow(discord.Button(
		dice.EncodeRepeat(res.Params, in.ID),
		h.cat.RenderOr("roll.again_label", "Roll Again", nil),
	))
	writeJSON(w, http.StatusOK, discord.TextMessage(h.rollText(res, true), false, again))
}

func (h *Handler) handleRollAgain(ctx context.Context, w http.ResponseWriter, in *discord.Interaction, payload string) {
	p, _, err := dice.DecodeRepeat(payload)
	if err != nil {
		obslog.L().Warn("roll_token_rejected", zap.String("payload", payload), zap.Error(err))
		h.ephemeral(w, "roll.bad_token", "There was an error processing your roll.", nil)
		return
	}

	res := dice.Roll(p)
	h.recordRoll(in.ActorID(), res)

	// Repeat results carry no further buttons.
	writeJSON(w, http.StatusOK, discord.TextMessage(h.rollText(res, false), false))
}

// rollText builds the roll narrative. The first roll mentions the
// absent desired number to match the command reply; repeats only
// mention it when set.
func (h *Handler) rollText(res dice.Result, firstRoll bool) string {
	var b strings.Builder
	b.WriteString(h.cat.RenderOr("roll.result", "You rolled!", map[string]int{
		"Value": res.Value,
		"Sides": res.Sides,
	}))
	switch {
	case res.HasDesired && res.Hit:
		b.WriteString(" ")
		b.WriteString(h.cat.RenderOr("roll.desired_hit", "You hit it!", map[string]int{"Desired": res.Desired}))
	case res.HasDesired:
		b.WriteString(" ")
		b.WriteString(h.cat.RenderOr("roll.desired_miss", "You missed.", map[string]int{"Desired": res.Desired}))
	case firstRoll:
		b.WriteString(" ")
		b.WriteString(h.cat.RenderOr("roll.desired_none", "Your desired number was none.", nil))
	}
	if res.Wager != "" {
		b.WriteString("\n")
		b.WriteString(h.cat.RenderOr("roll.wager", "Wager: "+res.Wager, map[string]string{"Wager": res.Wager}))
	}
	return b.String()
}

func (h *Handler) recordRoll(userID string, res dice.Result) {
	if h.rolls == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), followupTimeout)
		defer cancel()
		if err := h.rolls.SaveRoll(ctx, userID, res); err != nil {
			obslog.L().Warn("roll_record_failed", zap.Error(err))
		}
	}()
}

func (h *Handler) deleteFollowupAsync(in *discord.Interaction, logKey string) {
	if h.api == nil || in.Message == nil || in.Message.ID == "" {
		return
	}
	token, messageID := in.Token, in.Message.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), followupTimeout)
		defer cancel()
		if err := h.api.DeleteFollowupMessage(ctx, token, messageID); err != nil {
			obslog.L().Warn(logKey, zap.String("message_id", messageID), zap.Error(err))
		}
	}()
}

func (h *Handler) editFollowupAsync(in *discord.Interaction, components []discord.Component, logKey string) {
	if h.api == nil || in.Message == nil || in.Message.ID == "" {
		return
	}
	token, messageID := in.Token, in.Message.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), followupTimeout)
		defer cancel()
		if err := h.api.EditFollowupMessage(ctx, token, messageID, components); err != nil {
			obslog.L().Warn(logKey, zap.String("message_id", messageID), zap.Error(err))
		}
	}()
}

func (h *Handler) ephemeral(w http.ResponseWriter, key, fallback string, data any) {
	writeJSON(w, http.StatusOK, discord.TextMessage(h.cat.RenderOr(key, fallback, data), true))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obslog.L().Warn("response_encode_failed", zap.Error(err))
	}
}

func clientError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
