package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"finds/internal/catalog"
	"finds/internal/domain"
	"finds/internal/github"
	"finds/internal/issueform"
	"finds/internal/store"
)

const welcomeMessage = `Send me a product to add it to the catalog:

  <pin url> | <title> | <category> | <tag, tag, ...>

Only the pin URL is required. Commands:
  /list [category] — show the catalog`

// Handler holds dependencies for the Telegram admin bot.
type Handler struct {
	bot   *tgbot.Bot
	store *store.Store
	svc   *catalog.Service
	log   logrus.FieldLogger
}

// NewHandler creates the bot and registers its handlers.
func NewHandler(token string, st *store.Store, svc *catalog.Service, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot")

	b, err := tgbot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	h := &Handler{
		bot:   b,
		store: st,
		svc:   svc,
		log:   log,
	}

	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/list", tgbot.MatchTypePrefix, h.listHandler)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "", tgbot.MatchTypeContains, h.submitHandler)

	log.Info("Telegram bot handler initialized")
	return h, nil
}

// Start polls for updates until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Telegram bot polling")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot stopped")
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	h.reply(ctx, b, update, welcomeMessage)
}

// listHandler renders the (optionally category-filtered) catalog.
func (h *Handler) listHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	category := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/list"))
	if category == "" {
		category = domain.AllCategories
	}

	products, status := h.store.Load(ctx, false)
	filtered := domain.Filter(products, category, "")

	if len(filtered) == 0 {
		h.reply(ctx, b, update, fmt.Sprintf("No products in %q. %s", category, status.Message))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", status.Message)
	for i, p := range filtered {
		if i == 10 {
			fmt.Fprintf(&sb, "… and %d more", len(filtered)-i)
			break
		}
		fmt.Fprintf(&sb, "• %s [%s]\n  %s\n", p.Title, p.Category, p.OutboundURL())
	}
	h.reply(ctx, b, update, sb.String())
}

// submitHandler treats any other text as a product submission in the
// "pin url | title | category | tags" shape.
func (h *Handler) submitHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}
	log := h.log.WithField("user_id", update.Message.From.ID)

	fields, err := ParseSubmission(text)
	if err != nil {
		h.reply(ctx, b, update, err.Error()+"\n\n"+welcomeMessage)
		return
	}

	p, err := h.svc.Submit(ctx, fields)
	if err != nil {
		log.WithError(err).Warn("Bot submission failed")
		h.reply(ctx, b, update, submitErrorMessage(err))
		return
	}

	log.WithField("id", p.ID).Info("Product submitted via bot")
	h.reply(ctx, b, update, fmt.Sprintf("Added %q to %s (#%s).", p.Title, p.Category, p.ID))
}

// ParseSubmission splits the pipe-separated submission shorthand into
// issue-form fields. Only the first segment (the URL) is required.
func ParseSubmission(text string) (issueform.Fields, error) {
	parts := strings.Split(text, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	url := domain.SanitizeURL(parts[0])
	if url == "" {
		return issueform.Fields{}, fmt.Errorf("that doesn't look like a product URL")
	}

	f := issueform.Fields{PinURL: url}
	if len(parts) > 1 {
		f.Title = parts[1]
	}
	if len(parts) > 2 {
		f.Category = parts[2]
	}
	if len(parts) > 3 {
		f.Tags = issueform.ParseTags(strings.Join(parts[3:], ","))
	}
	return f, nil
}

func submitErrorMessage(err error) string {
	switch {
	case errors.Is(err, catalog.ErrInvalidSubmission):
		return err.Error()
	case errors.Is(err, github.ErrUnauthorized):
		return "GitHub rejected the write. Check that the token has issues:write scope (`finds auth <token>`), then resend the message."
	}
	return "Couldn't add the product: " + err.Error() + "\nResend the message to retry."
}

func (h *Handler) reply(ctx context.Context, b *tgbot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		h.log.WithError(err).Error("Failed to send message")
	}
}
