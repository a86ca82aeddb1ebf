// Package telegram pushes workflow notifications to the responsible
// users' Telegram chats. Delivery is fire-and-forget: a failed send is
// logged and dropped, never propagated back into the mutation that
// triggered it.
package telegram

import (
	"fmt"
	"strings"

	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier wraps the bot API. Besides sending, it runs a small update
// loop so users can link their chat to their dashboard account with
// /link <user-id>.
type Notifier struct {
	Bot     *tgbotapi.BotAPI
	Storage storage.Storage
	Log     *logger.Logger
}

func NewNotifier(token string, s storage.Storage, log *logger.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to start telegram bot: %w", err)
	}
	return &Notifier{Bot: bot, Storage: s, Log: log}, nil
}

// NotifyEvent sends the event message to every recipient with a linked
// chat. Sends run in a goroutine so callers never block on Telegram.
func (n *Notifier) NotifyEvent(event models.DomainEvent, recipientIDs []string) {
	go func() {
		seen := make(map[string]bool, len(recipientIDs))
		for _, userID := range recipientIDs {
			if userID == "" || seen[userID] {
				continue
			}
			seen[userID] = true

			user, err := n.Storage.GetUserByID(userID)
			if err != nil {
				n.Log.Warn("notification recipient lookup failed", "user_id", userID, "error", err)
				continue
			}
			if user.TelegramChatID == nil {
				// User never linked a chat; nothing to deliver to.
				continue
			}

			msg := tgbotapi.NewMessage(*user.TelegramChatID, formatEvent(event))
			msg.ParseMode = tgbotapi.ModeMarkdown
			if _, err := n.Bot.Send(msg); err != nil {
				n.Log.Warn("failed to send telegram notification",
					"user_id", userID, "event_type", event.Type, "error", err)
			}
		}
	}()
}

func formatEvent(event models.DomainEvent) string {
	var header string
	switch event.Type {
	case models.EventComplaintCreated:
		header = "🚩 *New complaint*"
	case models.EventResponseAdded:
		header = "💬 *Team response*"
	case models.EventComplaintReviewed:
		header = "🔎 *Complaint under review*"
	case models.EventComplaintResolved:
		header = "✅ *Complaint resolved*"
	case models.EventComplaintDismissed:
		header = "🚫 *Complaint dismissed*"
	case models.EventOptimizationClosed:
		header = "🏁 *Optimization closed*"
	default:
		header = "*Update*"
	}
	return header + "\n" + event.Message
}

// Run processes incoming bot updates. Start it in its own goroutine.
func (n *Notifier) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	for update := range n.Bot.GetUpdatesChan(updateConfig) {
		if update.Message == nil {
			continue
		}
		n.handleMessage(update.Message)
	}
}

func (n *Notifier) handleMessage(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		n.reply(msg.Chat.ID, "Send /link <your-user-id> to receive dashboard notifications here.")
	case "link":
		n.handleLink(msg)
	case "unlink":
		n.handleUnlink(msg)
	}
}

func (n *Notifier) handleLink(msg *tgbotapi.Message) {
	userID := strings.TrimSpace(msg.CommandArguments())
	if userID == "" {
		n.reply(msg.Chat.ID, "Usage: /link <your-user-id>")
		return
	}

	user, err := n.Storage.GetUserByID(userID)
	if err != nil {
		n.reply(msg.Chat.ID, "Unknown user id.")
		return
	}

	chatID := msg.Chat.ID
	user.TelegramChatID = &chatID
	if err := n.Storage.SaveUser(user); err != nil {
		n.Log.Error("failed to link telegram chat", "user_id", userID, "error", err)
		n.reply(msg.Chat.ID, "Something went wrong, try again later.")
		return
	}
	n.reply(msg.Chat.ID, fmt.Sprintf("Linked. Notifications for %s will arrive here.", user.Name))
}

func (n *Notifier) handleUnlink(msg *tgbotapi.Message) {
	user, err := n.Storage.GetUserByTelegramChatID(msg.Chat.ID)
	if err != nil {
		n.reply(msg.Chat.ID, "This chat is not linked to any account.")
		return
	}
	user.TelegramChatID = nil
	if err := n.Storage.SaveUser(user); err != nil {
		n.Log.Error("failed to unlink telegram chat", "user_id", user.ID, "error", err)
		n.reply(msg.Chat.ID, "Something went wrong, try again later.")
		return
	}
	n.reply(msg.Chat.ID, "Unlinked. No more notifications in this chat.")
}

func (n *Notifier) reply(chatID int64, text string) {
	if _, err := n.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		n.Log.Warn("failed to send telegram reply", "chat_id", chatID, "error", err)
	}
}
