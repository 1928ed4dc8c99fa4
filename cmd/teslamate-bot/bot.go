package main

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/pkg/cli"
	"github.com/teslamate-tools/teslamate-query/pkg/dispatch"
)

// placeholder is shown while a dispatch is running.
const placeholder = "⏳"

// botAPI is the subset of *tgbotapi.BotAPI used by Bot.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// messageEditor replaces the text of one message the bot sent earlier.
type messageEditor struct {
	api       botAPI
	chatID    int64
	messageID int
}

func (e messageEditor) Edit(_ context.Context, text string) error {
	_, err := e.api.Request(tgbotapi.NewEditMessageText(e.chatID, e.messageID, text))
	return err
}

// Bot answers /tesla commands from whitelisted chats.
type Bot struct {
	api        botAPI
	dispatcher *dispatch.Dispatcher
	whitelist  cli.ChatList
	timeout    time.Duration // Bounds each dispatch if positive
}

func NewBot(api botAPI, d *dispatch.Dispatcher, whitelist cli.ChatList) *Bot {
	return &Bot{api: api, dispatcher: d, whitelist: whitelist}
}

// token extracts the dispatch token from a command message. The whole argument of /tesla is the
// token, so "/tesla cars please" and a bare "/tesla" are both unknown commands. /start and /help
// are aliases for "/tesla help". Returns false if the message is not addressed to the dispatcher.
func token(message *tgbotapi.Message) (string, bool) {
	if !message.IsCommand() {
		return "", false
	}
	switch message.Command() {
	case dispatch.CommandName:
		return strings.TrimSpace(message.CommandArguments()), true
	case "start", "help":
		return "help", true
	}
	return "", false
}

// HandleMessage dispatches message if it comes from a whitelisted chat and carries a command.
// Messages from other chats are dropped without a reply.
func (b *Bot) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	if !b.whitelist.Contains(chatID) {
		user := ""
		if message.From != nil {
			user = message.From.UserName
		}
		log.Warning("Ignoring message from unauthorized chat %d (user '%s')", chatID, user)
		return
	}
	tok, ok := token(message)
	if !ok {
		return
	}
	log.Info("Received command '%s' in chat %d", tok, chatID)

	reply := tgbotapi.NewMessage(chatID, placeholder)
	reply.ReplyToMessageID = message.MessageID
	sent, err := b.api.Send(reply)
	if err != nil {
		log.Error("Failed to send reply to chat %d: %s", chatID, err)
		return
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	editor := messageEditor{api: b.api, chatID: chatID, messageID: sent.MessageID}
	if err := b.dispatcher.Dispatch(ctx, editor, tok); err != nil {
		log.Error("Failed to update reply in chat %d: %s", chatID, err)
	}
}

// Run handles updates one at a time until ctx is done or the channel closes.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleMessage(ctx, update.Message)
		}
	}
}
