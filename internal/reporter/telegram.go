package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter sends a run summary once the merge finishes. It is
// optional; the runner holds a nil reporter when Telegram isn't
// configured.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendRunSummary reports the outcome of one crawl.
func (t *TelegramReporter) SendRunSummary(sitesScraped, batchSize, added, updated int) error {
	return t.SendMessage(summaryText(sitesScraped, batchSize, added, updated))
}

// SendError notifies about a fatal run failure (no jobs scraped, or
// the output file could not be written).
func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(errorText(errReq))
}

func summaryText(sitesScraped, batchSize, added, updated int) string {
	return fmt.Sprintf(
		"✅ <b>Job scrape finished</b>\n"+
			"🌐 Sites scraped: %d\n"+
			"📦 Records collected: %d\n"+
			"➕ Added: %d\n"+
			"🔄 Updated: %d",
		sitesScraped, batchSize, added, updated,
	)
}

func errorText(errReq error) string {
	return fmt.Sprintf("⚠️ <b>Scrape error</b>:\n%v", errReq)
}
