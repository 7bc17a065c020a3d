package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"fprep/internal/config"
	"fprep/internal/kitchen"
	"fprep/internal/llm"
	"fprep/internal/mealplan"
	"fprep/internal/metrics"
	"fprep/internal/planner"
	"fprep/internal/preference"
	"fprep/internal/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages above 4096 characters; leave headroom for
// markdown entities.
const maxMessageLen = 4000

// Bot wraps the Telegram API and drives one planning workflow per chat.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	gen          llm.ChatCompleter
	store        planner.PlanStore
	planRepo     *mealplan.Repository
	kitchenRepo  *kitchen.Repository
	prefRepo     *preference.Repository
	metricsStore *metrics.Store

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	gen llm.ChatCompleter,
	store planner.PlanStore,
	planRepo *mealplan.Repository,
	kitchenRepo *kitchen.Repository,
	prefRepo *preference.Repository,
	metricsStore *metrics.Store,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		cfg:          cfg,
		gen:          gen,
		store:        store,
		planRepo:     planRepo,
		kitchenRepo:  kitchenRepo,
		prefRepo:     prefRepo,
		metricsStore: metricsStore,
		sessions:     make(map[int64]*session),
	}, nil
}

// RegisterHandlers registers the webhook and health endpoints on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.isAllowed(update.CallbackQuery.From.ID) {
			return
		}
		go b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{}
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.send(msg.Chat.ID, helpText)
		return
	case text == "/newplan":
		b.handleNewPlan(msg)
		return
	case text == "/plans":
		b.handlePlansCommand(msg)
		return
	case text == "/cancel":
		b.handleCancelCommand(msg)
		return
	case strings.HasPrefix(text, "/kitchen"):
		b.handleKitchenCommand(msg, strings.TrimSpace(strings.TrimPrefix(text, "/kitchen")))
		return
	case strings.HasPrefix(text, "/prefs"):
		b.handlePrefsCommand(msg, strings.TrimSpace(strings.TrimPrefix(text, "/prefs")))
		return
	case text == "/metrics":
		b.handleMetricsRequest(msg)
		return
	}

	b.continueSession(msg, text)
}

const helpText = `🍲 *Meal Prep Planner*

/newplan - Start a new meal plan
/plans - List your saved plans
/kitchen - Show or update your kitchen equipment
/prefs - Show or update your preferences
/cancel - Discard the plan in progress
/help - This message

Set equipment with "/kitchen large_pan=2, stove_burner=4".
Set a preference with "/prefs calories 1800".`

func (b *Bot) handleNewPlan(msg *tgbotapi.Message) {
	sess := b.session(msg.Chat.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.reset()
	sess.phase = phaseName
	b.send(msg.Chat.ID, "📝 What should the plan be called?")
}

func (b *Bot) handleCancelCommand(msg *tgbotapi.Message) {
	sess := b.session(msg.Chat.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.wf != nil {
		sess.wf.Reset()
	}
	sess.reset()
	b.send(msg.Chat.ID, "🗑 Plan discarded. /newplan to start over.")
}

// continueSession advances the per-chat collection dialog one answer at a
// time, then hands the assembled input to the workflow. The session lock is
// held across any model call, so a chat's updates are processed one at a
// time.
func (b *Bot) continueSession(msg *tgbotapi.Message, text string) {
	sess := b.session(msg.Chat.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.phase {
	case phaseName:
		sess.input.PlanName = text
		sess.phase = phaseDays
		b.send(msg.Chat.ID, fmt.Sprintf("📆 How many days should it cover? (%d-%d)", planner.MinDays, planner.MaxDays))
	case phaseDays:
		days, err := strconv.Atoi(text)
		if err != nil {
			b.send(msg.Chat.ID, "Please send a number of days, e.g. 5.")
			return
		}
		sess.input.Days = days
		sess.phase = phaseIngredients
		b.send(msg.Chat.ID, "🥕 Any ingredients on hand to use up? (send \"-\" if none)")
	case phaseIngredients:
		if text != "-" {
			sess.input.ExistingIngredients = text
		}
		sess.phase = phaseMeals
		b.send(msg.Chat.ID, "🍽 Which meals do you want? e.g. \"lunch and dinner\"")
	case phaseMeals:
		sess.input.RequestedMeals = text
		sess.phase = phaseNone
		b.generatePlan(msg.Chat.ID, msg.From.ID, sess)
	case phaseAdjust:
		sess.phase = phaseNone
		b.submitAdjustment(msg.Chat.ID, sess, text)
	default:
		b.send(msg.Chat.ID, "Send /newplan to start a meal plan, or /help for commands.")
	}
}

func (b *Bot) generatePlan(chatID, userID int64, sess *session) {
	statusID := b.sendStatus(chatID, "🧑‍🍳 *Thinking...* \n(Generating your meal plan)")

	ctx := context.Background()
	uid := fmt.Sprintf("%d", userID)

	inv, err := b.kitchenRepo.Get(ctx, uid)
	if err != nil {
		log.Printf("Warning: failed to load kitchen for user %s: %v", uid, err)
		inv = kitchen.NewInventory()
	}
	prefs, err := b.prefRepo.Get(ctx, uid)
	if err != nil {
		log.Printf("Warning: failed to load preferences for user %s: %v", uid, err)
		prefs = preference.Default()
	}
	sess.input.Equipment = inv
	sess.input.Preferences = prefs

	sess.wf = planner.NewWorkflow(b.gen, b.store, uid)
	meta, err := sess.wf.Generate(ctx, sess.input)
	b.recordMeta(ctx, meta)

	if err != nil {
		log.Printf("Error generating plan: %v", err)
		b.editStatus(chatID, statusID, formatError("generating plan", err))
		sess.reset()
		return
	}

	b.editStatus(chatID, statusID, "✅ *Plan ready!*")
	b.sendLong(chatID, sess.wf.Plan().RawText)
	b.sendWithKeyboard(chatID, "What next?", planKeyboard())
}

func (b *Bot) submitAdjustment(chatID int64, sess *session, request string) {
	if sess.wf == nil {
		b.send(chatID, "No plan in progress. /newplan to start one.")
		return
	}

	statusID := b.sendStatus(chatID, "🧑‍🍳 *Adjusting...*")

	ctx := context.Background()
	meta, err := sess.wf.SubmitAdjustment(ctx, request)
	b.recordMeta(ctx, meta)

	if err != nil {
		log.Printf("Error adjusting plan: %v", err)
		b.editStatus(chatID, statusID, formatError("adjusting plan", err))
		if sess.wf.Stage() == planner.StageAdjusting {
			sess.phase = phaseAdjust
			b.sendWithKeyboard(chatID, "Send another change request, or cancel.", adjustKeyboard())
		}
		return
	}

	b.editStatus(chatID, statusID, "✅ *Plan updated!*")
	b.sendLong(chatID, sess.wf.Plan().RawText)
	b.sendWithKeyboard(chatID, "What next?", planKeyboard())
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	chatID := query.Message.Chat.ID
	sess := b.session(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.wf == nil && query.Data != cbNewPlan {
		b.send(chatID, "That plan is gone. /newplan to start a new one.")
		return
	}

	switch query.Data {
	case cbAdjust:
		if err := sess.wf.StartAdjust(); err != nil {
			b.send(chatID, formatError("starting adjustment", err))
			return
		}
		sess.phase = phaseAdjust
		b.send(chatID, "✏️ What should change? Describe it in one message.")
	case cbCancelAdjust:
		if err := sess.wf.CancelAdjustment(); err != nil {
			b.send(chatID, formatError("cancelling adjustment", err))
			return
		}
		sess.phase = phaseNone
		b.send(chatID, "Adjustment cancelled, plan unchanged.")
		b.sendWithKeyboard(chatID, "What next?", planKeyboard())
	case cbSave:
		b.savePlan(chatID, sess)
	case cbRetryInstructions:
		b.retryInstructions(chatID, sess)
	case cbNewPlan:
		if sess.wf != nil {
			sess.wf.Reset()
		}
		sess.reset()
		sess.phase = phaseName
		b.send(chatID, "📝 What should the plan be called?")
	}
}

// savePlan persists the plan and runs the forced instruction pass.
func (b *Bot) savePlan(chatID int64, sess *session) {
	statusID := b.sendStatus(chatID, "💾 *Saving plan and writing cooking instructions...*")

	ctx := context.Background()
	meta, err := sess.wf.Save(ctx)
	b.recordMeta(ctx, meta)

	if err != nil {
		log.Printf("Error saving plan: %v", err)
		if sess.wf.Stage() == planner.StageGeneratingInstructions {
			b.editStatus(chatID, statusID, formatError("writing cooking instructions", err))
			b.sendWithKeyboard(chatID, "The plan is saved; instructions can be retried.", retryKeyboard())
			return
		}
		b.editStatus(chatID, statusID, formatError("saving plan", err))
		b.sendWithKeyboard(chatID, "What next?", planKeyboard())
		return
	}

	b.finishPlan(chatID, statusID, sess)
}

func (b *Bot) retryInstructions(chatID int64, sess *session) {
	statusID := b.sendStatus(chatID, "🧑‍🍳 *Retrying cooking instructions...*")

	ctx := context.Background()
	meta, err := sess.wf.GenerateInstructions(ctx)
	b.recordMeta(ctx, meta)

	if err != nil {
		log.Printf("Error generating instructions: %v", err)
		b.editStatus(chatID, statusID, formatError("writing cooking instructions", err))
		b.sendWithKeyboard(chatID, "The plan is saved; instructions can be retried.", retryKeyboard())
		return
	}

	b.finishPlan(chatID, statusID, sess)
}

func (b *Bot) finishPlan(chatID int64, statusID int, sess *session) {
	ins := sess.wf.Instructions()
	b.editStatus(chatID, statusID, fmt.Sprintf("✅ *Plan saved!*\n⏱ Total time: %s", ins.TotalTime))
	b.sendLong(chatID, ins.RawText)
	b.sendWithKeyboard(chatID, "All done.", doneKeyboard())
	sess.reset()
}

func (b *Bot) handlePlansCommand(msg *tgbotapi.Message) {
	uid := fmt.Sprintf("%d", msg.From.ID)
	plans, err := b.planRepo.ListByUser(context.Background(), uid)
	if err != nil {
		log.Printf("Error listing plans for user %s: %v", uid, err)
		b.send(msg.Chat.ID, "❌ Error fetching plans.")
		return
	}
	b.send(msg.Chat.ID, formatPlansList(plans))
}

func (b *Bot) handleKitchenCommand(msg *tgbotapi.Message, args string) {
	ctx := context.Background()
	uid := fmt.Sprintf("%d", msg.From.ID)

	if args == "" {
		inv, err := b.kitchenRepo.Get(ctx, uid)
		if err != nil {
			log.Printf("Error loading kitchen for user %s: %v", uid, err)
			b.send(msg.Chat.ID, "❌ Error fetching kitchen.")
			return
		}
		b.send(msg.Chat.ID, formatKitchen(inv))
		return
	}

	inv, err := b.kitchenRepo.Get(ctx, uid)
	if err != nil {
		inv = kitchen.NewInventory()
	}
	if err := kitchen.ApplySpec(inv, args); err != nil {
		b.send(msg.Chat.ID, fmt.Sprintf("❌ %v", err))
		return
	}
	if err := b.kitchenRepo.Save(ctx, uid, inv); err != nil {
		log.Printf("Error saving kitchen for user %s: %v", uid, err)
		b.send(msg.Chat.ID, "❌ Error saving kitchen.")
		return
	}
	b.send(msg.Chat.ID, "✅ Kitchen updated.\n\n"+formatKitchen(inv))
}

func (b *Bot) handlePrefsCommand(msg *tgbotapi.Message, args string) {
	ctx := context.Background()
	uid := fmt.Sprintf("%d", msg.From.ID)

	prefs, err := b.prefRepo.Get(ctx, uid)
	if err != nil {
		log.Printf("Error loading preferences for user %s: %v", uid, err)
		b.send(msg.Chat.ID, "❌ Error fetching preferences.")
		return
	}

	if args == "" {
		b.send(msg.Chat.ID, formatPrefs(prefs))
		return
	}

	key, value, _ := strings.Cut(args, " ")
	if err := applyPrefField(&prefs, key, strings.TrimSpace(value)); err != nil {
		b.send(msg.Chat.ID, fmt.Sprintf("❌ %v", err))
		return
	}
	if err := b.prefRepo.Save(ctx, uid, prefs); err != nil {
		log.Printf("Error saving preferences for user %s: %v", uid, err)
		b.send(msg.Chat.ID, "❌ Error saving preferences.")
		return
	}
	b.send(msg.Chat.ID, "✅ Preferences updated.\n\n"+formatPrefs(prefs))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.send(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(context.Background(), 7)
	if err != nil {
		b.send(chatID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.send(chatID, sb.String())
}

func (b *Bot) recordMeta(ctx context.Context, meta shared.GenMeta) {
	if err := b.metricsStore.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}
}

// --- sending helpers ---

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendStatus(chatID int64, text string) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send status message: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.send(chatID, text)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) sendLong(chatID int64, text string) {
	for _, chunk := range chunkMessage(text, maxMessageLen) {
		b.send(chatID, chunk)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send keyboard message: %v", err)
	}
}

const (
	cbAdjust            = "adjust"
	cbCancelAdjust      = "cancel_adjust"
	cbSave              = "save"
	cbRetryInstructions = "retry_instructions"
	cbNewPlan           = "new_plan"
)

func planKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Adjust", cbAdjust),
			tgbotapi.NewInlineKeyboardButtonData("💾 Save", cbSave),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New Plan", cbNewPlan),
		),
	)
}

func adjustKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Cancel", cbCancelAdjust),
		),
	)
}

func retryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Retry Instructions", cbRetryInstructions),
		),
	)
}

func doneKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New Plan", cbNewPlan),
		),
	)
}
