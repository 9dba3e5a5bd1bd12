package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/pkg/errs"
)

// Notifier posts redemption messages to a chat webhook. Delivery is
// fire-and-forget: messages go through a bounded queue drained by a single
// worker, each delivery gets its own timeout, and any failure is logged and
// dropped. Nothing here can fail a redemption.
type Notifier struct {
	url     string
	botName string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
	queue   chan any
	done    chan struct{}
}

func New(cfg config.WebhookConfig, logger *slog.Logger) *Notifier {
	n := &Notifier{
		url:     cfg.URL,
		botName: cfg.BotName,
		timeout: cfg.Timeout,
		client:  &http.Client{},
		logger:  logger,
		queue:   make(chan any, cfg.QueueSize),
		done:    make(chan struct{}),
	}
	if !n.Enabled() {
		logger.Warn("WEBHOOK_URL が設定されていないため、通知は無効です")
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	go n.run()
}

// Stop closes the queue and waits for queued deliveries to drain.
func (n *Notifier) Stop(ctx context.Context) error {
	close(n.queue)
	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for payload := range n.queue {
		if err := n.deliver(payload); err != nil {
			n.logger.Error("通知の送信に失敗しました", "error", err)
		}
	}
}

// CouponUsed queues a redemption notification. The enqueue never blocks; a
// full queue drops the message with a warning.
func (n *Notifier) CouponUsed(c coupon.Coupon, actorName string) {
	if !n.Enabled() {
		return
	}
	n.enqueue(couponUsedPayload(c, actorName, n.botName))
}

// SendText queues a plain text notification.
func (n *Notifier) SendText(message string) {
	if !n.Enabled() {
		return
	}
	n.enqueue(map[string]any{"content": message})
}

func (n *Notifier) enqueue(payload any) {
	select {
	case n.queue <- payload:
	default:
		n.logger.Warn("通知キューが満杯のため、通知を破棄しました")
	}
}

func (n *Notifier) deliver(payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode webhook payload")
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("webhook returned status %d", resp.StatusCode))
	}
	return nil
}

var categoryEmoji = map[coupon.Category]string{
	coupon.CategoryFood:     "🍽️",
	coupon.CategoryFavor:    "💝",
	coupon.CategoryGift:     "🎁",
	coupon.CategoryActivity: "🎯",
	coupon.CategorySpecial:  "✨",
}

func couponUsedPayload(c coupon.Coupon, actorName, botName string) map[string]any {
	emoji, ok := categoryEmoji[c.Category]
	if !ok {
		emoji = "🎫"
	}

	if actorName == "" {
		actorName = "不明"
	}

	description := c.Description
	if description == "" {
		description = "なし"
	}

	fields := []map[string]any{
		{"name": "クーポン名", "value": c.Title, "inline": true},
		{"name": "カテゴリ", "value": c.Category.String(), "inline": true},
		{"name": "使用者", "value": actorName, "inline": true},
		{"name": "説明", "value": description, "inline": false},
		{"name": "使用日時", "value": formatUsedDate(c.UsedDate), "inline": false},
	}
	if c.Value != "" {
		fields = append(fields, map[string]any{"name": "価値", "value": c.Value, "inline": true})
	}

	embed := map[string]any{
		"title":       fmt.Sprintf("%s クーポンが使用されました！", emoji),
		"description": fmt.Sprintf("**%s**が使用されました。", c.Title),
		"color":       0x2563eb,
		"fields":      fields,
		"timestamp":   time.Now().Format(time.RFC3339),
		"footer":      map[string]any{"text": "CouponService"},
	}

	return map[string]any{
		"username": botName,
		"embeds":   []any{embed},
	}
}

func formatUsedDate(usedDate string) string {
	if usedDate == "" {
		return "不明"
	}
	t, err := time.Parse(time.RFC3339, usedDate)
	if err != nil {
		return usedDate
	}
	return t.Local().Format("2006/01/02 15:04")
}
