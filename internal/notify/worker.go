package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_incident_system/internal/config"
	"github.com/shenikar/disaster_incident_system/internal/observability"
	"github.com/sirupsen/logrus"
)

const (
	deliveryOK         = "delivered"
	deliveryDeadLetter = "dead_letter"
	deliverySkipped    = "skipped"
)

// WebhookWorker забирает события из очереди Redis и доставляет их
// на вебхук диспетчерской службы. Недоставленные события уходят в deadLetterKey.
type WebhookWorker struct {
	redisClient *redis.Client
	metrics     *observability.Metrics
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	done        chan struct{}
}

// NewWebhookWorker создает новый WebhookWorker; metrics может быть nil
func NewWebhookWorker(redisClient *redis.Client, metrics *observability.Metrics, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		done: make(chan struct{}),
	}
}

// Start запускает горутину, которая разбирает очередь до отмены ctx.
// После отмены нужно дождаться Wait, прежде чем закрывать Redis клиент.
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(w.done)
		for ctx.Err() == nil {
			payload, err := w.next(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					break
				}
				w.logger.WithError(err).Error("Failed to pop incident event from Redis")
				sleepCtx(ctx, w.cfg.WebhookTimeout)
				continue
			}
			w.handle(ctx, payload)
		}
		w.logger.Info("Stopping webhook worker.")
	}()
}

// Wait блокируется, пока горутина Start не завершится,
// включая возврат недоставленного события в очередь
func (w *WebhookWorker) Wait() {
	<-w.done
}

// next блокируется на BRPOP, пока в очереди не появится событие
func (w *WebhookWorker) next(ctx context.Context) (string, error) {
	result, err := w.redisClient.BRPop(ctx, 0, eventQueueKey).Result()
	if err != nil {
		return "", err
	}
	// result[0] - ключ, result[1] - значение
	return result[1], nil
}

func (w *WebhookWorker) handle(ctx context.Context, payload string) {
	if w.cfg.WebhookURL == "" {
		// Без адреса доставлять некуда; событие не считается ошибочным
		w.record(deliverySkipped)
		w.logger.Debug("Webhook URL is not configured. Skipping webhook delivery.")
		return
	}

	var event IncidentEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal incident event from Redis")
		w.deadLetter(ctx, payload)
		return
	}

	if w.deliver(ctx, event, payload) {
		w.record(deliveryOK)
		return
	}
	if ctx.Err() != nil {
		// При остановке возвращаем событие на правый край очереди: следующий запуск заберет его первым
		if err := w.redisClient.RPush(context.WithoutCancel(ctx), eventQueueKey, payload).Err(); err != nil {
			w.logger.WithError(err).Error("Failed to requeue incident event on shutdown")
		}
		return
	}
	w.deadLetter(ctx, payload)
}

func (w *WebhookWorker) deadLetter(ctx context.Context, payload string) {
	w.record(deliveryDeadLetter)
	if err := w.redisClient.LPush(ctx, deadLetterKey, payload).Err(); err != nil {
		w.logger.WithError(err).Error("Failed to move incident event to dead letter queue")
	}
}

func (w *WebhookWorker) record(result string) {
	if w.metrics != nil {
		w.metrics.WebhookDeliveries.WithLabelValues(result).Inc()
	}
}

// deliver отправляет событие с экспоненциальной задержкой между попытками
func (w *WebhookWorker) deliver(ctx context.Context, event IncidentEvent, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"event_type":  event.Type,
		"incident_id": event.IncidentID,
	})
	log.Debug("Processing incident event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return false
	}

	delay := w.cfg.WebhookBaseDelay
	for attempt := 1; attempt <= w.cfg.WebhookMaxRetries; attempt++ {
		err := w.send(ctx, rawPayload)
		if err == nil {
			log.WithField("attempt", attempt).Info("Webhook delivered successfully.")
			return true
		}
		left := w.cfg.WebhookMaxRetries - attempt
		if left == 0 {
			log.WithError(err).Errorf("Failed to deliver webhook after %d attempts.", attempt)
			break
		}
		log.WithError(err).Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, left)
		if !sleepCtx(ctx, delay) {
			return false
		}
		delay *= 2
	}
	return false
}

func (w *WebhookWorker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}

// sleepCtx ждет d или отмены контекста; false - контекст отменен
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
