package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/facegate/facegate/internal/entity"
)

// Producer publishes security events to the plant monitoring pipeline.
// Writes are async and best-effort: a broker outage must never block or
// fail an access decision, so errors are logged and dropped.
type Producer struct {
	l             *slog.Logger
	w             *kafka.Writer
	securityTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:             l,
		w:             w,
		securityTopic: topic,
	}
}

type AccessDecisionEvent struct {
	Type       string    `json:"type"`
	AreaID     string    `json:"area_id"`
	EmployeeID *int64    `json:"employee_id"`
	Method     string    `json:"method"`
	Device     string    `json:"device"`
	Permitted  bool      `json:"permitted"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// PublishAccessDecision emits every finalized verdict, including denials
// that the reference recording policy keeps out of the audit table.
func (p *Producer) PublishAccessDecision(ctx context.Context, d entity.AccessDecision) {
	event := AccessDecisionEvent{
		Type:      "access_decision",
		AreaID:    d.AreaID,
		Method:    string(d.Method),
		Device:    entity.DeviceIDFromCtx(ctx),
		Permitted: d.Permitted,
		Reason:    string(d.Reason),
		Timestamp: time.Now().UTC(),
	}

	if d.Employee != nil {
		event.EmployeeID = &d.Employee.ID
	}

	p.publish(ctx, d.AreaID, event)
}

type TemplateAnomalyEvent struct {
	Type       string    `json:"type"`
	EmployeeID int64     `json:"employee_id"`
	Detail     string    `json:"detail"`
	Timestamp  time.Time `json:"timestamp"`
}

// PublishTemplateAnomaly reports a stored template that failed decryption
// during an identification sweep. These indicate corruption or tampering
// and always warrant operator attention.
func (p *Producer) PublishTemplateAnomaly(ctx context.Context, employeeID int64, detail string) {
	event := TemplateAnomalyEvent{
		Type:       "template_anomaly",
		EmployeeID: employeeID,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	}

	p.publish(ctx, fmt.Sprintf("employee:%d", employeeID), event)
}

func (p *Producer) publish(ctx context.Context, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Topic: p.securityTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
